package match

import (
	"strings"

	"jsderive/internal/casing"
)

// Normalize folds an identifier for fuzzy comparison: "user_ID", "UserID"
// and "userId" all become "userid".
func Normalize(s string) string {
	return strings.ToLower(strings.Join(casing.Words(s), ""))
}
