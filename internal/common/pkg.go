package common

import (
	"go/token"
	"path"
	"strconv"
	"strings"
	"unicode"
)

// PkgAlias returns the package name assumed for an import path: its last
// element, skipping a trailing major version (/v2) and cut at the first
// character that cannot appear in an identifier (jsrt.v1, go-jsrt). Returns
// "pkg" when nothing usable is left and "" if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	base = strings.TrimPrefix(base, "go-")
	if i := strings.IndexFunc(base, notIdentRune); i >= 0 {
		base = base[:i]
	}

	if !token.IsIdentifier(base) || token.IsKeyword(base) {
		return "pkg"
	}

	return base
}

func isMajorVersion(s string) bool {
	if !strings.HasPrefix(s, "v") {
		return false
	}

	n, err := strconv.Atoi(s[1:])

	return err == nil && n >= 0
}

func notIdentRune(r rune) bool {
	return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
