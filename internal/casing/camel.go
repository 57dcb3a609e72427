package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToCamel converts an identifier to camelCase.
//
// The identifier is split into words at underscores and at case boundaries
// (see Words). The first word is lowercased; every following word gets an
// uppercase first letter and a lowercase remainder; separators are dropped.
//
// Examples:
//   - "user_id"  -> "userId"
//   - "a_b_c"    -> "aBC"
//   - "id_2"     -> "id2"
//   - "UserID"   -> "userId"
//   - "HTTPPort" -> "httpPort"
func ToCamel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.Grow(len(s))
	sb.WriteString(strings.ToLower(words[0]))

	for _, w := range words[1:] {
		sb.WriteString(capitalize(w))
	}

	return sb.String()
}

// Words splits an identifier into words.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customer_name" -> ["customer", "name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "getHTTPResponse" -> ["get", "HTTP", "Response"]
func Words(s string) []string {
	if s == "" {
		return nil
	}

	var words []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if r == '_' {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && startsWord(runes, i) && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// startsWord determines if a new word starts at position i.
func startsWord(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if !unicode.IsUpper(r) || prev == '_' {
		return false
	}

	// "userID" splits before 'I'.
	if !unicode.IsUpper(prev) {
		return true
	}

	// End of acronym: "XMLParser" splits before 'P'.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}

	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}
