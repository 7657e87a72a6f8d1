package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a field name into a display label: separators
// (underscore, dash, dot, space) and camelCase or letter/digit boundaries
// start a new word, each word is capitalised, and acronyms stay upper case.
//
//	confirmPassword -> Confirm Password
//	address-line2   -> Address Line 2
//	userID          -> User ID
func DefaultLabeler(name string) string {
	words := splitWords(name)
	for i, word := range words {
		words[i] = capitalise(word)
	}
	return strings.Join(words, " ")
}

func splitWords(name string) []string {
	runes := []rune(strings.TrimSpace(name))
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}
		if len(current) > 0 && startsWord(runes, i) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return words
}

// startsWord reports whether runes[i] begins a new word given the rune before
// it. "HTTPServer" splits before the "S" that is followed by a lower-case rune.
func startsWord(runes []rune, i int) bool {
	prev, r := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r), unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r):
		return i+1 < len(runes) && unicode.IsLower(runes[i+1])
	}
	return false
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

func capitalise(word string) string {
	runes := []rune(word)
	if len(runes) > 1 && isAcronym(runes) {
		return word
	}
	for i := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(runes[i])
		} else {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	return string(runes)
}

func isAcronym(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
