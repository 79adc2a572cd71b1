package tstype

import (
	"regexp"
	"strings"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

var modifierSuffix = regexp.MustCompile(`,\s*(nullable|nullResettable)\s*$`)

// StripModifier removes a trailing ", nullable" or ", nullResettable" from an
// annotation type and reports which one was present.
func StripModifier(t string) (string, api.Nullability) {
	m := modifierSuffix.FindStringSubmatchIndex(t)
	if m == nil {
		return strings.TrimSpace(t), api.NotNull
	}
	n := api.Nullable
	if t[m[2]:m[3]] == "nullResettable" {
		n = api.NullResettable
	}
	return strings.TrimSpace(t[:m[0]]), n
}

func isOpen(c byte) bool {
	return c == '<' || c == '(' || c == '[' || c == '{'
}

func isClose(c byte) bool {
	return c == '>' || c == ')' || c == ']' || c == '}'
}

// matching returns the index of the bracket closing the one at s[from],
// counting every bracket kind as one nesting level, or -1.
func matching(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch {
		case s[i] == '=' && i+1 < len(s) && s[i+1] == '>':
			i++
		case isOpen(s[i]):
			depth++
		case isClose(s[i]):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexTopLevel returns the first index of sep in s outside any brackets.
func indexTopLevel(s, sep string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		if depth == 0 && strings.HasPrefix(s[i:], sep) {
			return i
		}
		switch {
		case s[i] == '=' && i+1 < len(s) && s[i+1] == '>':
			i++
		case isOpen(s[i]):
			depth++
		case isClose(s[i]):
			depth--
		}
	}
	return -1
}

// splitTopLevel splits s on every occurrence of sep outside brackets.
func splitTopLevel(s, sep string) []string {
	var parts []string
	for {
		i := indexTopLevel(s, sep)
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i+len(sep):]
	}
}

// splitArguments splits a comma separated list, re-attaching bare modifier
// words to the argument before them so "Number, nullable" stays one entry.
func splitArguments(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var args []string
	for _, part := range splitTopLevel(s, ",") {
		part = strings.TrimSpace(part)
		if (part == "nullable" || part == "nullResettable") && len(args) > 0 {
			args[len(args)-1] += ", " + part
			continue
		}
		args = append(args, part)
	}
	return args
}

// needsParens reports whether t must be parenthesised before a suffix such
// as "[]" or " | undefined" is appended.
func needsParens(t string) bool {
	return indexTopLevel(t, " | ") >= 0 || indexTopLevel(t, "=>") >= 0
}

// Wrap parenthesises t when it is a union or a function type.
func Wrap(t string) string {
	if needsParens(t) {
		return "(" + t + ")"
	}
	return t
}
