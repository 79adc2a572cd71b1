package extract

import (
	"regexp"
	"strings"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

// IndexOfClosingScope scans text from fromIndex with openScopes braces
// already open and returns the index of the brace that closes the last of
// them, or -1 if the text ends first.
func IndexOfClosingScope(text string, fromIndex, openScopes int) int {
	depth := openScopes
	for i := fromIndex; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// lineCursor walks text line by line starting at pos.
type lineCursor struct {
	text string
	pos  int
}

// nextNonBlank returns the next line holding anything but whitespace and the
// offset it starts at.
func (c *lineCursor) nextNonBlank() (string, int, bool) {
	for c.pos < len(c.text) {
		start := c.pos
		var line string
		if nl := strings.IndexByte(c.text[start:], '\n'); nl >= 0 {
			line, c.pos = c.text[start:start+nl], start+nl+1
		} else {
			line, c.pos = c.text[start:], len(c.text)
		}
		if strings.TrimSpace(line) != "" {
			return line, start, true
		}
	}
	return "", len(c.text), false
}

// skipPast moves the cursor to the line following offset.
func (c *lineCursor) skipPast(offset int) {
	if offset >= len(c.text) {
		c.pos = len(c.text)
		return
	}
	c.pos = lineEnd(c.text, offset)
}

// lineEnd returns the offset of the line following the one holding from.
func lineEnd(text string, from int) int {
	if nl := strings.IndexByte(text[from:], '\n'); nl >= 0 {
		return from + nl + 1
	}
	return len(text)
}

func accessorPattern(kind, name string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*(?:static\s+)?` + kind + `\s+` + regexp.QuoteMeta(name) + `\s*\(`)
}

// ResolveAccess decides how the backing field declared on the line ending at
// from is exposed. It looks at the next non-blank line for a getter of
// publicName; when one is found its body is skipped and the following
// non-blank line is checked for the matching setter.
func ResolveAccess(text string, from int, publicName string) api.Access {
	c := &lineCursor{text: text, pos: from}
	line, start, ok := c.nextNonBlank()
	if !ok {
		return api.PrivateOnly
	}
	switch {
	case accessorPattern("get", publicName).MatchString(line):
		if setterFollows(text, start, publicName) {
			return api.ReadWrite
		}
		return api.ReadOnly
	case accessorPattern("set", publicName).MatchString(line):
		return api.WriteOnly
	}
	return api.PrivateOnly
}

// GetterAccess resolves a property whose getter starts text.
func GetterAccess(text, publicName string) api.Access {
	if setterFollows(text, 0, publicName) {
		return api.ReadWrite
	}
	return api.ReadOnly
}

// setterFollows skips the accessor body starting at start and reports whether
// the next non-blank line declares a setter for name.
func setterFollows(text string, start int, name string) bool {
	open := strings.IndexByte(text[start:], '{')
	if open < 0 {
		return false
	}
	closing := IndexOfClosingScope(text, start+open+1, 1)
	if closing < 0 {
		return false
	}
	c := &lineCursor{text: text}
	c.skipPast(closing)
	line, _, ok := c.nextNonBlank()
	return ok && accessorPattern("set", name).MatchString(line)
}
