package extract

import (
	"regexp"
	"strings"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

const (
	endSentinel     = "@endType"
	interfacePrefix = "interface "
)

var sectionStart = regexp.MustCompile(`@type[ \t]+`)

// Segment splits source into type sections. Text before the first @type and
// text after an @endType belong to anonymous sections. Sections whose body is
// blank are dropped. Malformed nesting is not reported; sentinels are taken
// positionally.
func Segment(source string) []api.TypeSection {
	var sections []api.TypeSection

	starts := sectionStart.FindAllStringIndex(source, -1)
	preamble := len(source)
	if len(starts) > 0 {
		preamble = starts[0][0]
	}
	sections = appendSection(sections, api.TypeSection{Body: source[:preamble]})

	for i, start := range starts {
		chunkEnd := len(source)
		if i+1 < len(starts) {
			chunkEnd = starts[i+1][0]
		}
		chunk := source[start[1]:chunkEnd]

		header, bodyStart := chunk, len(chunk)
		if nl := strings.IndexByte(chunk, '\n'); nl >= 0 {
			header, bodyStart = chunk[:nl], nl+1
		}
		name, iface := parseTypeName(header)
		section := api.TypeSection{
			TypeName:  name,
			Body:      chunk[bodyStart:],
			Interface: iface,
			Offset:    start[1] + bodyStart,
		}

		end := strings.Index(section.Body, endSentinel)
		if end < 0 {
			sections = appendSection(sections, section)
			continue
		}

		rest := section.Body[end+len(endSentinel):]
		restOffset := section.Offset + end + len(endSentinel)
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest, restOffset = rest[nl+1:], restOffset+nl+1
		} else {
			rest = ""
		}
		section.Body = section.Body[:end]
		sections = appendSection(sections, section)
		sections = appendSection(sections, api.TypeSection{Body: rest, Offset: restOffset})
	}

	return sections
}

// parseTypeName reads the name on an @type line. A leading "interface "
// marks the section as an interface.
func parseTypeName(header string) (string, bool) {
	header = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(header), "*/"))
	iface := false
	if rest, ok := strings.CutPrefix(header, interfacePrefix); ok {
		header, iface = strings.TrimSpace(rest), true
	}
	if fields := strings.Fields(header); len(fields) > 0 {
		return fields[0], iface
	}
	return "", iface
}

func appendSection(sections []api.TypeSection, s api.TypeSection) []api.TypeSection {
	if strings.TrimSpace(s.Body) == "" {
		return sections
	}
	return append(sections, s)
}
