package docblock

import (
	"strings"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

// Text re-flows the block into documentation text for the declaration file:
// the description lines, then one @param line per described parameter and an
// @return line when the return value is described.
func (b *Block) Text() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(b.Lines, "\n"))

	var tags []string
	for _, p := range b.Params {
		tags = appendParamTag(tags, p)
	}
	if b.OptionsParam != nil {
		tags = appendParamTag(tags, *b.OptionsParam)
		for _, p := range b.Options {
			tags = appendParamTag(tags, api.Param{Name: b.OptionsParam.Name + "." + p.Name, Description: p.Description})
		}
	}
	if b.Return != nil && b.Return.Description != "" {
		tags = append(tags, "@return "+b.Return.Description)
	}

	if len(tags) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(tags, "\n"))
	}
	return sb.String()
}

// Description returns the free text of the block without any tags.
func (b *Block) Description() string {
	return strings.Join(b.Lines, "\n")
}

func appendParamTag(tags []string, p api.Param) []string {
	if p.Description == "" {
		return tags
	}
	return append(tags, "@param "+strings.TrimPrefix(p.Name, "...")+" "+p.Description)
}
