// Package docblock parses the documentation blocks that precede annotated
// declarations.
//
// A block is a /** ... */ comment. Description lines are kept verbatim. Lines
// carrying @param or @return are parsed into fields:
//
//	@param frame <BMRect, nullable>    The frame to use.
//	@return <[BMView]>                 The subviews.
//
// A line holding only "{" starts the options bag and a line holding only "}"
// ends it; parameters in between belong to the options bag rather than to the
// positional parameter list. The @param line right before "{" names the bag
// itself and is not a positional parameter:
//
//	@param frame <BMRect>     The frame.
//	@param args <Object>      Optional settings:
//	{
//		@param delay <Number, nullable>   A delay in milliseconds.
//	}
package docblock

import (
	"errors"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/tstype"
)

var log = commonlog.GetLogger("dtsgen.docblock")

// ErrUnbalanced is returned when an angle-bracket span never closes.
var ErrUnbalanced = errors.New("unbalanced angle brackets")

const (
	paramMarker    = "@param"
	returnMarker   = "@return"
	requiredMarker = "@required"
)

// Block is a parsed documentation block.
type Block struct {
	Lines   []string
	Params  []api.Param
	Options []api.Param
	// OptionsParam is the parameter that holds the options bag, if any.
	OptionsParam *api.Param
	Return       *api.Return
	// Required is set by a leading @required line.
	Required bool
}

type parser struct {
	block     *Block
	inOptions bool
}

// Parse parses the raw text of a documentation comment, delimiters included.
func Parse(comment string) *Block {
	p := &parser{block: &Block{}}
	for _, line := range commentLines(comment) {
		p.parseLine(line)
	}
	p.block.Lines = trimBlankLines(p.block.Lines)
	return p.block
}

func (p *parser) parseLine(line string) {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "{":
		p.inOptions = true
		if p.block.OptionsParam != nil {
			break
		}
		bag := api.Param{Name: api.OptionsBagName}
		if n := len(p.block.Params); n > 0 {
			bag = p.block.Params[n-1]
			p.block.Params = p.block.Params[:n-1]
		}
		p.block.OptionsParam = &bag
	case trimmed == "}":
		p.inOptions = false
	case strings.HasPrefix(trimmed, requiredMarker) && len(p.block.Params) == 0 && !hasText(p.block.Lines):
		p.block.Required = true
	case strings.Contains(trimmed, paramMarker):
		param := parseParam(trimmed[strings.Index(trimmed, paramMarker)+len(paramMarker):])
		if p.inOptions {
			p.block.Options = append(p.block.Options, param)
		} else {
			p.block.Params = append(p.block.Params, param)
		}
	case strings.Contains(trimmed, returnMarker):
		rest := trimmed[strings.Index(trimmed, returnMarker)+len(returnMarker):]
		rest = strings.TrimPrefix(rest, "s")
		typ, n, desc := parseTyped(rest)
		p.block.Return = &api.Return{Type: typ, Nullability: n, Description: desc}
	default:
		p.block.Lines = append(p.block.Lines, strings.TrimRight(line, " \t"))
	}
}

// parseParam parses the text following an @param marker. The name runs up to
// the first "<"; without a type the first word is the name.
func parseParam(rest string) api.Param {
	lt := strings.IndexByte(rest, '<')
	if lt < 0 {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return api.Param{}
		}
		return api.Param{
			Name:        fields[0],
			Description: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), fields[0])),
		}
	}
	typ, n, desc := parseTyped(rest[lt:])
	return api.Param{
		Name:        strings.TrimSpace(rest[:lt]),
		Type:        typ,
		Nullability: n,
		Description: desc,
	}
}

// parseTyped reads a leading <Type, modifier> span followed by a description.
func parseTyped(rest string) (typ string, n api.Nullability, desc string) {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "<") {
		return "", api.NotNull, rest
	}
	end, err := BalancedSpan(rest, 0)
	if err != nil {
		log.Warningf("%s in %q, using the partial type", err, rest)
		typ, n = tstype.StripModifier(rest[1:])
		return typ, n, ""
	}
	typ, n = tstype.StripModifier(rest[1:end])
	return typ, n, strings.TrimSpace(rest[end+1:])
}

// BalancedSpan returns the index of the ">" matching the "<" at s[from],
// counting nested angle brackets so that <Map<K, V>> is read whole.
func BalancedSpan(s string, from int) (int, error) {
	if from < 0 || from >= len(s) || s[from] != '<' {
		return -1, ErrUnbalanced
	}
	depth := 0
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, ErrUnbalanced
}

// commentLines strips the comment delimiters and the leading "*" of each line.
func commentLines(comment string) []string {
	comment = strings.TrimSpace(comment)
	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimSuffix(comment, "*/")

	raw := strings.Split(comment, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		stripped := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(stripped, "*") {
			stripped = strings.TrimPrefix(stripped[1:], " ")
		}
		lines = append(lines, stripped)
	}
	return lines
}

func hasText(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
