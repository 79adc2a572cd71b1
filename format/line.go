package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/tstype"
)

// LineEncoder writes one tab separated line per declaration. Sections start
// with a header line; members follow as
//
//	kind  name  linkID  category  type  line
type LineEncoder struct {
	w     io.Writer
	table *api.Table
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(table *api.Table) error {
	e.table = table
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	t := e.table
	if t == nil {
		return nil, nil
	}

	for _, m := range t.Globals.All() {
		writeMemberLine(&sb, m)
	}

	for _, s := range t.Sections {
		if s.Entry == nil {
			continue
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%d\n", SectionKind(s), s.TypeName, e.sectionModifiersStr(s), s.Line)
		for _, m := range s.Members() {
			writeMemberLine(&sb, m)
		}
	}

	for _, m := range t.Opaque {
		writeMemberLine(&sb, m)
	}

	return []byte(sb.String()), nil
}

// SectionKind names the declaration a section is written as.
func SectionKind(s *api.Section) string {
	switch e := s.Entry.(type) {
	case *api.EnumEntry:
		return "enum"
	case *api.ClassEntry:
		if e.IsInterface {
			return "interface"
		}
	}
	return "class"
}

func (e *LineEncoder) sectionModifiersStr(s *api.Section) string {
	class, ok := s.Entry.(*api.ClassEntry)
	if !ok {
		return "-"
	}
	var mods []string
	if class.Extends != "" {
		mods = append(mods, "extends "+class.Extends)
	}
	if class.IsPrivate {
		mods = append(mods, "private")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func writeMemberLine(sb *strings.Builder, m *api.Member) {
	fmt.Fprintf(sb, "%s\t%s\t%s\t%s\t%s\t%d\n",
		m.Kind,
		m.Name,
		m.LinkID,
		orDash(m.Category),
		orDash(MemberType(m)),
		m.Line,
	)
}

// MemberType renders the TypeScript type of m: the value type of properties
// and symbols, the signature of callables.
func MemberType(m *api.Member) string {
	switch m.Kind {
	case api.KindMethod, api.KindFunction:
		return signature(m)
	case api.KindConstructor:
		return "(" + parameters(m) + ")"
	case api.KindProperty, api.KindSymbol:
		return tstype.Translate(m.Type, m.Nullability.Nullable())
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
