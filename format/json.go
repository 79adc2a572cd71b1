package format

import (
	"encoding/json"
	"io"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

// JSONEncoder writes the symbol table as indented JSON.
type JSONEncoder struct {
	w     io.Writer
	table *api.Table
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(table *api.Table) error {
	e.table = table
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildTableData(), "", "  ")
}

type jsonTable struct {
	Globals  []jsonMember  `json:"globals,omitempty"`
	Sections []jsonSection `json:"sections,omitempty"`
	Opaque   []jsonMember  `json:"opaque,omitempty"`
}

type jsonSection struct {
	Name        string       `json:"name"`
	Kind        string       `json:"kind"`
	Line        int          `json:"line"`
	Extends     string       `json:"extends,omitempty"`
	Doc         string       `json:"doc,omitempty"`
	Constructor *jsonMember  `json:"constructor,omitempty"`
	Members     []jsonMember `json:"members,omitempty"`
}

type jsonMember struct {
	Kind       string          `json:"kind"`
	Name       string          `json:"name"`
	LinkID     string          `json:"linkId"`
	Line       int             `json:"line"`
	Category   string          `json:"category,omitempty"`
	Type       string          `json:"type,omitempty"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Parameters []jsonParameter `json:"parameters,omitempty"`
	Options    []jsonParameter `json:"options,omitempty"`
	Doc        string          `json:"doc,omitempty"`
}

type jsonParameter struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Modifier string `json:"modifier,omitempty"`
}

func (e *JSONEncoder) buildTableData() jsonTable {
	var data jsonTable
	if e.table == nil {
		return data
	}
	for _, m := range e.table.Globals.All() {
		data.Globals = append(data.Globals, buildMember(m))
	}
	for _, s := range e.table.Sections {
		if s.Entry == nil {
			continue
		}
		data.Sections = append(data.Sections, buildSection(s))
	}
	for _, m := range e.table.Opaque {
		data.Opaque = append(data.Opaque, buildMember(m))
	}
	return data
}

func buildSection(s *api.Section) jsonSection {
	section := jsonSection{
		Name: s.TypeName,
		Kind: SectionKind(s),
		Line: s.Line,
	}
	switch entry := s.Entry.(type) {
	case *api.ClassEntry:
		section.Extends = entry.Extends
		section.Doc = entry.Doc
		if entry.Constructor != nil {
			ctor := buildMember(entry.Constructor)
			section.Constructor = &ctor
		}
		for _, m := range entry.Components {
			section.Members = append(section.Members, buildMember(m))
		}
	case *api.EnumEntry:
		section.Doc = entry.Doc
		for _, m := range entry.Fields {
			section.Members = append(section.Members, buildMember(m))
		}
	}
	return section
}

func buildMember(m *api.Member) jsonMember {
	return jsonMember{
		Kind:       string(m.Kind),
		Name:       m.Name,
		LinkID:     m.LinkID,
		Line:       m.Line,
		Category:   m.Category,
		Type:       MemberType(m),
		Modifiers:  memberModifiers(m),
		Parameters: buildParameters(m.Arguments),
		Options:    buildParameters(m.ArgumentsObject),
		Doc:        m.Doc,
	}
}

func buildParameters(params []api.Param) []jsonParameter {
	if len(params) == 0 {
		return nil
	}
	result := make([]jsonParameter, len(params))
	for i, p := range params {
		result[i] = jsonParameter{
			Name:     p.Name,
			Type:     p.Type,
			Modifier: p.Nullability.String(),
		}
	}
	return result
}

func memberModifiers(m *api.Member) []string {
	var mods []string
	if m.IsPrivate {
		mods = append(mods, "private")
	}
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsAsync {
		mods = append(mods, "async")
	}
	if m.IsConst {
		mods = append(mods, "const")
	}
	if m.Optional {
		mods = append(mods, "optional")
	}
	if m.Kind == api.KindProperty {
		mods = append(mods, m.Access.String())
	}
	return mods
}
