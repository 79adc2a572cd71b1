package format

import (
	"io"
	"strings"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/tstype"
)

const indent = "    "

type Option func(*DeclarationEncoder)

// WithModule exports every top level declaration instead of declaring it
// globally.
func WithModule() Option {
	return func(e *DeclarationEncoder) {
		e.module = true
	}
}

// WithoutPrelude leaves out the primitive aliases and base interfaces.
func WithoutPrelude() Option {
	return func(e *DeclarationEncoder) {
		e.prelude = false
	}
}

// DeclarationEncoder writes a symbol table as a TypeScript declaration file.
// Globals come first, then one declaration per section, each in encounter
// order. Opaque members are never written.
type DeclarationEncoder struct {
	w       io.Writer
	table   *api.Table
	module  bool
	prelude bool
}

func NewDeclarationEncoder(w io.Writer, opts ...Option) *DeclarationEncoder {
	e := &DeclarationEncoder{w: w, prelude: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *DeclarationEncoder) Encode(table *api.Table) error {
	e.table = table
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DeclarationEncoder) MarshalText() ([]byte, error) {
	var blocks []string

	if e.prelude {
		blocks = append(blocks, e.preludeText())
	}

	if e.table != nil {
		for _, m := range e.table.Globals.All() {
			blocks = append(blocks, e.global(m))
		}
		for _, s := range e.table.Sections {
			switch entry := s.Entry.(type) {
			case *api.ClassEntry:
				blocks = append(blocks, e.class(entry))
			case *api.EnumEntry:
				blocks = append(blocks, e.enum(entry))
			}
		}
	}

	if len(blocks) == 0 {
		return nil, nil
	}
	return []byte(strings.Join(blocks, "\n")), nil
}

func (e *DeclarationEncoder) keyword() string {
	if e.module {
		return "export "
	}
	return "declare "
}

func (e *DeclarationEncoder) preludeText() string {
	var sb strings.Builder
	for _, line := range prelude {
		if rest, ok := strings.CutPrefix(line, keywordPlaceholder); ok {
			line = e.keyword() + rest
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (e *DeclarationEncoder) global(m *api.Member) string {
	var sb strings.Builder
	writeDoc(&sb, m.Doc, "")
	sb.WriteString(e.keyword())
	sb.WriteString(MemberDeclaration(m, false))
	sb.WriteString("\n")
	return sb.String()
}

func (e *DeclarationEncoder) class(c *api.ClassEntry) string {
	var sb strings.Builder
	writeDoc(&sb, c.Doc, "")

	sb.WriteString(e.keyword())
	if c.IsInterface {
		sb.WriteString("interface ")
	} else {
		sb.WriteString("class ")
	}
	sb.WriteString(c.Name)
	if c.Extends != "" {
		sb.WriteString(" extends ")
		sb.WriteString(c.Extends)
	}
	sb.WriteString(" {\n")

	var members []string
	if !c.IsInterface {
		switch {
		case c.IsPrivate:
			members = append(members, indent+"private constructor();\n")
		case c.Constructor != nil && len(c.Constructor.Arguments)+len(c.Constructor.ArgumentsObject) > 0:
			members = append(members, memberText(c.Constructor, false))
		}
	}
	for _, m := range c.Components {
		if c.IsInterface && (m.IsStatic || m.IsPrivate || m.Kind == api.KindConstructor) {
			continue
		}
		members = append(members, memberText(m, c.IsInterface))
	}
	sb.WriteString(strings.Join(members, "\n"))

	sb.WriteString("}\n")
	return sb.String()
}

func (e *DeclarationEncoder) enum(en *api.EnumEntry) string {
	var sb strings.Builder
	writeDoc(&sb, en.Doc, "")

	sb.WriteString(e.keyword())
	sb.WriteString("class ")
	sb.WriteString(en.Name)
	sb.WriteString(" {\n")
	sb.WriteString(indent + "private constructor();\n")
	for _, f := range en.Fields {
		sb.WriteString("\n")
		writeDoc(&sb, f.Doc, indent)
		sb.WriteString(indent + "static readonly " + f.Name + ": " + en.Name + ";\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func memberText(m *api.Member, iface bool) string {
	var sb strings.Builder
	writeDoc(&sb, m.Doc, indent)
	sb.WriteString(indent)
	sb.WriteString(MemberDeclaration(m, iface))
	sb.WriteString("\n")
	return sb.String()
}

// MemberDeclaration renders the single line declaring m, without its
// documentation and without any top level visibility keyword.
func MemberDeclaration(m *api.Member, iface bool) string {
	var sb strings.Builder

	switch m.Kind {
	case api.KindFunction:
		sb.WriteString("function " + m.Name + signature(m) + ";")
	case api.KindSymbol, api.KindConstant:
		if m.IsConst {
			sb.WriteString("const ")
		} else {
			sb.WriteString("var ")
		}
		sb.WriteString(m.Name + ": " + tstype.Translate(m.Type, m.Nullability.Nullable()) + ";")
	case api.KindConstructor:
		sb.WriteString("constructor(" + parameters(m) + ");")
	case api.KindMethod:
		sb.WriteString(modifiers(m, iface))
		sb.WriteString(m.Name)
		if iface && m.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(signature(m) + ";")
	case api.KindProperty:
		sb.WriteString(property(m, iface))
	default:
		sb.WriteString(m.Name + ";")
	}

	return sb.String()
}

func modifiers(m *api.Member, iface bool) string {
	if iface {
		return ""
	}
	var mods string
	if m.IsPrivate {
		mods += "private "
	}
	if m.IsStatic {
		mods += "static "
	}
	return mods
}

func property(m *api.Member, iface bool) string {
	typ := tstype.Translate(m.Type, m.Nullability.Nullable())
	mods := ""
	if m.IsStatic && !iface {
		mods = "static "
	}
	switch m.Access {
	case api.ReadOnly:
		return mods + "readonly " + m.Name + ": " + typ + ";"
	case api.WriteOnly:
		return mods + "set " + m.Name + "(value: " + typ + ");"
	case api.PrivateOnly:
		if !iface {
			mods = "private " + mods
		}
	}
	return mods + m.Name + ": " + typ + ";"
}

// signature renders "(parameters): ReturnType".
func signature(m *api.Member) string {
	return "(" + parameters(m) + "): " + returnType(m)
}

func returnType(m *api.Member) string {
	t := "void"
	if m.Return != nil {
		t = tstype.Translate(m.Return.Type, m.Return.Nullability.Nullable())
	}
	if m.IsAsync && !strings.HasPrefix(t, "Promise<") {
		t = "Promise<" + t + ">"
	}
	return t
}

// parameters renders the positional parameters followed by the options bag.
// A parameter is only optional when every parameter after it is optional as
// well; a required options bag field makes every positional parameter
// required.
func parameters(m *api.Member) string {
	bagRequired := false
	for _, p := range m.ArgumentsObject {
		if !p.Nullability.Optional() {
			bagRequired = true
		}
	}

	lastRequired := -1
	for i, p := range m.Arguments {
		if !p.Nullability.Optional() && !p.IsRest() {
			lastRequired = i
		}
	}
	if bagRequired {
		lastRequired = len(m.Arguments)
	}

	var out []string
	for i, p := range m.Arguments {
		out = append(out, parameter(p, i > lastRequired && p.Nullability.Optional()))
	}

	if len(m.ArgumentsObject) > 0 {
		name := m.ArgumentsObjectName
		if name == "" {
			name = api.OptionsBagName
		}
		fields := make([]string, len(m.ArgumentsObject))
		for i, p := range m.ArgumentsObject {
			fields[i] = parameter(p, p.Nullability.Optional())
		}
		bag := strings.TrimPrefix(name, "...")
		if !bagRequired {
			bag += "?"
		}
		out = append(out, bag+": { "+strings.Join(fields, "; ")+" }")
	}

	return strings.Join(out, ", ")
}

func parameter(p api.Param, optional bool) string {
	typ := tstype.Translate(p.Type, false)
	if p.IsRest() {
		if !strings.HasSuffix(typ, "[]") {
			typ = tstype.Wrap(typ) + "[]"
		}
		return p.Name + ": " + typ
	}
	name := p.Name
	if optional {
		name += "?"
	}
	return name + ": " + typ
}

// writeDoc writes doc as a block comment at the given indentation.
func writeDoc(sb *strings.Builder, doc, prefix string) {
	if strings.TrimSpace(doc) == "" {
		return
	}
	sb.WriteString(prefix + "/**\n")
	for _, line := range strings.Split(doc, "\n") {
		line = strings.ReplaceAll(line, "*/", "*\\/")
		if strings.TrimSpace(line) == "" {
			sb.WriteString(prefix + " *\n")
			continue
		}
		sb.WriteString(prefix + " * " + line + "\n")
	}
	sb.WriteString(prefix + " */\n")
}
