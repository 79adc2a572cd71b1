// Package extract builds a symbol table from annotated source.
//
// The source is first split into type sections. Each documentation block in a
// section is parsed, the declaration that follows it is classified, and the
// result is recorded in the section's entry or in the table's globals.
package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/docblock"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/tstype"
)

var log = commonlog.GetLogger("dtsgen.extract")

const (
	docStart = "/**"
	docEnd   = "*/"

	globalOwner = "global"
)

// Context holds the state of one extraction run. A Context is not safe for
// concurrent use; separate runs use separate contexts.
type Context struct {
	table      *api.Table
	source     string
	lineStarts []int
	serial     int

	// implicit is the section that declarations in an anonymous section
	// attach to after a class, constructor or enum has been declared there.
	implicit *api.Section
}

func NewContext(source string) *Context {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Context{
		table:      api.NewTable(),
		source:     source,
		lineStarts: starts,
	}
}

// Extract runs a complete extraction over source.
func Extract(source string) *api.Table {
	return NewContext(source).Run()
}

// Run processes every section of the source and returns the table.
func (c *Context) Run() *api.Table {
	for _, ts := range Segment(c.source) {
		c.processSection(ts)
	}
	log.Debugf("extracted %d globals and %d sections", c.table.Globals.Len(), len(c.table.Sections))
	return c.table
}

func (c *Context) processSection(ts api.TypeSection) {
	var current *api.Section
	c.implicit = nil
	if !ts.IsAnonymous() {
		current = c.sectionNamed(ts.TypeName, ts.Offset)
		current.Interface = current.Interface || ts.Interface
	}

	body := ts.Body
	pos := 0
	for {
		start := strings.Index(body[pos:], docStart)
		if start < 0 {
			return
		}
		start += pos
		end := strings.Index(body[start+len(docStart):], docEnd)
		if end < 0 {
			log.Warningf("unterminated documentation block at line %d", c.lineAt(ts.Offset+start))
			return
		}
		end += start + len(docStart) + len(docEnd)
		pos = end

		declStart := end + len(body[end:]) - len(strings.TrimLeft(body[end:], " \t\r\n"))
		text := body[declStart:]
		if text == "" || strings.HasPrefix(text, "/*") {
			continue
		}

		block := docblock.Parse(body[start:end])
		cls := Classify(Declaration{
			Text:      text,
			InSection: current != nil || c.implicit != nil,
			Interface: ts.Interface,
			Required:  block.Required,
		})
		c.apply(current, cls, block, c.lineAt(ts.Offset+declStart))
	}
}

func (c *Context) apply(current *api.Section, cls Classification, block *docblock.Block, line int) {
	switch cls.Shape {
	case ShapeInstanceMethod, ShapeStaticMethod:
		target := c.target(current, cls.Owner)
		if cls.IsConstructor {
			c.setConstructor(target, cls, block, line)
			return
		}
		if target == nil {
			c.setGlobal(api.KindFunction, cls, block, line)
			return
		}
		if class := c.classOf(target); class != nil {
			class.Components = append(class.Components, c.member(api.KindMethod, target.TypeName, cls, block, line))
		}

	case ShapeFunctionLiteral, ShapeFunction:
		if !cls.IsConstructor {
			c.setGlobal(api.KindFunction, cls, block, line)
			return
		}
		target := current
		if target == nil {
			target = c.declare(cls.Name, line)
		}
		c.setConstructor(target, cls, block, line)

	case ShapeClass:
		target := current
		if target == nil {
			target = c.declare(cls.Name, line)
		}
		if class := c.classOf(target); class != nil {
			class.Extends = cls.Extends
			class.Doc = block.Text()
		}

	case ShapeEnum:
		if !cls.IsEnumField {
			target := current
			if target == nil {
				target = c.declare(cls.Name, line)
			}
			if enum := c.enumOf(target); enum != nil {
				enum.Doc = block.Text()
			}
			return
		}
		target := c.target(current, "")
		if target == nil {
			c.opaque(cls, line)
			return
		}
		if enum := c.enumOf(target); enum != nil {
			enum.Fields = append(enum.Fields, c.member(api.KindConstant, target.TypeName, cls, block, line))
		}

	case ShapeTypedVariable, ShapeVariable:
		c.setGlobal(api.KindSymbol, cls, block, line)

	case ShapeTypedProperty, ShapeProperty, ShapeAccessor:
		target := c.target(current, "")
		if target == nil {
			c.opaque(cls, line)
			return
		}
		class := c.classOf(target)
		if class == nil {
			return
		}
		if existing := findProperty(class, cls.Name, cls.IsStatic); existing != nil {
			log.Debugf("property %s.%s already declared at line %d", target.TypeName, cls.Name, existing.Line)
			return
		}
		class.Components = append(class.Components, c.property(target.TypeName, cls, block, line))

	default:
		c.opaque(cls, line)
	}
}

// target returns the section a member belongs to: the section named by an
// explicit owner, else the current named section, else the implicit one.
func (c *Context) target(current *api.Section, owner string) *api.Section {
	if owner != "" {
		return c.sectionNamed(owner, -1)
	}
	if current != nil {
		return current
	}
	return c.implicit
}

// declare opens a section for a type declared in an anonymous section.
func (c *Context) declare(name string, line int) *api.Section {
	s := c.sectionNamed(name, -1)
	if s.Line == 0 {
		s.Line = line
	}
	c.implicit = s
	return s
}

// sectionNamed returns the section with the given name, creating it when
// needed. Sections sharing a name are merged.
func (c *Context) sectionNamed(name string, offset int) *api.Section {
	if s := c.table.Section(name); s != nil {
		return s
	}
	s := &api.Section{TypeSection: api.TypeSection{TypeName: name}}
	if offset >= 0 {
		s.Offset = offset
		s.Line = c.lineAt(offset)
	}
	c.table.Sections = append(c.table.Sections, s)
	return s
}

// classOf returns the class entry of s, creating it on first use. A section
// that already holds an enum keeps it and the class member is dropped.
func (c *Context) classOf(s *api.Section) *api.ClassEntry {
	switch e := s.Entry.(type) {
	case *api.ClassEntry:
		return e
	case nil:
		class := &api.ClassEntry{Name: s.TypeName, IsInterface: s.Interface}
		s.Entry = class
		return class
	}
	log.Warningf("section %s is an enum, dropping class member", s.TypeName)
	return nil
}

// enumOf is the enum counterpart of classOf.
func (c *Context) enumOf(s *api.Section) *api.EnumEntry {
	switch e := s.Entry.(type) {
	case *api.EnumEntry:
		return e
	case nil:
		enum := &api.EnumEntry{Name: s.TypeName}
		s.Entry = enum
		return enum
	}
	log.Warningf("section %s is a class, dropping enum field", s.TypeName)
	return nil
}

func (c *Context) setConstructor(s *api.Section, cls Classification, block *docblock.Block, line int) {
	if s == nil {
		c.opaque(cls, line)
		return
	}
	class := c.classOf(s)
	if class == nil {
		return
	}
	m := c.member(api.KindConstructor, s.TypeName, cls, block, line)
	m.Name = "constructor"
	class.Constructor = m
	class.IsPrivate = class.IsPrivate || cls.IsPrivate
	if class.Doc == "" {
		class.Doc = block.Text()
	}
}

func (c *Context) setGlobal(kind api.Kind, cls Classification, block *docblock.Block, line int) {
	m := c.member(kind, "", cls, block, line)
	switch kind {
	case api.KindFunction:
		if m.Return == nil && cls.Annotation != "" {
			typ, n := tstype.StripModifier(cls.Annotation)
			m.Return = &api.Return{Type: typ, Nullability: n}
		}
	case api.KindSymbol:
		m.Type, m.Nullability = tstype.StripModifier(cls.Annotation)
	}
	c.table.Globals.Set(m)
}

// property builds a property member. Without an inline annotation the type
// comes from the getter's return or the setter's parameter.
func (c *Context) property(owner string, cls Classification, block *docblock.Block, line int) *api.Member {
	m := c.member(api.KindProperty, owner, cls, block, line)
	switch {
	case cls.Annotation != "":
		m.Type, m.Nullability = tstype.StripModifier(cls.Annotation)
	case block.Return != nil:
		m.Type, m.Nullability = block.Return.Type, block.Return.Nullability
	case len(block.Params) > 0:
		m.Type, m.Nullability = block.Params[0].Type, block.Params[0].Nullability
	}
	return m
}

func (c *Context) opaque(cls Classification, line int) {
	c.table.Opaque = append(c.table.Opaque, c.member(api.KindOpaque, "", cls, &docblock.Block{}, line))
}

func (c *Context) member(kind api.Kind, owner string, cls Classification, block *docblock.Block, line int) *api.Member {
	c.serial++
	if owner == "" {
		owner = globalOwner
	}
	m := &api.Member{
		Kind:            kind,
		Name:            cls.Name,
		LinkID:          fmt.Sprintf("%s.%s.%d", owner, cls.Name, c.serial),
		Line:            line,
		Category:        cls.Category,
		IsPrivate:       cls.IsPrivate,
		IsStatic:        cls.IsStatic,
		IsAsync:         cls.IsAsync,
		IsConst:         cls.IsConst,
		Optional:        cls.Optional,
		Arguments:       block.Params,
		ArgumentsObject: block.Options,
		Return:          block.Return,
		Doc:             block.Text(),
		Read:            cls.Read,
		Write:           cls.Write,
		Access:          cls.Access,
	}
	if block.OptionsParam != nil {
		m.ArgumentsObjectName = block.OptionsParam.Name
	}
	return m
}

func findProperty(class *api.ClassEntry, name string, static bool) *api.Member {
	for _, m := range class.Components {
		if m.Kind == api.KindProperty && m.Name == name && m.IsStatic == static {
			return m
		}
	}
	return nil
}

// lineAt returns the 1-based line holding offset.
func (c *Context) lineAt(offset int) int {
	return sort.Search(len(c.lineStarts), func(i int) bool {
		return c.lineStarts[i] > offset
	})
}
