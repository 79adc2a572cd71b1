package api

// TypeSection is one region of source attributed to a declared type, or to
// no type at all when TypeName is empty.
type TypeSection struct {
	TypeName  string
	Body      string
	Interface bool
	// Offset is the byte offset of Body within the full source.
	Offset int
}

// IsAnonymous reports whether the section holds globals only.
func (s TypeSection) IsAnonymous() bool {
	return s.TypeName == ""
}

type EntryKind string

const (
	EntryClass EntryKind = "class"
	EntryEnum  EntryKind = "enum"
)

// Entry is the symbol table entry of a section. It is either a *ClassEntry
// or an *EnumEntry; a section without classified members has no entry.
type Entry interface {
	EntryKind() EntryKind
	entry()
}

type ClassEntry struct {
	Name        string
	Extends     string
	Doc         string
	IsInterface bool
	// IsPrivate makes the class non-constructible from outside.
	IsPrivate   bool
	Constructor *Member
	Components  []*Member
}

func (*ClassEntry) EntryKind() EntryKind { return EntryClass }
func (*ClassEntry) entry()               {}

type EnumEntry struct {
	Name   string
	Doc    string
	Fields []*Member
}

func (*EnumEntry) EntryKind() EntryKind { return EntryEnum }
func (*EnumEntry) entry()               {}

// Section pairs a type section with the entry collected from it.
type Section struct {
	TypeSection
	Line  int
	Entry Entry
}

// Members returns every member of the section's entry in source order.
func (s *Section) Members() []*Member {
	switch e := s.Entry.(type) {
	case *ClassEntry:
		var out []*Member
		if e.Constructor != nil {
			out = append(out, e.Constructor)
		}
		return append(out, e.Components...)
	case *EnumEntry:
		return e.Fields
	}
	return nil
}

// Globals is an insertion-ordered map of top level functions and symbols.
// A later entry with the same name replaces the earlier one in place.
type Globals struct {
	order   []string
	entries map[string]*Member
}

func NewGlobals() *Globals {
	return &Globals{entries: make(map[string]*Member)}
}

func (g *Globals) Set(m *Member) {
	if _, ok := g.entries[m.Name]; !ok {
		g.order = append(g.order, m.Name)
	}
	g.entries[m.Name] = m
}

func (g *Globals) Get(name string) (*Member, bool) {
	m, ok := g.entries[name]
	return m, ok
}

func (g *Globals) Len() int {
	return len(g.order)
}

// All returns the globals in first-encounter order.
func (g *Globals) All() []*Member {
	out := make([]*Member, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.entries[name])
	}
	return out
}

// Table is the complete result of one extraction run.
type Table struct {
	Globals  *Globals
	Sections []*Section
	// Opaque collects documented declarations that matched no shape.
	Opaque []*Member
}

func NewTable() *Table {
	return &Table{Globals: NewGlobals()}
}

// Section returns the named section, or nil.
func (t *Table) Section(name string) *Section {
	for _, s := range t.Sections {
		if s.TypeName == name {
			return s
		}
	}
	return nil
}
