// Package workspace keeps the annotated sources of a project extracted and
// answers editor queries against them.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/extract"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/format"
)

var log = commonlog.GetLogger("dtsgen.workspace")

// SourceExt is the extension of the files scanned from disk.
const SourceExt = ".js"

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*Document
}

// Document is one source file and the symbol table extracted from it.
type Document struct {
	Path    string
	Content []byte
	Table   *api.Table
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll extracts every source file below the root directory.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			if err := w.ScanFile(path); err != nil {
				log.Warningf("scanning %s: %s", path, err)
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

func (w *Workspace) UpdateFile(path string, content []byte) {
	table := extract.Extract(string(content))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = &Document{
		Path:    path,
		Content: content,
		Table:   table,
	}
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths returns the paths of all known documents, sorted.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FindSection returns the section declaring name in any document.
func (w *Workspace) FindSection(name string) *api.Section {
	for _, path := range w.Paths() {
		doc := w.GetFile(path)
		if doc == nil {
			continue
		}
		if s := doc.Table.Section(name); s != nil && s.Entry != nil {
			return s
		}
	}
	return nil
}

// Location is a member found at a position in a document.
type Location struct {
	Member  *api.Member
	Section *api.Section
}

// MemberAt returns the member declared on the given 1-based line.
func (w *Workspace) MemberAt(path string, line int) *Location {
	doc := w.GetFile(path)
	if doc == nil {
		return nil
	}
	for _, m := range doc.Table.Globals.All() {
		if m.Line == line {
			return &Location{Member: m}
		}
	}
	for _, s := range doc.Table.Sections {
		for _, m := range s.Members() {
			if m.Line == line {
				return &Location{Member: m, Section: s}
			}
		}
	}
	return nil
}

// Declaration renders the member at loc as it appears in the declaration
// file.
func (loc *Location) Declaration() string {
	iface := false
	if loc.Section != nil {
		if class, ok := loc.Section.Entry.(*api.ClassEntry); ok {
			iface = class.IsInterface
		}
		if loc.Member.Kind == api.KindConstant {
			return "static readonly " + loc.Member.Name + ": " + loc.Section.TypeName + ";"
		}
	}
	return format.MemberDeclaration(loc.Member, iface)
}

type CompletionKind int

const (
	CompletionKindMethod CompletionKind = iota
	CompletionKindProperty
	CompletionKindConstant
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

// CompletionsFor lists the static members reachable through the type name
// receiver, or nil when no section declares it.
func (w *Workspace) CompletionsFor(receiver string) []CompletionItem {
	s := w.FindSection(receiver)
	if s == nil {
		return nil
	}

	var items []CompletionItem
	for _, m := range s.Members() {
		if m.IsPrivate || !m.IsStatic {
			continue
		}
		item := CompletionItem{
			Label:      m.Name,
			Detail:     format.MemberType(m),
			InsertText: m.Name,
		}
		switch m.Kind {
		case api.KindMethod:
			item.Kind = CompletionKindMethod
			item.InsertText = formatMethodInsert(m)
		case api.KindConstant:
			item.Kind = CompletionKindConstant
			item.Detail = s.TypeName
		default:
			item.Kind = CompletionKindProperty
		}
		items = append(items, item)
	}
	return items
}

func formatMethodInsert(m *api.Member) string {
	if len(m.Arguments) == 0 {
		return m.Name + "()"
	}
	placeholders := make([]string, len(m.Arguments))
	for i, p := range m.Arguments {
		placeholders[i] = "${" + strconv.Itoa(i+1) + ":" + strings.TrimPrefix(p.Name, "...") + "}"
	}
	return m.Name + "(" + strings.Join(placeholders, ", ") + ")"
}
