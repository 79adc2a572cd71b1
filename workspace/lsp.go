package workspace

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/format"
)

const lsName = "dtsgen"

type LSPServer struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentCompletion:     ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"."},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(); err != nil {
		log.Warningf("scanning %s: %s", ls.workspace.RootDir(), err)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.workspace.UpdateFile(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.workspace.ScanFile(path); err != nil {
		log.Warningf("rescanning %s: %s", path, err)
	}
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.workspace.GetFile(path)
	if doc == nil {
		return nil, nil
	}
	return DocumentSymbols(doc), nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	loc := ls.workspace.MemberAt(path, int(params.Position.Line)+1)
	if loc == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: HoverText(loc),
		},
	}, nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	doc := ls.workspace.GetFile(path)
	if doc == nil {
		return nil, nil
	}

	receiver := findReceiver(doc.Content, int(params.Position.Line)+1, int(params.Position.Character))
	if receiver == "" {
		return nil, nil
	}

	completions := ls.workspace.CompletionsFor(receiver)
	if len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		detail := c.Detail
		insertText := c.InsertText
		insertFormat := protocol.InsertTextFormatSnippet

		items = append(items, protocol.CompletionItem{
			Label:            c.Label,
			Kind:             &kind,
			Detail:           &detail,
			InsertText:       &insertText,
			InsertTextFormat: &insertFormat,
		})
	}

	return items, nil
}

// DocumentSymbols lists the declarations of doc: globals at the top level and
// one symbol per section with its members as children.
func DocumentSymbols(doc *Document) []protocol.DocumentSymbol {
	lines := strings.Split(string(doc.Content), "\n")

	var symbols []protocol.DocumentSymbol
	for _, m := range doc.Table.Globals.All() {
		symbols = append(symbols, memberSymbol(m, lines))
	}
	for _, s := range doc.Table.Sections {
		if s.Entry == nil {
			continue
		}
		detail := format.SectionKind(s)
		symbol := protocol.DocumentSymbol{
			Name:   s.TypeName,
			Detail: &detail,
			Kind:   sectionSymbolKind(s),
		}
		last := s.Line
		for _, m := range s.Members() {
			symbol.Children = append(symbol.Children, memberSymbol(m, lines))
			if m.Line > last {
				last = m.Line
			}
		}
		symbol.Range = lineRange(s.Line, last, lines)
		symbol.SelectionRange = lineRange(s.Line, s.Line, lines)
		symbols = append(symbols, symbol)
	}
	return symbols
}

// HoverText renders the declaration of loc followed by its documentation.
func HoverText(loc *Location) string {
	var sb strings.Builder
	sb.WriteString("```typescript\n")
	sb.WriteString(loc.Declaration())
	sb.WriteString("\n```")
	if loc.Member.Doc != "" {
		sb.WriteString("\n\n")
		sb.WriteString(loc.Member.Doc)
	}
	return sb.String()
}

func memberSymbol(m *api.Member, lines []string) protocol.DocumentSymbol {
	detail := m.Category
	r := lineRange(m.Line, m.Line, lines)
	return protocol.DocumentSymbol{
		Name:           m.Name,
		Detail:         &detail,
		Kind:           memberSymbolKind(m),
		Range:          r,
		SelectionRange: r,
	}
}

func sectionSymbolKind(s *api.Section) protocol.SymbolKind {
	switch format.SectionKind(s) {
	case "enum":
		return protocol.SymbolKindEnum
	case "interface":
		return protocol.SymbolKindInterface
	}
	return protocol.SymbolKindClass
}

func memberSymbolKind(m *api.Member) protocol.SymbolKind {
	switch m.Kind {
	case api.KindMethod:
		return protocol.SymbolKindMethod
	case api.KindProperty:
		if m.IsPrivate {
			return protocol.SymbolKindField
		}
		return protocol.SymbolKindProperty
	case api.KindConstructor:
		return protocol.SymbolKindConstructor
	case api.KindFunction:
		return protocol.SymbolKindFunction
	case api.KindConstant:
		return protocol.SymbolKindEnumMember
	}
	if m.IsConst {
		return protocol.SymbolKindConstant
	}
	return protocol.SymbolKindVariable
}

// lineRange spans the 1-based lines from and to in full.
func lineRange(from, to int, lines []string) protocol.Range {
	end := 0
	if to >= 1 && to <= len(lines) {
		end = len(lines[to-1])
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(max(from-1, 0))},
		End:   protocol.Position{Line: protocol.UInteger(max(to-1, 0)), Character: protocol.UInteger(end)},
	}
}

// findReceiver returns the identifier before the "." closest to the left of
// the cursor on the 1-based line.
func findReceiver(content []byte, line, col int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	lineContent := lines[line-1]
	if col > len(lineContent) {
		col = len(lineContent)
	}

	dot := -1
	for i := col - 1; i >= 0; i-- {
		if lineContent[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return ""
	}

	start := dot
	for start > 0 && isIdentByte(lineContent[start-1]) {
		start--
	}
	return lineContent[start:dot]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func toProtocolKind(kind CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case CompletionKindMethod:
		return protocol.CompletionItemKindMethod
	case CompletionKindConstant:
		return protocol.CompletionItemKindEnumMember
	default:
		return protocol.CompletionItemKindProperty
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
