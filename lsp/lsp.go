// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package lsp serves ram source files to editors over the Language
// Server Protocol: parse diagnostics, formatting, go to label and
// block symbols.
package lsp

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/ezrec/ram/asm"
	"github.com/ezrec/ram/ram"
)

const lspName = "ram-lsp"

// Server bridges LSP editor features to the ram parser and formatter.
type Server struct {
	host *ram.Host
	log  commonlog.Logger

	mu   sync.Mutex
	docs map[string]string // URI → full document content

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// New creates a language server using a host's configuration.
func New(host *ram.Host) *Server {
	s := &Server{
		host:    host,
		log:     commonlog.GetLogger(lspName),
		docs:    make(map[string]string),
		version: "0.1.0",
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentFormatting:     s.textDocumentFormatting,
		TextDocumentDefinition:     s.textDocumentDefinition,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}

	s.server = glspserver.NewServer(&s.handler, lspName, false)

	return s
}

// RunStdio serves on stdio. Blocks until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// --- Lifecycle ---

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.log.Infof("%s %s initializing", lspName, s.version)

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.DocumentFormattingProvider = true
	capabilities.DefinitionProvider = true
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.log.Info("shutdown")
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// --- Document synchronization ---

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	text := params.TextDocument.Text

	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()

	s.publishDiagnostics(ctx, uri, text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	// With Full sync, the last change event holds the whole text.
	if len(params.ContentChanges) == 0 {
		return nil
	}
	whole, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.docs[uri] = whole.Text
	s.mu.Unlock()

	s.publishDiagnostics(ctx, uri, whole.Text)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) document(uri protocol.DocumentUri) (text string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok = s.docs[uri]
	return
}

// --- Language features ---

func (s *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	return formatEdits(s.host, text), nil
}

func (s *Server) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := params.TextDocument.URI
	text, ok := s.document(uri)
	if !ok {
		return nil, nil
	}

	loc := definition(s.host, uri, text, params.Position)
	if loc == nil {
		return nil, nil
	}

	return *loc, nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	return symbols(s.host, text), nil
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	diagnostics := diagnose(s.host, text)
	if len(diagnostics) != 0 {
		s.log.Debugf("%s: %s", uri, diagnostics[0].Message)
	}

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// --- Analysis ---

// positioned is implemented by parse errors that know their location.
type positioned interface {
	Position() asm.Pos
}

// diagnose parses text, and reports the first error, if any.
func diagnose(host *ram.Host, text string) []protocol.Diagnostic {
	_, err := host.Parse(text)
	if err != nil {
		pos := asm.Pos{Line: 1, Col: 1}
		var perr positioned
		if errors.As(err, &perr) {
			pos = perr.Position()
		}

		start := toPosition(pos)
		end := start
		end.Character += protocol.UInteger(max(1, utf8.RuneCountInString(wordAt(text, start))))

		severity := protocol.DiagnosticSeverityError
		source := lspName
		return []protocol.Diagnostic{{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   &source,
			Message:  err.Error(),
		}}
	}

	return []protocol.Diagnostic{}
}

// formatEdits replaces the whole document with its canonical form. Text
// that does not parse, or is already canonical, produces no edits.
func formatEdits(host *ram.Host, text string) []protocol.TextEdit {
	formatted, err := host.Format(text)
	if err != nil || formatted == text {
		return nil
	}

	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   documentEnd(text),
		},
		NewText: formatted,
	}}
}

// definition locates the block declaring the label under the cursor.
func definition(host *ram.Host, uri protocol.DocumentUri, text string, pos protocol.Position) *protocol.Location {
	word := wordAt(text, pos)
	if len(word) == 0 {
		return nil
	}

	prog, err := host.Parse(text)
	if err != nil {
		return nil
	}

	index, ok := prog.Lookup(word)
	if !ok {
		return nil
	}

	blk := &prog.Blocks[index]
	return &protocol.Location{
		URI:   uri,
		Range: labelRange(blk),
	}
}

// symbols lists the blocks of a document.
func symbols(host *ram.Host, text string) []protocol.DocumentSymbol {
	prog, err := host.Parse(text)
	if err != nil {
		return nil
	}

	lines := strings.Split(text, "\n")

	result := make([]protocol.DocumentSymbol, 0, len(prog.Blocks))
	for n := range prog.Blocks {
		blk := &prog.Blocks[n]

		last := blk.Pos.Line
		if len(blk.Instructions) != 0 {
			last = blk.Instructions[len(blk.Instructions)-1].Position().Line
		}
		end := protocol.Position{
			Line:      protocol.UInteger(last - 1),
			Character: protocol.UInteger(utf8.RuneCountInString(strings.TrimRight(lines[last-1], "\r"))),
		}

		detail := fmt.Sprintf("%d instructions", len(blk.Instructions))
		result = append(result, protocol.DocumentSymbol{
			Name:           blk.Label,
			Detail:         &detail,
			Kind:           protocol.SymbolKindFunction,
			Range:          protocol.Range{Start: toPosition(blk.Pos), End: end},
			SelectionRange: labelRange(blk),
		})
	}

	return result
}

// --- Position helpers ---

// toPosition converts a 1-based source position to a 0-based LSP position.
func toPosition(pos asm.Pos) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(0, pos.Line-1)),
		Character: protocol.UInteger(max(0, pos.Col-1)),
	}
}

func labelRange(blk *asm.Block) protocol.Range {
	start := toPosition(blk.Pos)
	end := start
	end.Character += protocol.UInteger(utf8.RuneCountInString(blk.Label))
	return protocol.Range{Start: start, End: end}
}

// documentEnd returns the position just past the last character.
func documentEnd(text string) protocol.Position {
	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	return protocol.Position{
		Line:      protocol.UInteger(len(lines) - 1),
		Character: protocol.UInteger(utf8.RuneCountInString(last)),
	}
}

// wordAt returns the identifier under the cursor.
func wordAt(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := []rune(lines[pos.Line])
	col := min(int(pos.Character), len(line))

	isWord := func(r rune) bool {
		return asm.IsIdentifier(string(r))
	}

	start := col
	for start > 0 && isWord(line[start-1]) {
		start--
	}
	end := col
	for end < len(line) && isWord(line[end]) {
		end++
	}

	return string(line[start:end])
}

func boolPtr(b bool) *bool {
	return &b
}
