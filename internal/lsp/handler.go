// Package lsp serves diagnostics for ".fir" textual IR files, adapted
// from the teacher's own internal/lsp: the same glsp.Handler wiring,
// the same per-document mutex-guarded cache, retargeted from Kanso's
// ast.Contract to a parsed+lowered ir.Module and a verify.Module pass.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"fuelir/internal/ir"
	"fuelir/internal/irtext"
	"fuelir/internal/verify"
)

// document is the cached state for one open ".fir" file.
type document struct {
	ctx *ir.Context
	mod *ir.Module
}

// Handler implements the LSP server methods for the textual IR
// surface.
type Handler struct {
	mu   sync.RWMutex
	text map[string]string
	docs map[string]*document
}

// NewHandler returns an empty Handler.
func NewHandler() *Handler {
	return &Handler{
		text: make(map[string]string),
		docs: make(map[string]*document),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("fuelir-lsp: Initialize")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("fuelir-lsp: Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("fuelir-lsp: Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.refreshFromDisk(ctx, params.TextDocument.URI)
}

// TextDocumentDidChange re-reads the file from disk rather than
// trusting the change event's payload shape, matching the teacher's
// own updateAST (which does the same for didChange).
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	return h.refreshFromDisk(ctx, params.TextDocument.URI)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.text, path)
	delete(h.docs, path)
	return nil
}

func (h *Handler) refreshFromDisk(ctx *glsp.Context, uri protocol.DocumentUri) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return h.refresh(ctx, uri, path, string(content))
}

// refresh parses, lowers and verifies content, publishing whatever
// diagnostics result -- parse errors take priority (a module that
// didn't parse has no well-formedness to check).
func (h *Handler) refresh(ctx *glsp.Context, uri protocol.DocumentUri, path, content string) error {
	src, parseErr := irtext.ParseSource(path, content)
	if parseErr != nil {
		publish(ctx, uri, ConvertParseError(parseErr))
		h.mu.Lock()
		h.text[path] = content
		delete(h.docs, path)
		h.mu.Unlock()
		return nil
	}

	irCtx, mod, diags := irtext.Lower(src)
	diags = append(diags, verify.Module(irCtx, mod)...)

	h.mu.Lock()
	h.text[path] = content
	h.docs[path] = &document{ctx: irCtx, mod: mod}
	h.mu.Unlock()

	publish(ctx, uri, ConvertCompilerErrors(diags))
	return nil
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
