// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"fuelir/internal/lsp"
)

const lsName = "fuelir"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler()

	// Unlike the teacher's own cmd/kanso-lsp, SetTrace is deliberately
	// omitted here: the teacher's wiring references
	// kansoHandler.SetTrace, a method that does not exist anywhere on
	// KansoHandler, and that non-reference is not carried forward.
	handler = protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidClose:  h.TextDocumentDidClose,
		TextDocumentDidChange: h.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting fuelir-lsp server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting fuelir-lsp server:", err)
		os.Exit(1)
	}
}
