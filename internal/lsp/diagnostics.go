package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"fuelir/internal/errors"
)

// ConvertParseError transforms a participle parse error into a single
// LSP diagnostic, the irtext analogue of the teacher's
// ConvertParseErrors/ConvertScanErrors pair -- the textual grammar
// here has no separate scanner-error category, so one conversion
// covers both.
func ConvertParseError(err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("fuelir-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	line := uint32(0)
	if pos.Line > 0 {
		line = uint32(pos.Line - 1)
	}
	col := uint32(0)
	if pos.Column > 0 {
		col = uint32(pos.Column - 1)
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 5},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("fuelir-parser"),
		Message:  pe.Message(),
	}}
}

// ConvertCompilerErrors transforms the collected lowering/verification
// diagnostics into LSP diagnostics. Position is presently always the
// zero value: neither Lower nor verify.Module sets a source position,
// so every diagnostic lands on line 1 column 1.
func ConvertCompilerErrors(diags []errors.CompilerError) []protocol.Diagnostic {
	var out []protocol.Diagnostic
	for _, d := range diags {
		line := uint32(0)
		if d.Position.Line > 0 {
			line = uint32(d.Position.Line - 1)
		}
		col := uint32(0)
		if d.Position.Column > 0 {
			col = uint32(d.Position.Column - 1)
		}
		endCol := col + 1
		if d.Length > 0 {
			endCol = col + uint32(d.Length)
		}

		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: col},
				End:   protocol.Position{Line: line, Character: endCol},
			},
			Severity: ptrSeverity(severityOf(d.Level)),
			Source:   ptrString("fuelir"),
			Message:  d.Code + ": " + d.Message,
		})
	}
	return out
}

func severityOf(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note, errors.Help:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func ptrString(s string) *string { return &s }
