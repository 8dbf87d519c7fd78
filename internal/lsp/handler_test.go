package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"fuelir/internal/errors"
	"fuelir/internal/irtext"
	"fuelir/internal/lsp"
	"fuelir/internal/verify"
)

// These exercise the pure conversion helpers directly rather than
// driving Handler through a *glsp.Context -- publish's ctx.Notify call
// needs a live connection, so (as with the teacher's own handler_test,
// which only drives TextDocumentSemanticTokensFull and never DidOpen)
// the transport-facing methods are left to manual/integration testing.

func TestConvertParseErrorProducesOneErrorDiagnostic(t *testing.T) {
	_, err := irtext.ParseSource("bad.fir", "module m {")
	require.Error(t, err)

	diags := lsp.ConvertParseError(err)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.NotEmpty(t, diags[0].Message)
}

func TestConvertCompilerErrorsMapsSeverity(t *testing.T) {
	diags := []errors.CompilerError{
		{Level: errors.Error, Code: "E0101", Message: "undefined block"},
		{Level: errors.Warning, Code: "W0001", Message: "unreachable block"},
	}

	out := lsp.ConvertCompilerErrors(diags)
	require.Len(t, out, 2)
	assert.Equal(t, protocol.DiagnosticSeverityError, *out[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *out[1].Severity)
	assert.Contains(t, out[0].Message, "E0101")
}

func TestLowerThenVerifyProducesNoDiagnosticsForWellFormedModule(t *testing.T) {
	src := `module m {
  fn f() -> u64 {
    entry():
      ret 0;
  }
}`
	parsed, err := irtext.ParseSource("ok.fir", src)
	require.NoError(t, err)

	ctx, mod, diags := irtext.Lower(parsed)
	require.Empty(t, diags)

	diags = append(diags, verify.Module(ctx, mod)...)
	assert.Empty(t, lsp.ConvertCompilerErrors(diags))
}
