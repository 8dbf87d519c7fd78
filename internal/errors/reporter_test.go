package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorReporter(t *testing.T) {
	source := `module m {
  fn f() -> u64 {
    entry():
      ret %unknown
  }
}`

	reporter := NewErrorReporter("test.fir", source)

	err := UndefinedValue("%unknown", Position{Line: 4, Column: 11})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedValue+"]")
	assert.Contains(t, formatted, "undefined value")
	assert.Contains(t, formatted, "%unknown")
	assert.Contains(t, formatted, "test.fir:4:11")
}

func TestUndefinedBlockError(t *testing.T) {
	pos := Position{Line: 2, Column: 8}

	err := UndefinedBlock("nope", pos)
	assert.Equal(t, ErrorUndefinedBlock, err.Code)
	assert.Contains(t, err.Message, "nope")
	assert.Len(t, err.Suggestions, 1)
}

func TestUndefinedFunctionError(t *testing.T) {
	pos := Position{Line: 1, Column: 5}

	err := UndefinedFunction("missing_fn", pos)
	assert.Equal(t, ErrorUndefinedFunction, err.Code)
	assert.Contains(t, err.Message, "missing_fn")
}

func TestMissingTerminatorError(t *testing.T) {
	pos := Position{Line: 3, Column: 1}

	err := MissingTerminator("entry", pos)
	assert.Equal(t, ErrorMissingTerminator, err.Code)
	assert.Contains(t, err.Message, "entry")
	assert.NotEmpty(t, err.HelpText)
}

func TestBlockArgMismatchError(t *testing.T) {
	pos := Position{Line: 5, Column: 1}

	err := BlockArgMismatch("join", 2, 1, pos)
	assert.Equal(t, ErrorBlockArgMismatch, err.Code)
	assert.Contains(t, err.Message, "join")
	assert.Contains(t, err.Message, "1 argument")
	assert.Contains(t, err.Message, "2 parameter")
}

func TestUnreachableBlockWarning(t *testing.T) {
	source := `module m {}`
	reporter := NewErrorReporter("test.fir", source)

	err := UnreachableBlock("dead", Position{Line: 1, Column: 1})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning["+WarningUnreachableBlock+"]")
	assert.True(t, IsWarning(err.Code))
}

func TestErrorMarkerCreation(t *testing.T) {
	source := `let variable = value;`
	reporter := NewErrorReporter("test.fir", source)

	marker := reporter.createMarker(5, 8, Error)

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces)
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "Parser", GetErrorCategory(ErrorSyntax))
	assert.Equal(t, "Verifier", GetErrorCategory(ErrorMissingTerminator))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnreachableBlock))
}
