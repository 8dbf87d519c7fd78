package errors

import "fmt"

// IRErrorBuilder provides a fluent interface for building IR-domain
// compiler errors with suggestions, mirroring the teacher's semantic
// error builder.
type IRErrorBuilder struct {
	err CompilerError
}

// NewIRError creates a new error builder at Error level.
func NewIRError(code, message string, pos Position) *IRErrorBuilder {
	return &IRErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewIRWarning creates a new error builder at Warning level.
func NewIRWarning(code, message string, pos Position) *IRErrorBuilder {
	return &IRErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func (b *IRErrorBuilder) WithLength(length int) *IRErrorBuilder {
	b.err.Length = length
	return b
}

func (b *IRErrorBuilder) WithSuggestion(message string) *IRErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *IRErrorBuilder) WithNote(note string) *IRErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *IRErrorBuilder) WithHelp(help string) *IRErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *IRErrorBuilder) Build() CompilerError {
	return b.err
}

// UndefinedBlock creates an error for a branch targeting an
// undeclared block label.
func UndefinedBlock(name string, pos Position) CompilerError {
	return NewIRError(ErrorUndefinedBlock, fmt.Sprintf("undefined block '%s'", name), pos).
		WithLength(len(name)).
		WithSuggestion("check the block label is declared in this function").
		Build()
}

// UndefinedFunction creates an error for a call referencing an
// undeclared function.
func UndefinedFunction(name string, pos Position) CompilerError {
	return NewIRError(ErrorUndefinedFunction, fmt.Sprintf("undefined function '%s'", name), pos).
		WithLength(len(name)).
		WithSuggestion("check the function is declared earlier in this module").
		Build()
}

// UndefinedValue creates an error for an operand naming a value that
// is not bound by any block parameter or prior instruction.
func UndefinedValue(name string, pos Position) CompilerError {
	return NewIRError(ErrorUndefinedValue, fmt.Sprintf("undefined value '%s'", name), pos).
		WithLength(len(name)).
		WithSuggestion("values must be a block parameter or the result of an earlier instruction in the same function").
		Build()
}

// UndefinedPointer creates an error for a get_ptr referencing an
// undeclared pointer name.
func UndefinedPointer(name string, pos Position) CompilerError {
	return NewIRError(ErrorUndefinedPointer, fmt.Sprintf("undefined pointer '%s'", name), pos).
		WithLength(len(name)).
		WithSuggestion("declare the pointer in this function's ptrs block before referencing it").
		Build()
}

// DuplicateBlock creates an error for a block label declared twice in
// one function.
func DuplicateBlock(name string, pos Position) CompilerError {
	return NewIRError(ErrorDuplicateBlock, fmt.Sprintf("duplicate block label '%s'", name), pos).
		WithLength(len(name)).
		WithSuggestion("rename one of the blocks to a unique label").
		Build()
}

// MissingTerminator creates an I1 violation: a non-empty block whose
// last instruction is not a terminator, or a terminator that appears
// before the block's tail.
func MissingTerminator(blockName string, pos Position) CompilerError {
	return NewIRError(ErrorMissingTerminator, fmt.Sprintf("block '%s' does not end in a single terminator", blockName), pos).
		WithNote("every non-empty block must end with exactly one of br, cbr, ret, or revert").
		WithHelp("add a terminator instruction as the block's last instruction").
		Build()
}

// BlockArgMismatch creates an I2 violation: a branch's argument vector
// does not match the target block's formal parameters.
func BlockArgMismatch(targetName string, wantArity, gotArity int, pos Position) CompilerError {
	return NewIRError(ErrorBlockArgMismatch,
		fmt.Sprintf("branch to '%s' supplies %d argument(s), block declares %d parameter(s)", targetName, gotArity, wantArity), pos).
		WithHelp("the argument vector must match the target block's formal parameters pairwise by type").
		Build()
}

// MissingPredecessor creates an I2 violation: a branch's source block
// is absent from the target's recorded predecessor set.
func MissingPredecessor(sourceName, targetName string, pos Position) CompilerError {
	return NewIRError(ErrorMissingPredecessor,
		fmt.Sprintf("block '%s' branches to '%s' but is not recorded in its predecessor set", sourceName, targetName), pos).
		WithNote("every branch/cbr target must record its source block as a predecessor").
		Build()
}

// UnresolvedOperand creates an I3 violation: an instruction operand
// value does not resolve in the context's value arena.
func UnresolvedOperand(instrDesc string, pos Position) CompilerError {
	return NewIRError(ErrorUnresolvedOperand, fmt.Sprintf("%s references an operand that does not resolve", instrDesc), pos).
		Build()
}

// ResultTypeMismatch creates an I4 violation: TypeOf's presence/absence
// disagrees with what the instruction's variant should produce.
func ResultTypeMismatch(instrDesc string, pos Position) CompilerError {
	return NewIRError(ErrorResultTypeMismatch, fmt.Sprintf("%s has an unexpected result-type presence", instrDesc), pos).
		Build()
}

// UnreachableBlock creates a warning for a block with no path from the
// function's entry block.
func UnreachableBlock(blockName string, pos Position) CompilerError {
	return NewIRWarning(WarningUnreachableBlock, fmt.Sprintf("block '%s' is unreachable from the entry block", blockName), pos).
		WithSuggestion("remove the block or add a branch reaching it").
		Build()
}

// SyntaxError wraps a raw irtext parse failure as a CompilerError for
// uniform reporting alongside verifier diagnostics.
func SyntaxError(message string, pos Position) CompilerError {
	return NewIRError(ErrorSyntax, message, pos).Build()
}
