package errors

// Error codes for the FuelVM IR toolchain.
//
// Error code ranges:
// E0100-E0199: irtext parser/lexer errors
// E0200-E0299: IR well-formedness (verifier) errors
// W0001-W0099: Warning codes

const (
	// Parser errors (E0100-E0199)

	// E0100: Lexical/syntax error raised by the irtext parser
	ErrorSyntax = "E0100"

	// E0101: Reference to a block label that is not declared in the
	// enclosing function
	ErrorUndefinedBlock = "E0101"

	// E0102: Reference to a function name that is not declared in the
	// enclosing module
	ErrorUndefinedFunction = "E0102"

	// E0103: Reference to a value name (%N) that has not been bound by
	// a block parameter or a prior instruction
	ErrorUndefinedValue = "E0103"

	// E0104: Reference to a pointer name ($N) that has not been
	// declared in the function's pointer table
	ErrorUndefinedPointer = "E0104"

	// E0105: Duplicate block label within one function
	ErrorDuplicateBlock = "E0105"

	// Verifier errors (E0200-E0299) -- structural invariants I1-I4

	// E0200: I1 -- a block's last instruction is not a terminator, or a
	// terminator appears before the last instruction
	ErrorMissingTerminator = "E0200"

	// E0201: I2 -- a branch target's formal parameter arity/types do
	// not match the supplied argument vector
	ErrorBlockArgMismatch = "E0201"

	// E0202: I2 -- a branch's source block is not recorded in the
	// target's predecessor set
	ErrorMissingPredecessor = "E0202"

	// E0203: I3 -- an instruction operand does not resolve to a live
	// Value in the context's value arena
	ErrorUnresolvedOperand = "E0203"

	// E0204: I4 -- TypeOf presence/absence disagrees with the
	// instruction's variant
	ErrorResultTypeMismatch = "E0204"

	// Warning codes (W0001-W0099)

	// W0001: a block is unreachable from its function's entry block
	WarningUnreachableBlock = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorSyntax:
		return "irtext source could not be parsed"
	case ErrorUndefinedBlock:
		return "branch target names a block not declared in this function"
	case ErrorUndefinedFunction:
		return "call references a function not declared in this module"
	case ErrorUndefinedValue:
		return "operand references a value not bound in this function"
	case ErrorUndefinedPointer:
		return "get_ptr references a pointer not declared in this function"
	case ErrorDuplicateBlock:
		return "block label already declared in this function"
	case ErrorMissingTerminator:
		return "block does not end in exactly one terminator at its tail"
	case ErrorBlockArgMismatch:
		return "branch argument vector does not match the target block's formal parameters"
	case ErrorMissingPredecessor:
		return "branch source block missing from target's predecessor set"
	case ErrorUnresolvedOperand:
		return "instruction operand does not resolve in the value arena"
	case ErrorResultTypeMismatch:
		return "TypeOf presence disagrees with the instruction's variant"
	case WarningUnreachableBlock:
		return "block has no path from the function's entry block"
	default:
		return "unknown error code"
	}
}

// IsWarning reports whether code names a warning rather than a hard error.
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code.
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Verifier"
	case len(code) > 0 && code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}
