// Package asmtable is the registry of FuelVM inline-assembly opcode
// mnemonics consulted by irtext's lowering pass to validate every
// statement in an AsmBlock's body against a known opcode name
// (unknown mnemonics are reported as irtext syntax errors). It plays
// the same role for assembly opcodes that the teacher's
// internal/stdlib plays for standard-library function signatures: a
// name -> definition table with a membership/lookup helper, no
// behavior beyond bookkeeping.
package asmtable

// OpcodeDefinition describes one FuelVM assembly mnemonic: how many
// register operands it reads, and whether it writes a result register.
type OpcodeDefinition struct {
	Mnemonic   string
	Operands   int // number of register operands the opcode reads
	HasResult  bool
	Volatile   bool // true if the opcode may have a side effect the optimizer must not assume away
	Definition string
}

func newOp(mnemonic string, operands int, hasResult bool, volatile bool, def string) OpcodeDefinition {
	return OpcodeDefinition{Mnemonic: mnemonic, Operands: operands, HasResult: hasResult, Volatile: volatile, Definition: def}
}

// opcodes is the full registry, keyed by mnemonic exactly as it
// appears in asm block text.
var opcodes = map[string]OpcodeDefinition{
	"add":  newOp("add", 2, true, false, "rd = rs1 + rs2"),
	"sub":  newOp("sub", 2, true, false, "rd = rs1 - rs2"),
	"mul":  newOp("mul", 2, true, false, "rd = rs1 * rs2"),
	"div":  newOp("div", 2, true, false, "rd = rs1 / rs2"),
	"mod":  newOp("mod", 2, true, false, "rd = rs1 % rs2"),
	"and":  newOp("and", 2, true, false, "rd = rs1 & rs2"),
	"or":   newOp("or", 2, true, false, "rd = rs1 | rs2"),
	"xor":  newOp("xor", 2, true, false, "rd = rs1 ^ rs2"),
	"not":  newOp("not", 1, true, false, "rd = ~rs1"),
	"sll":  newOp("sll", 2, true, false, "rd = rs1 << rs2"),
	"srl":  newOp("srl", 2, true, false, "rd = rs1 >> rs2"),
	"eq":   newOp("eq", 2, true, false, "rd = rs1 == rs2"),
	"lt":   newOp("lt", 2, true, false, "rd = rs1 < rs2"),
	"gt":   newOp("gt", 2, true, false, "rd = rs1 > rs2"),
	"move": newOp("move", 1, true, false, "rd = rs1"),
	"movi": newOp("movi", 1, true, false, "rd = imm"),

	"lb":  newOp("lb", 2, true, false, "rd = byte at [rs1 + offset]"),
	"lw":  newOp("lw", 2, true, false, "rd = word at [rs1 + offset]"),
	"sb":  newOp("sb", 2, false, true, "store byte rs2 at [rs1 + offset]"),
	"sw":  newOp("sw", 2, false, true, "store word rs2 at [rs1 + offset]"),
	"mcp": newOp("mcp", 3, false, true, "copy rs3 bytes from rs2 to rs1"),
	"mcl": newOp("mcl", 2, false, true, "zero rs2 bytes at rs1"),

	"srw":  newOp("srw", 1, true, true, "rd = state[key rs1]"),
	"srwq": newOp("srwq", 2, false, true, "load 32 bytes from state[key rs2] into [rs1]"),
	"sww":  newOp("sww", 2, false, true, "state[key rs1] = rs2"),
	"swwq": newOp("swwq", 2, false, true, "store 32 bytes from [rs2] into state[key rs1]"),

	"call": newOp("call", 4, true, true, "call contract rs1 with params rs2, coins rs3, gas rs4"),
	"log":  newOp("log", 2, false, true, "emit log entry rs1 with id rs2"),
	"ret":  newOp("ret", 1, false, true, "return rs1"),
	"rvrt": newOp("rvrt", 1, false, true, "revert with rs1"),

	"gtf": newOp("gtf", 2, true, false, "rd = tx field rs2 of input rs1"),
	"bal": newOp("bal", 2, true, false, "rd = balance of asset rs1 held by contract rs2"),
}

// IsKnownOpcode reports whether mnemonic is a recognized asm mnemonic.
func IsKnownOpcode(mnemonic string) bool {
	_, ok := opcodes[mnemonic]
	return ok
}

// Lookup returns the definition for a known asm mnemonic.
func Lookup(mnemonic string) (OpcodeDefinition, bool) {
	def, ok := opcodes[mnemonic]
	return def, ok
}

// Mnemonics returns every registered opcode name, in no defined order.
func Mnemonics() []string {
	names := make([]string, 0, len(opcodes))
	for name := range opcodes {
		names = append(names, name)
	}
	return names
}
