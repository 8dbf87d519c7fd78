package ir

// valueKind discriminates what a Value handle denotes, mirroring
// original_source's `ValueDatum` enum.
type valueKind int

const (
	valueKindArgument valueKind = iota
	valueKindConstant
	valueKindInstruction
)

// valueData is the payload behind a Value handle. Exactly one of the
// fields selected by kind is meaningful.
type valueData struct {
	kind valueKind

	// valueKindArgument
	argBlock Block
	argIndex int
	argType  Type

	// valueKindConstant
	constant Constant

	// valueKindInstruction
	instr Instruction
}

func (c *Context) valueData(v Value) valueData {
	return c.values[v.index]
}

// ValueResolvable reports whether v names a live slot in this
// Context's value arena (spec.md §8 I3: "v is resolvable in the Value
// arena"). The zero Value{} (never produced by any constructor, which
// all stamp gen=1) is unresolvable, as is any handle whose index falls
// outside the arena.
func (c *Context) ValueResolvable(v Value) bool {
	return v.gen != 0 && v.index >= 0 && v.index < len(c.values)
}

func (c *Context) newValue(d valueData) Value {
	idx := len(c.values)
	c.values = append(c.values, d)
	return Value{index: idx, gen: 1}
}

// NewConstantValue wraps a Constant as a standalone Value, for use as
// an instruction operand (e.g. an immediate in BinaryOp, or an index
// in GetElmPtr).
func (c *Context) NewConstantValue(k Constant) Value {
	return c.newValue(valueData{kind: valueKindConstant, constant: k})
}

// ValueType returns the Type of any Value: an argument's declared
// type, a constant's Type, or the result type of the instruction that
// produced it (via TypeOf).
func (c *Context) ValueType(v Value) Type {
	d := c.valueData(v)
	switch d.kind {
	case valueKindArgument:
		return d.argType
	case valueKindConstant:
		return d.constant.Ty
	case valueKindInstruction:
		t, _ := c.TypeOf(d.instr)
		return t
	default:
		return Type{}
	}
}

// IsArgument, IsConstant and IsInstruction classify a Value.
func (c *Context) IsArgument(v Value) bool    { return c.valueData(v).kind == valueKindArgument }
func (c *Context) IsConstant(v Value) bool    { return c.valueData(v).kind == valueKindConstant }
func (c *Context) IsInstruction(v Value) bool { return c.valueData(v).kind == valueKindInstruction }

// AsConstant returns the Constant payload of a constant Value.
func (c *Context) AsConstant(v Value) (Constant, bool) {
	d := c.valueData(v)
	if d.kind != valueKindConstant {
		return Constant{}, false
	}
	return d.constant, true
}

// AsInstruction returns the Instruction that produced v, if v is an
// instruction result.
func (c *Context) AsInstruction(v Value) (Instruction, bool) {
	d := c.valueData(v)
	if d.kind != valueKindInstruction {
		return nil, false
	}
	return d.instr, true
}

// ArgumentBlockAndIndex returns the owning Block and positional index
// of a block-parameter Value.
func (c *Context) ArgumentBlockAndIndex(v Value) (Block, int, bool) {
	d := c.valueData(v)
	if d.kind != valueKindArgument {
		return Block{}, 0, false
	}
	return d.argBlock, d.argIndex, true
}

// replaceValueInPlace overwrites an instruction Value's stored
// Instruction, used by ReplaceValuesWithMap to commit the instruction
// ReplaceValues returns. It is a narrow, package-private mutation: the Value handle
// itself never changes, only the Instruction it wraps.
func (c *Context) replaceValueInPlace(v Value, instr Instruction) {
	c.values[v.index].instr = instr
}
