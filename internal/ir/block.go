package ir

// blockData is the arena payload behind a Block handle: an ordered
// instruction list, formal parameters, and a predecessor set (spec.md
// §3 "Block").
type blockData struct {
	name     string
	fn       Function
	instrs   []Value
	params   []Value
	predSet  map[Block]bool
	predsOrd []Block // observation order, for deterministic printing
}

func (c *Context) blockData(b Block) *blockData {
	return &c.blocks[b.index]
}

// NewBlock creates an empty Block owned by fn.
func (c *Context) NewBlock(fn Function, name string) Block {
	idx := len(c.blocks)
	c.blocks = append(c.blocks, blockData{
		name:    name,
		fn:      fn,
		predSet: make(map[Block]bool),
	})
	b := Block{index: idx, gen: 1}
	c.functionData(fn).blocks = append(c.functionData(fn).blocks, b)
	return b
}

// BlockName returns a block's declared name.
func (c *Context) BlockName(b Block) string { return c.blockData(b).name }

// BlockFunction returns the Function that owns b.
func (c *Context) BlockFunction(b Block) Function { return c.blockData(b).fn }

// AddBlockParam appends a new formal parameter of the given Type to b
// and returns the Argument Value naming it.
func (c *Context) AddBlockParam(b Block, ty Type) Value {
	bd := c.blockData(b)
	idx := len(bd.params)
	v := c.newValue(valueData{kind: valueKindArgument, argBlock: b, argIndex: idx, argType: ty})
	bd.params = append(bd.params, v)
	return v
}

// BlockParams returns b's formal parameter Values in declaration order.
func (c *Context) BlockParams(b Block) []Value {
	return append([]Value(nil), c.blockData(b).params...)
}

// AddPred idempotently adds pred to b's predecessor set (spec.md §4.2).
func (c *Context) AddPred(b, pred Block) {
	bd := c.blockData(b)
	if bd.predSet[pred] {
		return
	}
	bd.predSet[pred] = true
	bd.predsOrd = append(bd.predsOrd, pred)
}

// Predecessors returns b's predecessor set in first-observed order.
func (c *Context) Predecessors(b Block) []Block {
	return append([]Block(nil), c.blockData(b).predsOrd...)
}

// appendInstruction allocates v as an instruction Value wrapping instr
// and appends it to b's instruction list; it is the single append path
// shared by every builder constructor, Branch, ConditionalBranch and
// Revert included. Branch and ConditionalBranch additionally record
// predecessor edges after appending -- see builder.go.
func (c *Context) appendInstruction(b Block, instr Instruction) Value {
	v := c.newValue(valueData{kind: valueKindInstruction, instr: instr})
	bd := c.blockData(b)
	bd.instrs = append(bd.instrs, v)
	return v
}

// InstructionCount and ParamCount satisfy §6's required Block queries.
func (c *Context) InstructionCount(b Block) int { return len(c.blockData(b).instrs) }
func (c *Context) ParamCount(b Block) int       { return len(c.blockData(b).params) }

// Instructions returns b's instruction Values in append order. Callers
// needing snapshot-stable iteration should use NewInstructionIterator
// instead of holding onto this slice across mutation.
func (c *Context) Instructions(b Block) []Value {
	return append([]Value(nil), c.blockData(b).instrs...)
}

// Terminator returns b's terminating instruction Value, if its
// instruction list is non-empty and ends in one (spec.md §6).
func (c *Context) Terminator(b Block) (Value, bool) {
	instrs := c.blockData(b).instrs
	if len(instrs) == 0 {
		return Value{}, false
	}
	last := instrs[len(instrs)-1]
	instr, ok := c.AsInstruction(last)
	if !ok || !c.IsTerminator(instr) {
		return Value{}, false
	}
	return last, true
}
