package ir

// InstructionIterator yields a block's instruction Values in a
// snapshot taken at construction: concurrent appends to the block do
// not extend the traversal, and in-place operand rewrites on already-
// allocated instructions remain visible because the iterator yields
// handles, not copies (spec.md §4.5).
type InstructionIterator struct {
	values []Value
	fwd    int // next index to yield going forward
	back   int // next index to yield going backward (exclusive upper bound is back)
}

// NewInstructionIterator captures b's current instruction list.
func (c *Context) NewInstructionIterator(b Block) *InstructionIterator {
	snapshot := c.Instructions(b)
	return &InstructionIterator{values: snapshot, fwd: 0, back: len(snapshot)}
}

// Next yields the next Value in forward order, or ok=false when the
// forward and backward cursors have met.
func (it *InstructionIterator) Next() (Value, bool) {
	if it.fwd >= it.back {
		return Value{}, false
	}
	v := it.values[it.fwd]
	it.fwd++
	return v, true
}

// NextBack yields the next Value in reverse order, or ok=false when
// the cursors have met. Satisfies R3 alongside Next/CollectReverse.
func (it *InstructionIterator) NextBack() (Value, bool) {
	if it.fwd >= it.back {
		return Value{}, false
	}
	it.back--
	return it.values[it.back], true
}

// Len reports how many Values remain unyielded in either direction.
func (it *InstructionIterator) Len() int { return it.back - it.fwd }

// Collect drains the remaining forward order into a slice. This
// exhausts the iterator in both directions, so callers needing both
// orders should construct two iterators.
func (it *InstructionIterator) Collect() []Value {
	out := make([]Value, 0, it.Len())
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// CollectReverse drains the remaining values in backward order.
func (it *InstructionIterator) CollectReverse() []Value {
	out := make([]Value, 0, it.Len())
	for {
		v, ok := it.NextBack()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
