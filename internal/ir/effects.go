package ir

// Operands returns the ordered list of Values instr reads (spec.md
// §4.3.3). This is the authoritative def-use edge list; liveness and
// dead-code elimination are built directly on it.
func (c *Context) Operands(instr Instruction) []Value {
	switch i := instr.(type) {
	case AddrOf:
		return []Value{i.Val}
	case AsmBlock:
		var ops []Value
		for _, a := range i.Args {
			if a.HasInit {
				ops = append(ops, a.Initializer)
			}
		}
		return ops
	case BinaryOp:
		return []Value{i.A, i.B}
	case BitCast:
		return []Value{i.Val}
	case Branch:
		return append([]Value(nil), i.Args...)
	case Call:
		return append([]Value(nil), i.Args...)
	case Cmp:
		return []Value{i.A, i.B}
	case ConditionalBranch:
		ops := []Value{i.Cond}
		ops = append(ops, i.True.Args...)
		ops = append(ops, i.False.Args...)
		return ops
	case ContractCall:
		return []Value{i.Params, i.Coins, i.AssetID, i.Gas}
	case GetStorageKey:
		return nil
	case Gtf:
		return []Value{i.Index}
	case GetPointer:
		// base_ptr is a Pointer handle, not a Value -- deliberately
		// not an operand (spec.md §4.3.3, §9 open question).
		return nil
	case GetElmPtr:
		return []Value{i.Ptr}
	case IntToPtr:
		return []Value{i.Val}
	case Load:
		return []Value{i.PtrVal}
	case Log:
		return []Value{i.Val, i.ID}
	case MemCopy:
		return []Value{i.Dst, i.Src}
	case Nop:
		return nil
	case ReadRegister:
		return nil
	case Ret:
		return []Value{i.Val}
	case Revert:
		return []Value{i.Val}
	case StateLoadQuadWord:
		return []Value{i.LoadVal, i.Key}
	case StateLoadWord:
		return []Value{i.Key}
	case StateStoreQuadWord:
		return []Value{i.StoredVal, i.Key}
	case StateStoreWord:
		return []Value{i.StoredVal, i.Key}
	case Store:
		return []Value{i.Dst, i.Stored}
	default:
		panic("ir: Operands: unhandled instruction variant")
	}
}

// replaceOne chases a value through replaceMap to a fixed point,
// following transitive rewrites per slot (spec.md §4.3.4). The map is
// assumed acyclic.
func replaceOne(v Value, replaceMap map[Value]Value) Value {
	for {
		next, ok := replaceMap[v]
		if !ok {
			return v
		}
		v = next
	}
}

// ReplaceValues rewrites every rewritable operand slot of instr
// in-place, chasing each to a fixed point through replaceMap. Non-Value
// fields (types, names, byte lengths, field ids, Pointer handles,
// register codes) are never touched. Two deliberate asymmetries from
// original_source are preserved here rather than "fixed":
//   - GetPointer.BasePtr is a Pointer handle, not a Value; untouched.
//   - Load.PtrVal is never rewritten (see the Open Questions note in
//     DESIGN.md) even though Operands reports it as an operand.
func (c *Context) ReplaceValues(instr Instruction, replaceMap map[Value]Value) Instruction {
	switch i := instr.(type) {
	case AddrOf:
		i.Val = replaceOne(i.Val, replaceMap)
		return i
	case AsmBlock:
		for idx := range i.Args {
			if i.Args[idx].HasInit {
				i.Args[idx].Initializer = replaceOne(i.Args[idx].Initializer, replaceMap)
			}
		}
		return i
	case BinaryOp:
		i.A = replaceOne(i.A, replaceMap)
		i.B = replaceOne(i.B, replaceMap)
		return i
	case BitCast:
		i.Val = replaceOne(i.Val, replaceMap)
		return i
	case Branch:
		for idx := range i.Args {
			i.Args[idx] = replaceOne(i.Args[idx], replaceMap)
		}
		return i
	case Call:
		for idx := range i.Args {
			i.Args[idx] = replaceOne(i.Args[idx], replaceMap)
		}
		return i
	case Cmp:
		i.A = replaceOne(i.A, replaceMap)
		i.B = replaceOne(i.B, replaceMap)
		return i
	case ConditionalBranch:
		i.Cond = replaceOne(i.Cond, replaceMap)
		for idx := range i.True.Args {
			i.True.Args[idx] = replaceOne(i.True.Args[idx], replaceMap)
		}
		for idx := range i.False.Args {
			i.False.Args[idx] = replaceOne(i.False.Args[idx], replaceMap)
		}
		return i
	case ContractCall:
		i.Params = replaceOne(i.Params, replaceMap)
		i.Coins = replaceOne(i.Coins, replaceMap)
		i.AssetID = replaceOne(i.AssetID, replaceMap)
		i.Gas = replaceOne(i.Gas, replaceMap)
		return i
	case GetStorageKey:
		return i
	case Gtf:
		i.Index = replaceOne(i.Index, replaceMap)
		return i
	case GetPointer:
		return i
	case GetElmPtr:
		i.Ptr = replaceOne(i.Ptr, replaceMap)
		return i
	case IntToPtr:
		i.Val = replaceOne(i.Val, replaceMap)
		return i
	case Load:
		// Deliberately not rewritten -- see the doc comment above.
		return i
	case Log:
		i.Val = replaceOne(i.Val, replaceMap)
		i.ID = replaceOne(i.ID, replaceMap)
		return i
	case MemCopy:
		i.Dst = replaceOne(i.Dst, replaceMap)
		i.Src = replaceOne(i.Src, replaceMap)
		return i
	case Nop:
		return i
	case ReadRegister:
		return i
	case Ret:
		i.Val = replaceOne(i.Val, replaceMap)
		return i
	case Revert:
		i.Val = replaceOne(i.Val, replaceMap)
		return i
	case StateLoadQuadWord:
		i.LoadVal = replaceOne(i.LoadVal, replaceMap)
		i.Key = replaceOne(i.Key, replaceMap)
		return i
	case StateLoadWord:
		i.Key = replaceOne(i.Key, replaceMap)
		return i
	case StateStoreQuadWord:
		i.StoredVal = replaceOne(i.StoredVal, replaceMap)
		i.Key = replaceOne(i.Key, replaceMap)
		return i
	case StateStoreWord:
		i.StoredVal = replaceOne(i.StoredVal, replaceMap)
		i.Key = replaceOne(i.Key, replaceMap)
		return i
	case Store:
		i.Dst = replaceOne(i.Dst, replaceMap)
		i.Stored = replaceOne(i.Stored, replaceMap)
		return i
	default:
		panic("ir: ReplaceValues: unhandled instruction variant")
	}
}

// ReplaceValuesWithMap applies ReplaceValues to the instruction that v
// wraps and commits the rewritten instruction back into the Value's
// arena slot.
func (c *Context) ReplaceValuesWithMap(v Value, replaceMap map[Value]Value) {
	instr, ok := c.AsInstruction(v)
	if !ok {
		return
	}
	c.replaceValueInPlace(v, c.ReplaceValues(instr, replaceMap))
}

// MayHaveSideEffect reports whether instr may change observable state
// outside its result SSA value (spec.md §4.3.5 / I5).
func (c *Context) MayHaveSideEffect(instr Instruction) bool {
	switch instr.(type) {
	case AsmBlock, Call, ContractCall, Log, MemCopy,
		StateLoadQuadWord, StateStoreQuadWord, StateStoreWord, Store:
		return true
	default:
		return false
	}
}

// IsTerminator reports whether instr ends a block (spec.md §4.3.5).
func (c *Context) IsTerminator(instr Instruction) bool {
	switch instr.(type) {
	case Branch, ConditionalBranch, Ret, Revert:
		return true
	default:
		return false
	}
}

// GetAggregate returns the aggregate (Array or Struct) Type involved
// in instr, if any (spec.md §4.3.5). For GetElmPtr this is the
// aggregate the final index selects from: PointeeTy walked through
// every index but the last.
func (c *Context) GetAggregate(instr Instruction) (Type, bool) {
	var t Type
	switch i := instr.(type) {
	case Call:
		t = c.functionData(i.Func).returnType
	case GetPointer:
		t = c.PointeeType(i.PtrTy)
	case GetElmPtr:
		prefix := i.Indices
		if len(prefix) > 0 {
			prefix = prefix[:len(prefix)-1]
		}
		indexed, ok := c.GetIndexedType(i.PointeeTy, prefix)
		if !ok {
			return Type{}, false
		}
		t = indexed
	default:
		return Type{}, false
	}
	if c.IsArray(t) || c.IsStruct(t) {
		return t, true
	}
	return Type{}, false
}
