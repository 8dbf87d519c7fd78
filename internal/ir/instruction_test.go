package ir

import "testing"

// ============================================================================
// TypeOf
// ============================================================================

func TestTypeOfBinaryOpMatchesFirstOperand(t *testing.T) {
	c := NewContext()
	u64 := c.UintType(64)
	a := c.NewConstantValue(c.ConstUintValue(64, 1))
	b := c.NewConstantValue(c.ConstUintValue(64, 2))

	ty, ok := c.TypeOf(BinaryOp{Op: Add, A: a, B: b})
	if !ok {
		t.Fatal("BinaryOp should produce a result type")
	}
	if ty != u64 {
		t.Errorf("BinaryOp type = %s, want %s", c.TypeString(ty), c.TypeString(u64))
	}
}

func TestTypeOfCmpIsBool(t *testing.T) {
	c := NewContext()
	a := c.NewConstantValue(c.ConstUintValue(64, 1))
	b := c.NewConstantValue(c.ConstUintValue(64, 2))

	ty, ok := c.TypeOf(Cmp{Pred: Equal, A: a, B: b})
	if !ok || c.Kind(ty) != KindBool {
		t.Fatalf("Cmp type = %v, ok=%v, want Bool", ty, ok)
	}
}

// TestTypeOfTerminatorsAbsent covers I4: Branch, ConditionalBranch,
// Ret, Revert, Nop produce no result type.
func TestTypeOfTerminatorsAbsent(t *testing.T) {
	c := NewContext()
	f := c.NewFunction("f", nil, c.UnitType())
	entry := c.EntryBlock(f)
	target := c.NewBlock(f, "target")
	v := c.NewConstantValue(c.ConstUintValue(64, 0))

	cases := []Instruction{
		Branch{Target: target},
		ConditionalBranch{Cond: v, True: BranchTarget{Block: target}, False: BranchTarget{Block: entry}},
		Ret{Val: v, Ty: c.UintType(64)},
		Revert{Val: v},
		Nop{},
	}
	for _, instr := range cases {
		if _, ok := c.TypeOf(instr); ok {
			t.Errorf("%T: expected absent type, got a type", instr)
		}
	}
}

// TestLoadStripsPointer covers scenario 2: Load must recursively
// consult the defining Value's Type and strip exactly one Pointer
// layer.
func TestLoadStripsPointer(t *testing.T) {
	c := NewContext()
	u64 := c.UintType(64)
	ptrU64 := c.PointerType(u64, true)
	ptrPtrU64 := c.PointerType(ptrU64, true)

	f := c.NewFunction("f", []Type{ptrU64}, u64)
	entry := c.EntryBlock(f)
	p := c.EntryParams(f)[0]

	ty, ok := c.TypeOf(Load{PtrVal: p})
	if !ok || ty != u64 {
		t.Fatalf("Load(ptr to u64) type = %v ok=%v, want u64", ty, ok)
	}

	// Argument of Pointer(Pointer(Uint64)) strips only one layer.
	pp := c.AddBlockParam(entry, ptrPtrU64)
	ty2, ok := c.TypeOf(Load{PtrVal: pp})
	if !ok || ty2 != ptrU64 {
		t.Fatalf("Load(ptr to ptr to u64) type = %v ok=%v, want ptr<u64>", ty2, ok)
	}
}

// TestGepTyping covers scenario 3: Struct S{a:Uint64, b:Array(Bool,4)},
// GetElmPtr through [1, 2] yields Pointer(Bool); get_aggregate yields
// Array(Bool,4).
func TestGepTyping(t *testing.T) {
	c := NewContext()
	u64 := c.UintType(64)
	boolTy := c.BoolType()
	arr := c.ArrayType(boolTy, 4)
	s := c.StructType([]Type{u64, arr})

	idx1 := c.NewConstantValue(c.ConstUintValue(64, 1))
	idx2 := c.NewConstantValue(c.ConstUintValue(64, 2))
	ptrArg := c.NewConstantValue(c.ConstUintValue(64, 0)) // stand-in ptr value, unused by type_of

	gep := GetElmPtr{Ptr: ptrArg, PointeeTy: s, Indices: []Value{idx1, idx2}}

	ty, ok := c.TypeOf(gep)
	if !ok {
		t.Fatal("GetElmPtr should produce a result type")
	}
	if c.Kind(ty) != KindPointer || c.StripPtrType(ty) != boolTy {
		t.Fatalf("GetElmPtr type = %s, want ptr<bool>", c.TypeString(ty))
	}

	agg, ok := c.GetAggregate(gep)
	if !ok || agg != arr {
		t.Fatalf("GetAggregate(gep) = %v ok=%v, want Array(Bool,4)", agg, ok)
	}
}

// TestGepOutOfRangeIndexPanics covers §4.3.2: an unresolvable index is
// a programmer error, surfaced as a panic.
func TestGepOutOfRangeIndexPanics(t *testing.T) {
	c := NewContext()
	u64 := c.UintType(64)
	s := c.StructType([]Type{u64})
	badIdx := c.NewConstantValue(c.ConstUintValue(64, 5))
	ptrArg := c.NewConstantValue(c.ConstUintValue(64, 0))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range GetElmPtr index")
		}
	}()
	c.TypeOf(GetElmPtr{Ptr: ptrArg, PointeeTy: s, Indices: []Value{badIdx}})
}

// ============================================================================
// Operands / ReplaceValues
// ============================================================================

// TestOperandRewriteChain covers scenario 4: with map {a->b, b->c},
// replace_values on BinaryOp{Add, a, a} rewrites both operands to c.
func TestOperandRewriteChain(t *testing.T) {
	c := NewContext()
	a := c.NewConstantValue(c.ConstUintValue(64, 1))
	b := c.NewConstantValue(c.ConstUintValue(64, 2))
	cc := c.NewConstantValue(c.ConstUintValue(64, 3))

	instr := BinaryOp{Op: Add, A: a, B: a}
	rewriteMap := map[Value]Value{a: b, b: cc}

	out := c.ReplaceValues(instr, rewriteMap).(BinaryOp)
	if out.A != cc || out.B != cc {
		t.Fatalf("after chained rewrite, operands = (%v, %v), want (%v, %v)", out.A, out.B, cc, cc)
	}
}

// TestReplaceValuesEmptyMapIsNoop covers R1.
func TestReplaceValuesEmptyMapIsNoop(t *testing.T) {
	c := NewContext()
	a := c.NewConstantValue(c.ConstUintValue(64, 1))
	b := c.NewConstantValue(c.ConstUintValue(64, 2))
	instr := BinaryOp{Op: Add, A: a, B: b}

	out := c.ReplaceValues(instr, map[Value]Value{}).(BinaryOp)
	if out.A != a || out.B != b {
		t.Fatal("empty rewrite map must be a no-op")
	}
}

// TestReplaceValuesIdempotent covers R2.
func TestReplaceValuesIdempotent(t *testing.T) {
	c := NewContext()
	a := c.NewConstantValue(c.ConstUintValue(64, 1))
	b := c.NewConstantValue(c.ConstUintValue(64, 2))
	instr := BinaryOp{Op: Add, A: a, B: a}
	rewriteMap := map[Value]Value{a: b}

	once := c.ReplaceValues(instr, rewriteMap)
	twice := c.ReplaceValues(once, rewriteMap)
	if once != twice {
		t.Fatalf("applying replace_values twice should equal applying it once: %v vs %v", once, twice)
	}
}

// TestReplaceValuesLoadIsNoop covers the Open Question: Load's operand
// is deliberately never rewritten.
func TestReplaceValuesLoadIsNoop(t *testing.T) {
	c := NewContext()
	a := c.NewConstantValue(c.ConstUintValue(64, 1))
	b := c.NewConstantValue(c.ConstUintValue(64, 2))

	out := c.ReplaceValues(Load{PtrVal: a}, map[Value]Value{a: b}).(Load)
	if out.PtrVal != a {
		t.Fatal("Load's operand must not be rewritten")
	}
}

// TestReplaceValuesStoreRewritesBothOperands covers I6 for Store: dst
// and stored are both operands (per Operands) and both are rewritten.
func TestReplaceValuesStoreRewritesBothOperands(t *testing.T) {
	c := NewContext()
	dst := c.NewConstantValue(c.ConstUintValue(64, 1))
	stored := c.NewConstantValue(c.ConstUintValue(64, 2))
	newDst := c.NewConstantValue(c.ConstUintValue(64, 3))
	newStored := c.NewConstantValue(c.ConstUintValue(64, 4))

	out := c.ReplaceValues(Store{Dst: dst, Stored: stored}, map[Value]Value{
		dst: newDst, stored: newStored,
	}).(Store)

	if out.Dst != newDst {
		t.Errorf("Store.Dst should be rewritten to %v, got %v", newDst, out.Dst)
	}
	if out.Stored != newStored {
		t.Errorf("Store.Stored should be rewritten to %v, got %v", newStored, out.Stored)
	}
}

// TestGetPointerHasNoOperands covers the Open Question: base_ptr is a
// Pointer handle, not a Value, so GetPointer contributes no operands.
func TestGetPointerHasNoOperands(t *testing.T) {
	c := NewContext()
	u64 := c.UintType(64)
	p := c.NewPointer(u64, true)

	ops := c.Operands(GetPointer{BasePtr: p, PtrTy: p, Offset: 0})
	if len(ops) != 0 {
		t.Fatalf("GetPointer.Operands() = %v, want empty", ops)
	}
}

func TestGetElmPtrOperandsExcludeIndices(t *testing.T) {
	c := NewContext()
	u64 := c.UintType(64)
	ptr := c.NewConstantValue(c.ConstUintValue(64, 0))
	idx := c.NewConstantValue(c.ConstUintValue(64, 0))

	ops := c.Operands(GetElmPtr{Ptr: ptr, PointeeTy: u64, Indices: []Value{idx}})
	if len(ops) != 1 || ops[0] != ptr {
		t.Fatalf("GetElmPtr.Operands() = %v, want [ptr] only", ops)
	}
}

func TestLogOperandsExcludeType(t *testing.T) {
	c := NewContext()
	val := c.NewConstantValue(c.ConstUintValue(64, 1))
	id := c.NewConstantValue(c.ConstUintValue(64, 2))

	ops := c.Operands(Log{Val: val, Ty: c.UintType(64), ID: id})
	if len(ops) != 2 || ops[0] != val || ops[1] != id {
		t.Fatalf("Log.Operands() = %v, want [val, id]", ops)
	}
}

// ============================================================================
// Side-effect and terminator classification (I5, scenario 5)
// ============================================================================

func TestMayHaveSideEffectClassification(t *testing.T) {
	c := NewContext()
	zero := c.NewConstantValue(c.ConstUintValue(64, 0))

	trueCases := map[string]Instruction{
		"Store":              Store{Dst: zero, Stored: zero},
		"StateStoreWord":      StateStoreWord{StoredVal: zero, Key: zero},
		"Log":                 Log{Val: zero, ID: zero},
		"Call":                Call{},
		"ContractCall":        ContractCall{},
		"MemCopy":             MemCopy{Dst: zero, Src: zero},
		"AsmBlock":            AsmBlock{},
	}
	for name, instr := range trueCases {
		if !c.MayHaveSideEffect(instr) {
			t.Errorf("%s: MayHaveSideEffect = false, want true", name)
		}
	}

	falseCases := map[string]Instruction{
		"Load":         Load{PtrVal: zero},
		"ReadRegister":  ReadRegister{},
		"Gtf":           Gtf{Index: zero},
		"BinaryOp":      BinaryOp{A: zero, B: zero},
		"Cmp":           Cmp{A: zero, B: zero},
		"GetElmPtr":     GetElmPtr{Ptr: zero},
		"GetPointer":    GetPointer{},
		"IntToPtr":      IntToPtr{Val: zero},
		"Nop":           Nop{},
		"Branch":        Branch{},
		"ConditionalBranch": ConditionalBranch{},
		"Ret":           Ret{},
		"Revert":        Revert{},
	}
	for name, instr := range falseCases {
		if c.MayHaveSideEffect(instr) {
			t.Errorf("%s: MayHaveSideEffect = true, want false", name)
		}
	}
}

func TestIsTerminator(t *testing.T) {
	c := NewContext()
	terminators := []Instruction{Branch{}, ConditionalBranch{}, Ret{}, Revert{}}
	for _, instr := range terminators {
		if !c.IsTerminator(instr) {
			t.Errorf("%T: IsTerminator = false, want true", instr)
		}
	}
	nonTerminators := []Instruction{Nop{}, Load{}, BinaryOp{}, Call{}}
	for _, instr := range nonTerminators {
		if c.IsTerminator(instr) {
			t.Errorf("%T: IsTerminator = true, want false", instr)
		}
	}
}
