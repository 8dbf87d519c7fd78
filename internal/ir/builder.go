package ir

import "fuelir/internal/registers"

// Builder is a short-lived cursor bound to a (Context, Block) pair.
// Each constructor method allocates a new instruction Value, appends
// it to the block's instruction list, and returns the handle. The
// façade performs no type checking -- producing an ill-typed
// instruction is a caller bug -- and enforces no "block not yet
// terminated" check; callers must respect B1/B2 themselves (spec.md
// §4.4).
type Builder struct {
	ctx   *Context
	block Block
}

// NewBuilder returns a Builder appending to block.
func NewBuilder(ctx *Context, block Block) *Builder {
	return &Builder{ctx: ctx, block: block}
}

// Block returns the block this Builder appends to.
func (b *Builder) Block() Block { return b.block }

func (b *Builder) insert(instr Instruction) Value {
	return b.ctx.appendInstruction(b.block, instr)
}

func (b *Builder) AddrOf(v Value) Value {
	return b.insert(AddrOf{Val: v})
}

func (b *Builder) AsmBlock(args []AsmArg, body string, resultTy Type, hasResult bool) Value {
	return b.insert(AsmBlock{Args: args, Body: body, ResultTy: resultTy, HasResult: hasResult})
}

func (b *Builder) BinaryOp(op BinaryOpKind, a, v Value) Value {
	return b.insert(BinaryOp{Op: op, A: a, B: v})
}

func (b *Builder) BitCast(v Value, ty Type) Value {
	return b.insert(BitCast{Val: v, Ty: ty})
}

// Branch appends an unconditional jump and registers b's block as a
// predecessor of target -- one of the two constructors with extra
// bookkeeping noted in spec.md §4.4.
func (b *Builder) Branch(target Block, args []Value) Value {
	v := b.insert(Branch{Target: target, Args: append([]Value(nil), args...)})
	b.ctx.AddPred(target, b.block)
	return v
}

func (b *Builder) Call(f Function, args []Value) Value {
	return b.insert(Call{Func: f, Args: append([]Value(nil), args...)})
}

func (b *Builder) Cmp(pred Predicate, a, v Value) Value {
	return b.insert(Cmp{Pred: pred, A: a, B: v})
}

// ConditionalBranch appends a two-way branch and registers b's block
// as a predecessor of both arms' targets.
func (b *Builder) ConditionalBranch(cond Value, trueBlock Block, trueArgs []Value, falseBlock Block, falseArgs []Value) Value {
	instr := ConditionalBranch{
		Cond:  cond,
		True:  BranchTarget{Block: trueBlock, Args: append([]Value(nil), trueArgs...)},
		False: BranchTarget{Block: falseBlock, Args: append([]Value(nil), falseArgs...)},
	}
	v := b.insert(instr)
	b.ctx.AddPred(trueBlock, b.block)
	b.ctx.AddPred(falseBlock, b.block)
	return v
}

func (b *Builder) ContractCall(retTy Type, name string, params, coins, assetID, gas Value) Value {
	return b.insert(ContractCall{
		RetTy: retTy, Name: name, Params: params, Coins: coins, AssetID: assetID, Gas: gas,
	})
}

func (b *Builder) GetStorageKey() Value {
	return b.insert(GetStorageKey{})
}

func (b *Builder) Gtf(index Value, fieldID uint64) Value {
	return b.insert(Gtf{Index: index, FieldID: fieldID})
}

func (b *Builder) GetPointer(basePtr, ptrTy Pointer, offset uint64) Value {
	return b.insert(GetPointer{BasePtr: basePtr, PtrTy: ptrTy, Offset: offset})
}

func (b *Builder) GetElmPtr(ptr Value, pointeeTy Type, indices []Value) Value {
	return b.insert(GetElmPtr{Ptr: ptr, PointeeTy: pointeeTy, Indices: append([]Value(nil), indices...)})
}

// GetElmPtrFromIntIdx is a convenience that materialises Uint(64)
// constants for each integer index and delegates to GetElmPtr
// (spec.md §4.4's get_elm_ptr_from_int_idx).
func (b *Builder) GetElmPtrFromIntIdx(ptr Value, pointeeTy Type, intIndices []uint64) Value {
	indices := make([]Value, len(intIndices))
	for i, n := range intIndices {
		indices[i] = b.ctx.NewConstantValue(b.ctx.ConstUintValue(64, n))
	}
	return b.GetElmPtr(ptr, pointeeTy, indices)
}

func (b *Builder) IntToPtr(v Value, ty Type) Value {
	return b.insert(IntToPtr{Val: v, Ty: ty})
}

func (b *Builder) Load(ptrVal Value) Value {
	return b.insert(Load{PtrVal: ptrVal})
}

func (b *Builder) Log(val Value, ty Type, id Value) Value {
	return b.insert(Log{Val: val, Ty: ty, ID: id})
}

func (b *Builder) MemCopy(dst, src Value, byteLen uint64) Value {
	return b.insert(MemCopy{Dst: dst, Src: src, ByteLen: byteLen})
}

func (b *Builder) Nop() Value {
	return b.insert(Nop{})
}

func (b *Builder) ReadRegister(reg registers.Register) Value {
	return b.insert(ReadRegister{Reg: reg})
}

func (b *Builder) Ret(v Value, ty Type) Value {
	return b.insert(Ret{Val: v, Ty: ty})
}

// Revert appends directly through the same insert path as every other
// constructor; unlike Branch and ConditionalBranch there is no CFG
// edge to maintain, so no AddPred call follows it.
func (b *Builder) Revert(v Value) Value {
	return b.insert(Revert{Val: v})
}

func (b *Builder) StateLoadQuadWord(loadVal, key Value) Value {
	return b.insert(StateLoadQuadWord{LoadVal: loadVal, Key: key})
}

func (b *Builder) StateLoadWord(key Value) Value {
	return b.insert(StateLoadWord{Key: key})
}

func (b *Builder) StateStoreQuadWord(storedVal, key Value) Value {
	return b.insert(StateStoreQuadWord{StoredVal: storedVal, Key: key})
}

func (b *Builder) StateStoreWord(storedVal, key Value) Value {
	return b.insert(StateStoreWord{StoredVal: storedVal, Key: key})
}

func (b *Builder) Store(dst, stored Value) Value {
	return b.insert(Store{Dst: dst, Stored: stored})
}
