package ir

import "fuelir/internal/registers"

// Instruction is the closed, exhaustively-matched operation taxonomy.
// The marker method exists only to close the set to this package's
// variants -- every consumer (TypeOf, Operands, ReplaceValues,
// MayHaveSideEffect, IsTerminator, GetAggregate, the printer) switches
// on the concrete type and must handle all of them.
type Instruction interface {
	isInstruction()
}

// BinaryOpKind enumerates the arithmetic operators carried by BinaryOp.
type BinaryOpKind int

const (
	Add BinaryOpKind = iota
	Sub
	Mul
	Div
)

func (k BinaryOpKind) String() string {
	switch k {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	default:
		return "?"
	}
}

// Predicate enumerates the comparators carried by Cmp. Equal is the
// only predicate the source defines; others are left for a future
// revision (see original_source's Predicate enum, a single variant).
type Predicate int

const (
	Equal Predicate = iota
)

func (p Predicate) String() string {
	switch p {
	case Equal:
		return "eq"
	default:
		return "?"
	}
}

// BranchTarget names one arm of a Branch or ConditionalBranch: the
// destination block and the argument vector feeding its formal
// parameters.
type BranchTarget struct {
	Block Block
	Args  []Value
}

// AsmArg is one named argument slot of an AsmBlock. Initializer is
// present (HasInit) when the asm block supplies a default value for
// an argument the caller doesn't bind.
type AsmArg struct {
	Name        string
	Ty          Type
	Initializer Value
	HasInit     bool
}

// --- variants -------------------------------------------------------

type AddrOf struct{ Val Value }

type AsmBlock struct {
	Args     []AsmArg
	Body     string // opaque assembly text; the core does not parse it
	ResultTy Type
	HasResult bool
}

type BinaryOp struct {
	Op   BinaryOpKind
	A, B Value
}

type BitCast struct {
	Val Value
	Ty  Type
}

type Branch struct {
	Target Block
	Args   []Value
}

type Call struct {
	Func Function
	Args []Value
}

type Cmp struct {
	Pred Predicate
	A, B Value
}

type ConditionalBranch struct {
	Cond  Value
	True  BranchTarget
	False BranchTarget
}

type ContractCall struct {
	RetTy   Type
	Name    string
	Params  Value
	Coins   Value
	AssetID Value
	Gas     Value
}

type GetStorageKey struct{}

type Gtf struct {
	Index   Value
	FieldID uint64
}

// GetPointer yields an address within an existing storage slot. PtrTy
// is itself a Pointer handle (not a Type) whose pointee describes the
// slot's element type -- the same slightly confusing shape
// original_source uses (a Pointer field literally named ptr_ty).
type GetPointer struct {
	BasePtr Pointer
	PtrTy   Pointer
	Offset  uint64
}

type GetElmPtr struct {
	Ptr       Value
	PointeeTy Type
	Indices   []Value
}

type IntToPtr struct {
	Val Value
	Ty  Type
}

type Load struct{ PtrVal Value }

type Log struct {
	Val Value
	Ty  Type
	ID  Value
}

type MemCopy struct {
	Dst     Value
	Src     Value
	ByteLen uint64
}

type Nop struct{}

type ReadRegister struct{ Reg registers.Register }

type Ret struct {
	Val Value
	Ty  Type
}

type Revert struct{ Val Value }

type StateLoadQuadWord struct {
	LoadVal Value
	Key     Value
}

type StateLoadWord struct{ Key Value }

type StateStoreQuadWord struct {
	StoredVal Value
	Key       Value
}

type StateStoreWord struct {
	StoredVal Value
	Key       Value
}

type Store struct {
	Dst     Value
	Stored  Value
}

func (AddrOf) isInstruction()            {}
func (AsmBlock) isInstruction()          {}
func (BinaryOp) isInstruction()          {}
func (BitCast) isInstruction()           {}
func (Branch) isInstruction()            {}
func (Call) isInstruction()              {}
func (Cmp) isInstruction()               {}
func (ConditionalBranch) isInstruction() {}
func (ContractCall) isInstruction()      {}
func (GetStorageKey) isInstruction()     {}
func (Gtf) isInstruction()               {}
func (GetPointer) isInstruction()        {}
func (GetElmPtr) isInstruction()         {}
func (IntToPtr) isInstruction()          {}
func (Load) isInstruction()              {}
func (Log) isInstruction()               {}
func (MemCopy) isInstruction()           {}
func (Nop) isInstruction()               {}
func (ReadRegister) isInstruction()      {}
func (Ret) isInstruction()               {}
func (Revert) isInstruction()            {}
func (StateLoadQuadWord) isInstruction() {}
func (StateLoadWord) isInstruction()     {}
func (StateStoreQuadWord) isInstruction(){}
func (StateStoreWord) isInstruction()    {}
func (Store) isInstruction()             {}

// TypeOf returns the result Type of instr, and false for variants that
// produce no SSA value (Branch, ConditionalBranch, Ret, Revert, Nop --
// spec.md §4.3.2 / I4).
func (c *Context) TypeOf(instr Instruction) (Type, bool) {
	switch i := instr.(type) {
	case AddrOf:
		return c.UintType(64), true
	case AsmBlock:
		if !i.HasResult {
			return Type{}, false
		}
		return i.ResultTy, true
	case BinaryOp:
		return c.ValueType(i.A), true
	case BitCast:
		return i.Ty, true
	case Branch:
		return Type{}, false
	case Call:
		return c.functionData(i.Func).returnType, true
	case Cmp:
		return c.BoolType(), true
	case ConditionalBranch:
		return Type{}, false
	case ContractCall:
		return i.RetTy, true
	case GetStorageKey:
		return c.B256Type(), true
	case Gtf:
		return c.UintType(64), true
	case GetPointer:
		return c.PointerType(c.PointeeType(i.PtrTy), c.PointerMutable(i.PtrTy)), true
	case GetElmPtr:
		indexed, ok := c.GetIndexedType(i.PointeeTy, i.Indices)
		if !ok {
			panic("ir: GetElmPtr index out of range or non-aggregate pointee type")
		}
		return c.PointerType(indexed, false), true
	case IntToPtr:
		return i.Ty, true
	case Load:
		return c.loadResultType(i.PtrVal), true
	case Log:
		return c.UnitType(), true
	case MemCopy:
		return c.UnitType(), true
	case Nop:
		return Type{}, false
	case ReadRegister:
		return c.UintType(64), true
	case Ret:
		return Type{}, false
	case Revert:
		return Type{}, false
	case StateLoadQuadWord:
		return c.UnitType(), true
	case StateLoadWord:
		return c.UintType(64), true
	case StateStoreQuadWord:
		return c.UnitType(), true
	case StateStoreWord:
		return c.UnitType(), true
	case Store:
		return c.UnitType(), true
	default:
		panic("ir: TypeOf: unhandled instruction variant")
	}
}

// loadResultType implements §4.3.2's Load subtlety: consult the
// defining Value of ptrVal (whatever its own Type is -- Argument,
// Constant or Instruction) and strip exactly one Pointer layer.
func (c *Context) loadResultType(ptrVal Value) Type {
	t := c.ValueType(ptrVal)
	return c.StripPtrType(t)
}
