package irtext

// This file is the struct-tag grammar participle.Build assembles into
// a parser, the same way the teacher's grammar package describes
// Kanso's concrete syntax entirely in field tags rather than hand
// written recursive-descent code.
//
// Concrete syntax, informally:
//
//	module NAME {
//	  fn NAME(u64) -> u64 {
//	    ptrs {
//	      $0: mut u64 = 0;
//	    }
//	    entry(%0: u64):
//	      %1: bool = cmp eq %0, 0;
//	      cbr %1, then(), else();
//	    then():
//	      ret %0;
//	    else():
//	      revert %0;
//	  }
//	}

// Module is the root production.
type Module struct {
	Name      string      `"module" @Ident "{"`
	Functions []*Function `@@*`
	Close     string      `"}"`
}

// Function declares a signature, an optional pointer table and its
// blocks, entry first.
type Function struct {
	Name       string       `"fn" @Ident "("`
	ParamTypes []*TypeRef   `[ @@ { "," @@ } ] ")" "->"`
	ReturnType *TypeRef     `@@ "{"`
	Ptrs       *PtrSection  `[ @@ ]`
	Blocks     []*BlockDecl `@@*`
	Close      string       `"}"`
}

// PtrSection declares the Pointer handles a function body references
// by $N, mirroring spec.md §3's "Pointer allocation is never interned"
// -- each declaration here is a fresh NewPointer/NewPointerWithInitializer call.
type PtrSection struct {
	Open  string      `"ptrs" "{"`
	Decls []*PtrDecl   `@@*`
	Close string      `"}"`
}

type PtrDecl struct {
	Name string    `@PtrRef ":"`
	Mut  bool      `[ @"mut" ]`
	Ty   *TypeRef  `@@`
	Init *ConstLit `[ "=" @@ ]`
	Semi string    `";"`
}

// BlockDecl is one basic block: a label, a formal parameter list and
// its straight-line instruction body.
type BlockDecl struct {
	Name   string       `@Ident "("`
	Params []*ParamDecl `[ @@ { "," @@ } ] ")" ":"`
	Instrs []*InstrLine `@@*`
}

type ParamDecl struct {
	Name string   `@ValueRef ":"`
	Ty   *TypeRef `@@`
}

// InstrLine is one instruction, optionally binding its result to a
// %N name, always terminated by ";" (the grammar has no significant
// newlines, so this is the only line separator).
type InstrLine struct {
	ResultName *string  `[ @ValueRef ":"`
	ResultTy   *TypeRef `  @@ "=" ]`
	Op         *Op      `@@ ";"`
}

// Op is the tagged union over the instruction taxonomy, disambiguated
// by its leading keyword -- the textual analogue of ir.Instruction's
// isInstruction() marker-method closed set.
type Op struct {
	AddrOf             *OpAddrOf             `  @@`
	Asm                *OpAsm                `| @@`
	BinOp              *OpBinOp              `| @@`
	BitCast            *OpBitCast            `| @@`
	Br                 *OpBr                 `| @@`
	Call               *OpCall               `| @@`
	Cbr                *OpCbr                `| @@`
	Cmp                *OpCmp                `| @@`
	ContractCall       *OpContractCall       `| @@`
	GetStorageKey      *OpGetStorageKey      `| @@`
	Gtf                *OpGtf                `| @@`
	GetPtr             *OpGetPtr             `| @@`
	GetElmPtr          *OpGetElmPtr          `| @@`
	IntToPtr           *OpIntToPtr           `| @@`
	Load               *OpLoad               `| @@`
	Log                *OpLog                `| @@`
	MemCopy            *OpMemCopy            `| @@`
	Nop                *OpNop                `| @@`
	ReadRegister       *OpReadRegister       `| @@`
	Ret                *OpRet                `| @@`
	Revert             *OpRevert             `| @@`
	StateLoadQuadWord  *OpStateLoadQuadWord  `| @@`
	StateLoadWord      *OpStateLoadWord      `| @@`
	StateStoreQuadWord *OpStateStoreQuadWord `| @@`
	StateStoreWord     *OpStateStoreWord     `| @@`
	Store              *OpStore              `| @@`
}

type OpAddrOf struct {
	V *ValueRef `"addr_of" @@`
}

type AsmArgDecl struct {
	Name string    `@Ident ":"`
	Ty   *TypeRef  `@@`
	Init *ValueRef `[ "=" @@ ]`
}

type OpAsm struct {
	Args     []*AsmArgDecl `"asm" "(" [ @@ { "," @@ } ] ")"`
	ResultTy *TypeRef      `[ "->" @@ ]`
	Body     string        `"{" @String "}"`
}

type OpBinOp struct {
	Op string    `@("add" | "sub" | "mul" | "div")`
	A  *ValueRef `@@ ","`
	B  *ValueRef `@@`
}

type OpBitCast struct {
	V  *ValueRef `"bitcast" @@ "to"`
	Ty *TypeRef  `@@`
}

type OpBr struct {
	Target string       `"br" @Ident "("`
	Args   []*ValueRef `[ @@ { "," @@ } ] ")"`
}

type OpCall struct {
	Func string      `"call" @Ident "("`
	Args []*ValueRef `[ @@ { "," @@ } ] ")"`
}

type OpCbr struct {
	Cond       *ValueRef   `"cbr" @@ ","`
	TrueBlock  string      `@Ident "("`
	TrueArgs   []*ValueRef `[ @@ { "," @@ } ] ")" ","`
	FalseBlock string      `@Ident "("`
	FalseArgs  []*ValueRef `[ @@ { "," @@ } ] ")"`
}

type OpCmp struct {
	Pred string    `"cmp" @("eq")`
	A    *ValueRef `@@ ","`
	B    *ValueRef `@@`
}

type OpContractCall struct {
	Name   string    `"contract_call" @String`
	Params *ValueRef `"(" @@ ")"`
	Coins  *ValueRef `"coins" "=" @@ ","`
	Asset  *ValueRef `"asset" "=" @@ ","`
	Gas    *ValueRef `"gas" "=" @@`
}

type OpGetStorageKey struct {
	Kw string `@"get_storage_key"`
}

// OpGtf's field id accepts either a known GTF_* mnemonic or a raw
// integer, the same Name-or-Const split ValueRef uses for alternation
// across fields.
type OpGtf struct {
	Index     *ValueRef `"gtf" @@ ","`
	FieldName *string   `  @Ident`
	FieldNum  *string   `| @Integer`
}

type OpGetPtr struct {
	Base   string `"get_ptr" "base" "=" @PtrRef ","`
	PtrTy  string `"ptrty" "=" @PtrRef ","`
	Offset string `"offset" "=" @Integer`
}

type OpGetElmPtr struct {
	Ptr       *ValueRef   `"get_elm_ptr" @@ ","`
	PointeeTy *TypeRef    `@@ ","`
	Indices   []*ValueRef `"[" [ @@ { "," @@ } ] "]"`
}

type OpIntToPtr struct {
	V  *ValueRef `"int_to_ptr" @@ "to"`
	Ty *TypeRef  `@@`
}

type OpLoad struct {
	Ptr *ValueRef `"load" @@`
}

type OpLog struct {
	Val *ValueRef `"log" @@ ","`
	Ty  *TypeRef  `@@ ","`
	ID  *ValueRef `@@`
}

type OpMemCopy struct {
	Dst     *ValueRef `"mem_copy" @@ ","`
	Src     *ValueRef `@@ ","`
	ByteLen string    `@Integer`
}

type OpNop struct {
	Kw string `@"nop"`
}

type OpReadRegister struct {
	Reg string `"read_register" @Ident`
}

type OpRet struct {
	Val *ValueRef `"ret" @@`
}

type OpRevert struct {
	Val *ValueRef `"revert" @@`
}

type OpStateLoadQuadWord struct {
	LoadVal *ValueRef `"state_load_quad_word" @@ ","`
	Key     *ValueRef `"key" "=" @@`
}

type OpStateLoadWord struct {
	Key *ValueRef `"state_load_word" "key" "=" @@`
}

type OpStateStoreQuadWord struct {
	StoredVal *ValueRef `"state_store_quad_word" @@ ","`
	Key       *ValueRef `"key" "=" @@`
}

type OpStateStoreWord struct {
	StoredVal *ValueRef `"state_store_word" @@ ","`
	Key       *ValueRef `"key" "=" @@`
}

type OpStore struct {
	Dst    *ValueRef `"store" @@ ","`
	Stored *ValueRef `@@`
}

// ValueRef is either a %N reference to a previously-bound value or an
// inline constant literal.
type ValueRef struct {
	Name  *string   `  @ValueRef`
	Const *ConstLit `| @@`
}

// ConstLit is an inline literal operand. Its Go type is inferred at
// lowering time (see lower.go) since the grammar alone does not carry
// bit widths.
type ConstLit struct {
	Unit *UnitLit `  @@`
	Bool *string  `| @( "true" | "false" )`
	Hex  *string  `| @HexLiteral`
	Int  *string  `| @Integer`
	Str  *string  `| @String`
}

// UnitLit is the "()" literal spelling of ir's Unit constant.
type UnitLit struct {
	Marker string `"(" ")"`
}

// TypeRef is the textual spelling of an ir.Type.
type TypeRef struct {
	Unit   bool           `  @"unit"`
	Bool   bool           `| @"bool"`
	B256   bool           `| @"b256"`
	Uint   *string        `| @( "u8" | "u16" | "u32" | "u64" | "u256" )`
	Str    *string        `| "str" "<" @Integer ">"`
	Array  *ArrayTypeRef  `| @@`
	Struct *StructTypeRef `| @@`
	Ptr    *PtrTypeRef    `| @@`
}

type ArrayTypeRef struct {
	Elem *TypeRef `"[" @@ ";"`
	Len  string   `@Integer "]"`
}

type StructTypeRef struct {
	Fields []*TypeRef `"{" [ @@ { "," @@ } ] "}"`
}

type PtrTypeRef struct {
	Mut     bool     `"ptr" "<" [ @"mut" ]`
	Pointee *TypeRef `@@ ">"`
}
