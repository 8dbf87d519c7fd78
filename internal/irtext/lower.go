package irtext

import (
	"fmt"
	"strconv"
	"strings"

	"fuelir/internal/asmtable"
	"fuelir/internal/errors"
	"fuelir/internal/ir"
	"fuelir/internal/registers"
)

// Lower turns a parsed Module AST into an ir.Module bound to a fresh
// ir.Context, the textual analogue of the teacher's AST -> semantic
// pass. Unlike that pass this one never type-checks -- it only
// resolves names (%N values, $N pointers, block labels, function
// names) into arena handles; internal/verify is the structural
// checker, run separately over the result.
//
// Lower does not abort on the first bad reference: it keeps lowering
// what it can (substituting the zero Value/Block where a name fails
// to resolve) and returns every errors.CompilerError it collected
// alongside the partially-built module, mirroring internal/verify's
// own collecting-pass style. Callers must check len(diags) == 0
// before trusting the returned module.
func Lower(src *Module) (*ir.Context, *ir.Module, []errors.CompilerError) {
	c := ir.NewContext()
	l := &lowerer{ctx: c, funcs: map[string]ir.Function{}}

	m := ir.NewModule(src.Name)

	// Pass 1: declare every function's signature up front so Call can
	// reference a function defined later in the source text.
	for _, fn := range src.Functions {
		paramTys := make([]ir.Type, len(fn.ParamTypes))
		for i, t := range fn.ParamTypes {
			paramTys[i] = l.lowerType(t)
		}
		retTy := l.lowerType(fn.ReturnType)
		f := c.NewFunction(fn.Name, paramTys, retTy)
		l.funcs[fn.Name] = f
	}

	// Pass 2: lower each function body against the now-complete
	// function table.
	for _, fn := range src.Functions {
		f := l.funcs[fn.Name]
		l.lowerFunctionBody(f, fn)
		m.AddFunction(f)
	}

	return c, m, l.diags
}

type lowerer struct {
	ctx   *ir.Context
	funcs map[string]ir.Function
	diags []errors.CompilerError
}

func (l *lowerer) errf(code, format string, args ...interface{}) {
	l.diags = append(l.diags, errors.NewIRError(code, fmt.Sprintf(format, args...), errors.Position{}).Build())
}

// validateAsmBody rejects any statement in an asm block's body whose
// leading mnemonic is not registered in asmtable. Statements are
// split on ";", the only statement separator the asm body syntax
// defines; blank statements (trailing separators, pure whitespace)
// are skipped.
func (l *lowerer) validateAsmBody(body string) {
	for _, stmt := range strings.Split(body, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		mnemonic := strings.Fields(stmt)[0]
		if !asmtable.IsKnownOpcode(mnemonic) {
			l.errf(errors.ErrorSyntax, "unknown asm mnemonic '%s'", mnemonic)
		}
	}
}

func (l *lowerer) lowerFunctionBody(f ir.Function, fn *Function) {
	c := l.ctx
	blockByName := map[string]ir.Block{}
	valueByName := map[string]ir.Value{}
	ptrByName := map[string]ir.Pointer{}

	if len(fn.Blocks) == 0 {
		l.errf(errors.ErrorSyntax, "function '%s' declares no blocks", fn.Name)
		return
	}

	// Pointer table, scoped to the function.
	if fn.Ptrs != nil {
		for _, decl := range fn.Ptrs.Decls {
			ty := l.lowerType(decl.Ty)
			if decl.Init != nil {
				k := l.lowerConstLit(decl.Init, ty)
				ptrByName[decl.Name] = c.NewPointerWithInitializer(ty, decl.Mut, k)
			} else {
				ptrByName[decl.Name] = c.NewPointer(ty, decl.Mut)
			}
		}
	}

	// Entry block already exists (ir.NewFunction created it); bind the
	// first BlockDecl's label and parameter names onto it rather than
	// allocating a second block.
	entry := c.EntryBlock(f)
	blockByName[fn.Blocks[0].Name] = entry
	entryParams := c.EntryParams(f)
	if len(fn.Blocks[0].Params) != len(entryParams) {
		l.errf(errors.ErrorSyntax, "entry block '%s' of function '%s' must declare exactly the function's %d parameter(s)",
			fn.Blocks[0].Name, fn.Name, len(entryParams))
	}
	for i, p := range fn.Blocks[0].Params {
		if i < len(entryParams) {
			valueByName[p.Name] = entryParams[i]
		}
	}

	for _, bd := range fn.Blocks[1:] {
		if _, dup := blockByName[bd.Name]; dup {
			l.errf(errors.ErrorDuplicateBlock, "duplicate block label '%s'", bd.Name)
			continue
		}
		b := c.NewBlock(f, bd.Name)
		blockByName[bd.Name] = b
		for _, p := range bd.Params {
			ty := l.lowerType(p.Ty)
			valueByName[p.Name] = c.AddBlockParam(b, ty)
		}
	}

	for _, bd := range fn.Blocks {
		b := blockByName[bd.Name]
		bl := ir.NewBuilder(c, b)
		for _, line := range bd.Instrs {
			result := l.lowerInstrLine(bl, line, valueByName, ptrByName, blockByName)
			if line.ResultName != nil {
				valueByName[*line.ResultName] = result
			}
		}
	}
}

func (l *lowerer) resolveValue(name string, valueByName map[string]ir.Value) ir.Value {
	v, ok := valueByName[name]
	if !ok {
		l.errf(errors.ErrorUndefinedValue, "undefined value '%s'", name)
		return ir.Value{}
	}
	return v
}

func (l *lowerer) resolveBlock(name string, blockByName map[string]ir.Block) ir.Block {
	b, ok := blockByName[name]
	if !ok {
		l.errf(errors.ErrorUndefinedBlock, "undefined block '%s'", name)
		return ir.Block{}
	}
	return b
}

func (l *lowerer) resolvePointer(name string, ptrByName map[string]ir.Pointer) ir.Pointer {
	p, ok := ptrByName[name]
	if !ok {
		l.errf(errors.ErrorUndefinedPointer, "undefined pointer '%s'", name)
		return ir.Pointer{}
	}
	return p
}

func (l *lowerer) lowerValueRef(vr *ValueRef, valueByName map[string]ir.Value) ir.Value {
	c := l.ctx
	if vr.Name != nil {
		return l.resolveValue(*vr.Name, valueByName)
	}
	return c.NewConstantValue(l.lowerConstLitInferred(vr.Const))
}

func (l *lowerer) lowerValueRefs(vrs []*ValueRef, valueByName map[string]ir.Value) []ir.Value {
	out := make([]ir.Value, len(vrs))
	for i, vr := range vrs {
		out[i] = l.lowerValueRef(vr, valueByName)
	}
	return out
}

// lowerConstLitInferred assigns a default Type to a bare literal that
// carries no annotation in this grammar: integers default to Uint(64),
// hex literals to B256, matching what GetElmPtr/Gtf/mem_copy indices
// and byte-length immediates need in practice.
func (l *lowerer) lowerConstLitInferred(lit *ConstLit) ir.Constant {
	c := l.ctx
	switch {
	case lit.Unit != nil:
		return c.ConstUnitValue()
	case lit.Bool != nil:
		return c.ConstBoolValue(*lit.Bool == "true")
	case lit.Hex != nil:
		return c.ConstB256Value(parseHex32(*lit.Hex))
	case lit.Int != nil:
		n, _ := strconv.ParseUint(*lit.Int, 10, 64)
		return c.ConstUintValue(64, n)
	case lit.Str != nil:
		return c.ConstStringValue(unquote(*lit.Str))
	default:
		return c.ConstUnitValue()
	}
}

// lowerConstLit assigns an explicitly-known Type (used for pointer
// initializers, where the declaration supplies the type).
func (l *lowerer) lowerConstLit(lit *ConstLit, ty ir.Type) ir.Constant {
	c := l.ctx
	switch {
	case lit.Unit != nil:
		return c.ConstUnitValue()
	case lit.Bool != nil:
		return c.ConstBoolValue(*lit.Bool == "true")
	case lit.Hex != nil:
		return c.ConstB256Value(parseHex32(*lit.Hex))
	case lit.Int != nil:
		n, _ := strconv.ParseUint(*lit.Int, 10, 64)
		return c.ConstUintValue(c.UintBits(ty), n)
	case lit.Str != nil:
		return c.ConstStringValue(unquote(*lit.Str))
	default:
		return c.ConstUnitValue()
	}
}

func parseHex32(s string) [32]byte {
	var out [32]byte
	s = strings.TrimPrefix(s, "0x")
	b, err := strconv.ParseUint(s, 16, 64)
	if err != nil || len(s) > 16 {
		// Fall back to a best-effort byte-by-byte decode for full-width
		// 256-bit literals; malformed input yields the zero value, which
		// internal/verify's operand checks will not catch (it's a content
		// error, not a structural one) but irtext round-tripping never
		// produces malformed hex itself.
		for i := 0; i+2 <= len(s) && i/2 < 32; i += 2 {
			v, err := strconv.ParseUint(s[i:i+2], 16, 8)
			if err == nil {
				out[i/2] = byte(v)
			}
		}
		return out
	}
	out[31] = byte(b)
	out[30] = byte(b >> 8)
	out[29] = byte(b >> 16)
	out[28] = byte(b >> 24)
	out[27] = byte(b >> 32)
	out[26] = byte(b >> 40)
	out[25] = byte(b >> 48)
	out[24] = byte(b >> 56)
	return out
}

func unquote(s string) string {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}

func (l *lowerer) lowerType(t *TypeRef) ir.Type {
	c := l.ctx
	switch {
	case t.Unit:
		return c.UnitType()
	case t.Bool:
		return c.BoolType()
	case t.B256:
		return c.B256Type()
	case t.Uint != nil:
		bits, _ := strconv.Atoi(strings.TrimPrefix(*t.Uint, "u"))
		return c.UintType(bits)
	case t.Str != nil:
		n, _ := strconv.Atoi(*t.Str)
		return c.StringType(n)
	case t.Array != nil:
		elem := l.lowerType(t.Array.Elem)
		n, _ := strconv.Atoi(t.Array.Len)
		return c.ArrayType(elem, n)
	case t.Struct != nil:
		fields := make([]ir.Type, len(t.Struct.Fields))
		for i, f := range t.Struct.Fields {
			fields[i] = l.lowerType(f)
		}
		return c.StructType(fields)
	case t.Ptr != nil:
		pointee := l.lowerType(t.Ptr.Pointee)
		return c.PointerType(pointee, t.Ptr.Mut)
	default:
		return c.UnitType()
	}
}

// lowerInstrLine dispatches one instruction line to the matching
// ir.Builder constructor. Exactly one field of op is non-nil, enforced
// by the grammar's alternation.
func (l *lowerer) lowerInstrLine(b *ir.Builder, line *InstrLine, values map[string]ir.Value, ptrs map[string]ir.Pointer, blocks map[string]ir.Block) ir.Value {
	c := l.ctx
	op := line.Op
	switch {
	case op.AddrOf != nil:
		return b.AddrOf(l.lowerValueRef(op.AddrOf.V, values))
	case op.Asm != nil:
		args := make([]ir.AsmArg, len(op.Asm.Args))
		for i, a := range op.Asm.Args {
			arg := ir.AsmArg{Name: a.Name, Ty: l.lowerType(a.Ty)}
			if a.Init != nil {
				arg.Initializer = l.lowerValueRef(a.Init, values)
				arg.HasInit = true
			}
			args[i] = arg
		}
		body := unquote(op.Asm.Body)
		l.validateAsmBody(body)
		if op.Asm.ResultTy != nil {
			return b.AsmBlock(args, body, l.lowerType(op.Asm.ResultTy), true)
		}
		return b.AsmBlock(args, body, ir.Type{}, false)
	case op.BinOp != nil:
		return b.BinaryOp(lowerBinOpKind(op.BinOp.Op), l.lowerValueRef(op.BinOp.A, values), l.lowerValueRef(op.BinOp.B, values))
	case op.BitCast != nil:
		return b.BitCast(l.lowerValueRef(op.BitCast.V, values), l.lowerType(op.BitCast.Ty))
	case op.Br != nil:
		return b.Branch(l.resolveBlock(op.Br.Target, blocks), l.lowerValueRefs(op.Br.Args, values))
	case op.Call != nil:
		f, ok := l.funcs[op.Call.Func]
		if !ok {
			l.errf(errors.ErrorUndefinedFunction, "undefined function '%s'", op.Call.Func)
		}
		return b.Call(f, l.lowerValueRefs(op.Call.Args, values))
	case op.Cbr != nil:
		cond := l.lowerValueRef(op.Cbr.Cond, values)
		tb := l.resolveBlock(op.Cbr.TrueBlock, blocks)
		fb := l.resolveBlock(op.Cbr.FalseBlock, blocks)
		return b.ConditionalBranch(cond, tb, l.lowerValueRefs(op.Cbr.TrueArgs, values), fb, l.lowerValueRefs(op.Cbr.FalseArgs, values))
	case op.Cmp != nil:
		return b.Cmp(ir.Equal, l.lowerValueRef(op.Cmp.A, values), l.lowerValueRef(op.Cmp.B, values))
	case op.ContractCall != nil:
		retTy := c.UnitType()
		if line.ResultTy != nil {
			retTy = l.lowerType(line.ResultTy)
		}
		return b.ContractCall(retTy, unquote(op.ContractCall.Name),
			l.lowerValueRef(op.ContractCall.Params, values),
			l.lowerValueRef(op.ContractCall.Coins, values),
			l.lowerValueRef(op.ContractCall.Asset, values),
			l.lowerValueRef(op.ContractCall.Gas, values))
	case op.GetStorageKey != nil:
		return b.GetStorageKey()
	case op.Gtf != nil:
		var id uint64
		if op.Gtf.FieldName != nil {
			resolved, ok := registers.GtfFieldID(*op.Gtf.FieldName)
			if !ok {
				l.errf(errors.ErrorSyntax, "unknown gtf field mnemonic '%s'", *op.Gtf.FieldName)
			}
			id = resolved
		} else {
			id, _ = strconv.ParseUint(*op.Gtf.FieldNum, 10, 64)
		}
		return b.Gtf(l.lowerValueRef(op.Gtf.Index, values), id)
	case op.GetPtr != nil:
		offset, _ := strconv.ParseUint(op.GetPtr.Offset, 10, 64)
		return b.GetPointer(l.resolvePointer(op.GetPtr.Base, ptrs), l.resolvePointer(op.GetPtr.PtrTy, ptrs), offset)
	case op.GetElmPtr != nil:
		return b.GetElmPtr(l.lowerValueRef(op.GetElmPtr.Ptr, values), l.lowerType(op.GetElmPtr.PointeeTy), l.lowerValueRefs(op.GetElmPtr.Indices, values))
	case op.IntToPtr != nil:
		return b.IntToPtr(l.lowerValueRef(op.IntToPtr.V, values), l.lowerType(op.IntToPtr.Ty))
	case op.Load != nil:
		return b.Load(l.lowerValueRef(op.Load.Ptr, values))
	case op.Log != nil:
		return b.Log(l.lowerValueRef(op.Log.Val, values), l.lowerType(op.Log.Ty), l.lowerValueRef(op.Log.ID, values))
	case op.MemCopy != nil:
		n, _ := strconv.ParseUint(op.MemCopy.ByteLen, 10, 64)
		return b.MemCopy(l.lowerValueRef(op.MemCopy.Dst, values), l.lowerValueRef(op.MemCopy.Src, values), n)
	case op.Nop != nil:
		return b.Nop()
	case op.ReadRegister != nil:
		reg, ok := registers.Lookup(op.ReadRegister.Reg)
		if !ok {
			l.errf(errors.ErrorSyntax, "unknown register mnemonic '%s'", op.ReadRegister.Reg)
		}
		return b.ReadRegister(reg)
	case op.Ret != nil:
		v := l.lowerValueRef(op.Ret.Val, values)
		return b.Ret(v, c.ValueType(v))
	case op.Revert != nil:
		return b.Revert(l.lowerValueRef(op.Revert.Val, values))
	case op.StateLoadQuadWord != nil:
		return b.StateLoadQuadWord(l.lowerValueRef(op.StateLoadQuadWord.LoadVal, values), l.lowerValueRef(op.StateLoadQuadWord.Key, values))
	case op.StateLoadWord != nil:
		return b.StateLoadWord(l.lowerValueRef(op.StateLoadWord.Key, values))
	case op.StateStoreQuadWord != nil:
		return b.StateStoreQuadWord(l.lowerValueRef(op.StateStoreQuadWord.StoredVal, values), l.lowerValueRef(op.StateStoreQuadWord.Key, values))
	case op.StateStoreWord != nil:
		return b.StateStoreWord(l.lowerValueRef(op.StateStoreWord.StoredVal, values), l.lowerValueRef(op.StateStoreWord.Key, values))
	case op.Store != nil:
		return b.Store(l.lowerValueRef(op.Store.Dst, values), l.lowerValueRef(op.Store.Stored, values))
	default:
		l.errf(errors.ErrorSyntax, "empty instruction")
		return ir.Value{}
	}
}

func lowerBinOpKind(s string) ir.BinaryOpKind {
	switch s {
	case "add":
		return ir.Add
	case "sub":
		return ir.Sub
	case "mul":
		return ir.Mul
	case "div":
		return ir.Div
	default:
		return ir.Add
	}
}
