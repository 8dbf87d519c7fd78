package irtext

import (
	"fmt"
	"strings"

	"fuelir/internal/ir"
	"fuelir/internal/registers"
)

// Write serializes m back to the concrete syntax grammar.go describes,
// in lockstep with the value-numbering scheme Lower assumes: every
// block's formal parameters are numbered before any block's
// instructions, in block declaration order, then each block's
// instructions are numbered in append order. Unlike ir.Print (which
// renders %argN/%vN debug names and a "// preds" comment purely for
// human inspection) this is a round-trippable surface meant to be fed
// back through ParseSource.
func Write(ctx *ir.Context, m *ir.Module) string {
	w := &writer{ctx: ctx}
	w.writeModule(m)
	return w.out.String()
}

type writer struct {
	ctx      *ir.Context
	out      strings.Builder
	names    map[ir.Value]string
	ptrNames map[ir.Pointer]string
}

func (w *writer) line(indent int, format string, args ...interface{}) {
	w.out.WriteString(strings.Repeat("  ", indent))
	w.out.WriteString(fmt.Sprintf(format, args...))
	w.out.WriteString("\n")
}

func (w *writer) writeModule(m *ir.Module) {
	w.line(0, "module %s {", m.Name)
	for _, f := range m.Functions {
		w.writeFunction(f)
	}
	w.line(0, "}")
}

func (w *writer) writeFunction(f ir.Function) {
	c := w.ctx
	w.names = map[ir.Value]string{}
	w.ptrNames = map[ir.Pointer]string{}
	counter := 0

	params := c.FunctionParamTypes(f)
	paramStrs := make([]string, len(params))
	for i, t := range params {
		paramStrs[i] = w.typeString(t)
	}
	w.line(1, "fn %s(%s) -> %s {", c.FunctionName(f), strings.Join(paramStrs, ", "), w.typeString(c.FunctionReturnType(f)))

	blocks := c.FunctionBlocks(f)

	var ptrOrder []ir.Pointer
	for _, b := range blocks {
		for _, v := range c.Instructions(b) {
			if gp, ok := c.AsInstruction(v); ok {
				if g, ok := gp.(ir.GetPointer); ok {
					for _, p := range []ir.Pointer{g.BasePtr, g.PtrTy} {
						if _, seen := w.ptrNames[p]; !seen {
							w.ptrNames[p] = fmt.Sprintf("$%d", len(ptrOrder))
							ptrOrder = append(ptrOrder, p)
						}
					}
				}
			}
		}
	}
	if len(ptrOrder) > 0 {
		w.line(2, "ptrs {")
		for _, p := range ptrOrder {
			w.writePtrDecl(p)
		}
		w.line(2, "}")
	}

	// Name every block's parameters first, across all blocks, matching
	// Lower's numbering order.
	for _, b := range blocks {
		for _, p := range c.BlockParams(b) {
			w.names[p] = fmt.Sprintf("%%%d", counter)
			counter++
		}
	}
	for _, b := range blocks {
		for _, v := range c.Instructions(b) {
			w.names[v] = fmt.Sprintf("%%%d", counter)
			counter++
		}
	}

	for _, b := range blocks {
		w.writeBlock(b)
	}
	w.line(1, "}")
}

func (w *writer) writePtrDecl(p ir.Pointer) {
	c := w.ctx
	pointee := c.PointeeType(p)
	mut := ""
	if c.PointerMutable(p) {
		mut = "mut "
	}
	if init, ok := c.PointerInitializer(p); ok {
		w.line(3, "%s: %s%s = %s;", w.ptrNames[p], mut, w.typeString(pointee), constLitString(init))
		return
	}
	w.line(3, "%s: %s%s;", w.ptrNames[p], mut, w.typeString(pointee))
}

func (w *writer) writeBlock(b ir.Block) {
	c := w.ctx
	params := c.BlockParams(b)
	paramStrs := make([]string, len(params))
	for i, p := range params {
		paramStrs[i] = fmt.Sprintf("%s: %s", w.names[p], w.typeString(c.ValueType(p)))
	}
	w.line(2, "%s(%s):", c.BlockName(b), strings.Join(paramStrs, ", "))
	for _, v := range c.Instructions(b) {
		w.writeInstrLine(v)
	}
}

func (w *writer) writeInstrLine(v ir.Value) {
	c := w.ctx
	instr, ok := c.AsInstruction(v)
	if !ok {
		return
	}
	rendered := w.renderOp(instr)
	if ty, hasTy := c.TypeOf(instr); hasTy {
		w.line(3, "%s: %s = %s;", w.names[v], w.typeString(ty), rendered)
		return
	}
	w.line(3, "%s;", rendered)
}

func (w *writer) valueRef(v ir.Value) string {
	c := w.ctx
	if k, ok := c.AsConstant(v); ok {
		return constLitString(k)
	}
	if name, ok := w.names[v]; ok {
		return name
	}
	return "%?"
}

func (w *writer) valueRefs(vs []ir.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = w.valueRef(v)
	}
	return strings.Join(parts, ", ")
}

func constLitString(k ir.Constant) string {
	switch k.Kind {
	case ir.ConstUnit:
		return "()"
	case ir.ConstBool:
		return fmt.Sprintf("%v", k.Bool)
	case ir.ConstUint:
		return fmt.Sprintf("%d", k.Uint)
	case ir.ConstB256:
		return fmt.Sprintf("0x%x", k.B256)
	case ir.ConstString:
		return fmt.Sprintf("%q", k.Str)
	default:
		return "()"
	}
}

func (w *writer) typeString(t ir.Type) string {
	c := w.ctx
	switch c.Kind(t) {
	case ir.KindUnit:
		return "unit"
	case ir.KindBool:
		return "bool"
	case ir.KindB256:
		return "b256"
	case ir.KindUint:
		return fmt.Sprintf("u%d", c.UintBits(t))
	case ir.KindString:
		return fmt.Sprintf("str<%d>", c.StringLength(t))
	case ir.KindArray:
		return fmt.Sprintf("[%s; %d]", w.typeString(c.ArrayElem(t)), c.ArrayLen(t))
	case ir.KindStruct:
		fields := c.StructFields(t)
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = w.typeString(f)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ir.KindPointer:
		pointee, mutable, _, _ := c.PointerInfo(t)
		if mutable {
			return fmt.Sprintf("ptr<mut %s>", w.typeString(pointee))
		}
		return fmt.Sprintf("ptr<%s>", w.typeString(pointee))
	default:
		return "unit"
	}
}

func (w *writer) renderOp(instr ir.Instruction) string {
	c := w.ctx
	switch i := instr.(type) {
	case ir.AddrOf:
		return fmt.Sprintf("addr_of %s", w.valueRef(i.Val))
	case ir.AsmBlock:
		args := make([]string, len(i.Args))
		for j, a := range i.Args {
			if a.HasInit {
				args[j] = fmt.Sprintf("%s: %s = %s", a.Name, w.typeString(a.Ty), w.valueRef(a.Initializer))
			} else {
				args[j] = fmt.Sprintf("%s: %s", a.Name, w.typeString(a.Ty))
			}
		}
		if i.HasResult {
			return fmt.Sprintf("asm(%s) -> %s { %q }", strings.Join(args, ", "), w.typeString(i.ResultTy), i.Body)
		}
		return fmt.Sprintf("asm(%s) { %q }", strings.Join(args, ", "), i.Body)
	case ir.BinaryOp:
		return fmt.Sprintf("%s %s, %s", i.Op, w.valueRef(i.A), w.valueRef(i.B))
	case ir.BitCast:
		return fmt.Sprintf("bitcast %s to %s", w.valueRef(i.Val), w.typeString(i.Ty))
	case ir.Branch:
		return fmt.Sprintf("br %s(%s)", c.BlockName(i.Target), w.valueRefs(i.Args))
	case ir.Call:
		return fmt.Sprintf("call %s(%s)", c.FunctionName(i.Func), w.valueRefs(i.Args))
	case ir.Cmp:
		return fmt.Sprintf("cmp %s %s, %s", i.Pred, w.valueRef(i.A), w.valueRef(i.B))
	case ir.ConditionalBranch:
		return fmt.Sprintf("cbr %s, %s(%s), %s(%s)",
			w.valueRef(i.Cond),
			c.BlockName(i.True.Block), w.valueRefs(i.True.Args),
			c.BlockName(i.False.Block), w.valueRefs(i.False.Args))
	case ir.ContractCall:
		return fmt.Sprintf("contract_call %q(%s) coins=%s, asset=%s, gas=%s",
			i.Name, w.valueRef(i.Params), w.valueRef(i.Coins), w.valueRef(i.AssetID), w.valueRef(i.Gas))
	case ir.GetStorageKey:
		return "get_storage_key"
	case ir.Gtf:
		if name, ok := registers.GtfFieldName(i.FieldID); ok {
			return fmt.Sprintf("gtf %s, %s", w.valueRef(i.Index), name)
		}
		return fmt.Sprintf("gtf %s, %d", w.valueRef(i.Index), i.FieldID)
	case ir.GetPointer:
		return fmt.Sprintf("get_ptr base=%s, ptrty=%s, offset=%d", w.ptrNames[i.BasePtr], w.ptrNames[i.PtrTy], i.Offset)
	case ir.GetElmPtr:
		return fmt.Sprintf("get_elm_ptr %s, %s, [%s]", w.valueRef(i.Ptr), w.typeString(i.PointeeTy), w.valueRefs(i.Indices))
	case ir.IntToPtr:
		return fmt.Sprintf("int_to_ptr %s to %s", w.valueRef(i.Val), w.typeString(i.Ty))
	case ir.Load:
		return fmt.Sprintf("load %s", w.valueRef(i.PtrVal))
	case ir.Log:
		return fmt.Sprintf("log %s, %s, %s", w.valueRef(i.Val), w.typeString(i.Ty), w.valueRef(i.ID))
	case ir.MemCopy:
		return fmt.Sprintf("mem_copy %s, %s, %d", w.valueRef(i.Dst), w.valueRef(i.Src), i.ByteLen)
	case ir.Nop:
		return "nop"
	case ir.ReadRegister:
		return fmt.Sprintf("read_register %s", i.Reg)
	case ir.Ret:
		return fmt.Sprintf("ret %s", w.valueRef(i.Val))
	case ir.Revert:
		return fmt.Sprintf("revert %s", w.valueRef(i.Val))
	case ir.StateLoadQuadWord:
		return fmt.Sprintf("state_load_quad_word %s, key=%s", w.valueRef(i.LoadVal), w.valueRef(i.Key))
	case ir.StateLoadWord:
		return fmt.Sprintf("state_load_word key=%s", w.valueRef(i.Key))
	case ir.StateStoreQuadWord:
		return fmt.Sprintf("state_store_quad_word %s, key=%s", w.valueRef(i.StoredVal), w.valueRef(i.Key))
	case ir.StateStoreWord:
		return fmt.Sprintf("state_store_word %s, key=%s", w.valueRef(i.StoredVal), w.valueRef(i.Key))
	case ir.Store:
		return fmt.Sprintf("store %s, %s", w.valueRef(i.Dst), w.valueRef(i.Stored))
	default:
		return "nop"
	}
}
