package ir

import (
	"fmt"
	"strings"
)

// Printer renders a Module's structural walk -- Module -> Function ->
// Block -> (params, instructions) -- the external walker named by
// spec.md §6, implementable entirely from the core's public surface.
type Printer struct {
	ctx    *Context
	indent int
	output strings.Builder
}

// NewPrinter returns a Printer bound to ctx.
func NewPrinter(ctx *Context) *Printer {
	return &Printer{ctx: ctx}
}

// Print renders m to text.
func Print(ctx *Context, m *Module) string {
	p := NewPrinter(ctx)
	p.printModule(m)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printModule(m *Module) {
	p.writeLine("module %s {", m.Name)
	p.indent++
	for _, f := range m.Functions {
		p.printFunction(f)
	}
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printFunction(f Function) {
	c := p.ctx
	paramTys := c.FunctionParamTypes(f)
	params := make([]string, len(paramTys))
	for i, t := range paramTys {
		params[i] = c.TypeString(t)
	}
	p.writeLine("fn %s(%s) -> %s {", c.FunctionName(f), strings.Join(params, ", "), c.TypeString(c.FunctionReturnType(f)))
	p.indent++
	for _, b := range c.FunctionBlocks(f) {
		p.printBlock(b)
	}
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printBlock(b Block) {
	c := p.ctx
	paramStrs := make([]string, 0, c.ParamCount(b))
	for i, param := range c.BlockParams(b) {
		paramStrs = append(paramStrs, fmt.Sprintf("%%%d: %s", i, c.TypeString(c.ValueType(param))))
	}
	preds := c.Predecessors(b)
	predStrs := make([]string, len(preds))
	for i, pr := range preds {
		predStrs[i] = c.BlockName(pr)
	}
	header := fmt.Sprintf("%s(%s):", c.BlockName(b), strings.Join(paramStrs, ", "))
	if len(predStrs) > 0 {
		header += fmt.Sprintf(" // preds: %s", strings.Join(predStrs, ", "))
	}
	p.writeLine("%s", header)
	p.indent++
	it := c.NewInstructionIterator(b)
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		p.printInstructionValue(v)
	}
	p.indent--
}

func (p *Printer) printInstructionValue(v Value) {
	c := p.ctx
	instr, ok := c.AsInstruction(v)
	if !ok {
		return
	}
	if ty, ok := c.TypeOf(instr); ok {
		p.writeLine("%%v%d: %s = %s", v.index, c.TypeString(ty), p.renderInstruction(instr))
		return
	}
	p.writeLine("%s", p.renderInstruction(instr))
}

func (p *Printer) renderValue(v Value) string {
	c := p.ctx
	if k, ok := c.AsConstant(v); ok {
		return renderConstant(k)
	}
	if _, idx, ok := c.ArgumentBlockAndIndex(v); ok {
		return fmt.Sprintf("%%arg%d", idx)
	}
	return fmt.Sprintf("%%v%d", v.index)
}

func renderConstant(k Constant) string {
	switch k.Kind {
	case ConstUnit:
		return "()"
	case ConstBool:
		return fmt.Sprintf("%v", k.Bool)
	case ConstUint:
		return fmt.Sprintf("%d", k.Uint)
	case ConstB256:
		return fmt.Sprintf("0x%x", k.B256)
	case ConstString:
		return fmt.Sprintf("%q", k.Str)
	case ConstArray, ConstStruct:
		parts := make([]string, len(k.Elems))
		for i, e := range k.Elems {
			parts[i] = renderConstant(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "?"
	}
}

func (p *Printer) renderValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = p.renderValue(v)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) renderInstruction(instr Instruction) string {
	c := p.ctx
	switch i := instr.(type) {
	case AddrOf:
		return fmt.Sprintf("addr_of %s", p.renderValue(i.Val))
	case AsmBlock:
		return fmt.Sprintf("asm { %s }", i.Body)
	case BinaryOp:
		return fmt.Sprintf("%s %s, %s", i.Op, p.renderValue(i.A), p.renderValue(i.B))
	case BitCast:
		return fmt.Sprintf("bitcast %s to %s", p.renderValue(i.Val), c.TypeString(i.Ty))
	case Branch:
		return fmt.Sprintf("br %s(%s)", c.BlockName(i.Target), p.renderValues(i.Args))
	case Call:
		return fmt.Sprintf("call %s(%s)", c.FunctionName(i.Func), p.renderValues(i.Args))
	case Cmp:
		return fmt.Sprintf("cmp %s %s, %s", i.Pred, p.renderValue(i.A), p.renderValue(i.B))
	case ConditionalBranch:
		return fmt.Sprintf("cbr %s, %s(%s), %s(%s)",
			p.renderValue(i.Cond),
			c.BlockName(i.True.Block), p.renderValues(i.True.Args),
			c.BlockName(i.False.Block), p.renderValues(i.False.Args))
	case ContractCall:
		return fmt.Sprintf("contract_call %q(%s) coins=%s asset=%s gas=%s",
			i.Name, p.renderValue(i.Params), p.renderValue(i.Coins), p.renderValue(i.AssetID), p.renderValue(i.Gas))
	case GetStorageKey:
		return "get_storage_key"
	case Gtf:
		return fmt.Sprintf("gtf %s, %d", p.renderValue(i.Index), i.FieldID)
	case GetPointer:
		return fmt.Sprintf("get_ptr base=%d offset=%d", i.BasePtr.index, i.Offset)
	case GetElmPtr:
		return fmt.Sprintf("get_elm_ptr %s, %s, [%s]", p.renderValue(i.Ptr), c.TypeString(i.PointeeTy), p.renderValues(i.Indices))
	case IntToPtr:
		return fmt.Sprintf("int_to_ptr %s to %s", p.renderValue(i.Val), c.TypeString(i.Ty))
	case Load:
		return fmt.Sprintf("load %s", p.renderValue(i.PtrVal))
	case Log:
		return fmt.Sprintf("log %s, %s", p.renderValue(i.Val), p.renderValue(i.ID))
	case MemCopy:
		return fmt.Sprintf("mem_copy %s, %s, %d", p.renderValue(i.Dst), p.renderValue(i.Src), i.ByteLen)
	case Nop:
		return "nop"
	case ReadRegister:
		return fmt.Sprintf("read_register %s", i.Reg)
	case Ret:
		return fmt.Sprintf("ret %s", p.renderValue(i.Val))
	case Revert:
		return fmt.Sprintf("revert %s", p.renderValue(i.Val))
	case StateLoadQuadWord:
		return fmt.Sprintf("state_load_quad_word %s, key=%s", p.renderValue(i.LoadVal), p.renderValue(i.Key))
	case StateLoadWord:
		return fmt.Sprintf("state_load_word key=%s", p.renderValue(i.Key))
	case StateStoreQuadWord:
		return fmt.Sprintf("state_store_quad_word %s, key=%s", p.renderValue(i.StoredVal), p.renderValue(i.Key))
	case StateStoreWord:
		return fmt.Sprintf("state_store_word %s, key=%s", p.renderValue(i.StoredVal), p.renderValue(i.Key))
	case Store:
		return fmt.Sprintf("store %s, %s", p.renderValue(i.Dst), p.renderValue(i.Stored))
	default:
		return "<unknown instruction>"
	}
}
