// Package verify is the IR well-formedness checker: it walks every
// function, block and instruction of a Module and accumulates
// errors.CompilerError diagnostics for the structural invariants
// spec.md §8 enumerates (I1-I4), following the teacher's
// internal/semantic.Analyzer idiom of a single collecting pass that
// never aborts on the first violation. Unlike that analyzer this one
// checks IR structure, not source-language semantics -- there are no
// symbol tables or type contexts here, only the core's own public
// surface (ir.Context).
package verify

import (
	"fmt"

	"fuelir/internal/errors"
	"fuelir/internal/ir"
)

// Verifier accumulates diagnostics across one Module.
type Verifier struct {
	ctx   *ir.Context
	diags []errors.CompilerError
}

// NewVerifier returns a Verifier bound to ctx.
func NewVerifier(ctx *ir.Context) *Verifier {
	return &Verifier{ctx: ctx}
}

// Module runs every check against m and returns the accumulated
// diagnostics. An empty, non-nil-Verifier result means m is
// well-formed.
func Module(ctx *ir.Context, m *ir.Module) []errors.CompilerError {
	v := NewVerifier(ctx)
	for _, f := range m.Functions {
		v.function(f)
	}
	return v.diags
}

func (v *Verifier) report(err errors.CompilerError) {
	v.diags = append(v.diags, err)
}

func (v *Verifier) function(f ir.Function) {
	c := v.ctx
	blocks := c.FunctionBlocks(f)
	reachable := v.reachability(f, blocks)

	for _, b := range blocks {
		v.checkTerminatorPlacement(b)  // I1
		v.checkBranchTargets(b)        // I2
		v.checkOperandsResolvable(b)   // I3
		v.checkResultTypePresence(b)   // I4
		if !reachable[b] {
			v.report(errors.UnreachableBlock(c.BlockName(b), errors.Position{}))
		}
	}
}

// checkTerminatorPlacement enforces I1: a non-empty block's last
// instruction is a terminator and no earlier instruction is.
func (v *Verifier) checkTerminatorPlacement(b ir.Block) {
	c := v.ctx
	instrs := c.Instructions(b)
	if len(instrs) == 0 {
		return
	}
	for idx, val := range instrs {
		instr, ok := c.AsInstruction(val)
		if !ok {
			continue
		}
		isLast := idx == len(instrs)-1
		isTerm := c.IsTerminator(instr)
		if isTerm && !isLast {
			v.report(errors.MissingTerminator(c.BlockName(b), errors.Position{}))
		}
		if isLast && !isTerm {
			v.report(errors.MissingTerminator(c.BlockName(b), errors.Position{}))
		}
	}
}

// checkBranchTargets enforces I2: a branch/cbr's argument vector
// matches its target's formal parameters pairwise by type, and the
// source block is recorded in the target's predecessor set.
func (v *Verifier) checkBranchTargets(b ir.Block) {
	c := v.ctx
	term, ok := c.Terminator(b)
	if !ok {
		return
	}
	instr, _ := c.AsInstruction(term)
	switch i := instr.(type) {
	case ir.Branch:
		v.checkEdge(b, i.Target, i.Args)
	case ir.ConditionalBranch:
		v.checkEdge(b, i.True.Block, i.True.Args)
		v.checkEdge(b, i.False.Block, i.False.Args)
	}
}

func (v *Verifier) checkEdge(source, target ir.Block, args []ir.Value) {
	c := v.ctx
	params := c.BlockParams(target)
	if len(params) != len(args) {
		v.report(errors.BlockArgMismatch(c.BlockName(target), len(params), len(args), errors.Position{}))
		return
	}
	for i := range params {
		if c.ValueType(params[i]) != c.ValueType(args[i]) {
			v.report(errors.BlockArgMismatch(c.BlockName(target), len(params), len(args), errors.Position{}))
			return
		}
	}
	found := false
	for _, p := range c.Predecessors(target) {
		if p == source {
			found = true
			break
		}
	}
	if !found {
		v.report(errors.MissingPredecessor(c.BlockName(source), c.BlockName(target), errors.Position{}))
	}
}

// checkOperandsResolvable enforces I3: every operand Value an
// instruction reads resolves in the Context's value arena.
func (v *Verifier) checkOperandsResolvable(b ir.Block) {
	c := v.ctx
	for _, val := range c.Instructions(b) {
		instr, ok := c.AsInstruction(val)
		if !ok {
			continue
		}
		for _, op := range c.Operands(instr) {
			if !c.ValueResolvable(op) {
				v.report(errors.UnresolvedOperand(fmt.Sprintf("instruction in block '%s'", c.BlockName(b)), errors.Position{}))
			}
		}
	}
}

// checkResultTypePresence enforces I4: TypeOf is present for every
// instruction with a declared result type and absent exactly for
// Branch, ConditionalBranch, Ret, Revert and Nop. A malformed
// GetElmPtr (out-of-range index) is a programmer error per spec.md §7
// and panics inside TypeOf; the verifier recovers it into a
// diagnostic instead of crashing the tool, since a module reaching
// this pass may have been built from untrusted irtext source.
func (v *Verifier) checkResultTypePresence(b ir.Block) {
	c := v.ctx
	for _, val := range c.Instructions(b) {
		instr, ok := c.AsInstruction(val)
		if !ok {
			continue
		}
		v.safeCheckOne(b, instr)
	}
}

func (v *Verifier) safeCheckOne(b ir.Block, instr ir.Instruction) {
	c := v.ctx
	defer func() {
		if r := recover(); r != nil {
			v.report(errors.ResultTypeMismatch(fmt.Sprintf("instruction in block '%s': %v", c.BlockName(b), r), errors.Position{}))
		}
	}()

	_, hasType := c.TypeOf(instr)
	switch instr.(type) {
	case ir.Branch, ir.ConditionalBranch, ir.Ret, ir.Revert, ir.Nop:
		if hasType {
			v.report(errors.ResultTypeMismatch(fmt.Sprintf("terminator/no-op in block '%s' unexpectedly has a result type", c.BlockName(b)), errors.Position{}))
		}
	default:
		if !hasType {
			v.report(errors.ResultTypeMismatch(fmt.Sprintf("instruction in block '%s' unexpectedly has no result type", c.BlockName(b)), errors.Position{}))
		}
	}
}

// reachability returns the set of blocks reachable from f's entry
// block by walking terminator edges, for the W0001 unreachable-block
// warning.
func (v *Verifier) reachability(f ir.Function, blocks []ir.Block) map[ir.Block]bool {
	c := v.ctx
	reachable := make(map[ir.Block]bool, len(blocks))
	entry := c.EntryBlock(f)
	queue := []ir.Block{entry}
	reachable[entry] = true
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		term, ok := c.Terminator(b)
		if !ok {
			continue
		}
		instr, _ := c.AsInstruction(term)
		var targets []ir.Block
		switch i := instr.(type) {
		case ir.Branch:
			targets = []ir.Block{i.Target}
		case ir.ConditionalBranch:
			targets = []ir.Block{i.True.Block, i.False.Block}
		}
		for _, t := range targets {
			if !reachable[t] {
				reachable[t] = true
				queue = append(queue, t)
			}
		}
	}
	return reachable
}
