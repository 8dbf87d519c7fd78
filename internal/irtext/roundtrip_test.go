package irtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelir/internal/ir"
)

// buildRoundtripModule exercises a spread of instruction kinds --
// compare, conditional branch, arithmetic, a pointer cast and a load,
// and a block-argument merge -- the same shape as ir's own §8 diamond
// scenario, extended so Write/Parse/Lower touch more of the grammar.
func buildRoundtripModule(c *ir.Context) *ir.Module {
	u64 := c.UintType(64)
	ptrU64 := c.PointerType(u64, false)

	f := c.NewFunction("main", []ir.Type{u64}, u64)
	x := c.EntryParams(f)[0]
	entry := c.EntryBlock(f)

	tBlock := c.NewBlock(f, "t")
	fBlock := c.NewBlock(f, "f")
	jBlock := c.NewBlock(f, "j")
	jParam := c.AddBlockParam(jBlock, u64)

	entryB := ir.NewBuilder(c, entry)
	zero := c.NewConstantValue(c.ConstUintValue(64, 0))
	cmp := entryB.Cmp(ir.Equal, x, zero)
	entryB.ConditionalBranch(cmp, tBlock, nil, fBlock, nil)

	tB := ir.NewBuilder(c, tBlock)
	one := c.NewConstantValue(c.ConstUintValue(64, 1))
	sum := tB.BinaryOp(ir.Add, x, one)
	tB.Branch(jBlock, []ir.Value{sum})

	fB := ir.NewBuilder(c, fBlock)
	ptr := fB.IntToPtr(x, ptrU64)
	loaded := fB.Load(ptr)
	fB.Branch(jBlock, []ir.Value{loaded})

	jB := ir.NewBuilder(c, jBlock)
	jB.Ret(jParam, u64)

	m := ir.NewModule("m")
	m.AddFunction(f)
	return m
}

func TestWriteParseLowerRoundtrips(t *testing.T) {
	c1 := ir.NewContext()
	m1 := buildRoundtripModule(c1)
	text1 := Write(c1, m1)

	parsed, err := ParseSource("roundtrip.fir", text1)
	require.NoError(t, err)

	c2, m2, diags := Lower(parsed)
	require.Empty(t, diags)

	text2 := Write(c2, m2)
	assert.Equal(t, text1, text2)
}

func TestParseRejectsUndefinedBlock(t *testing.T) {
	src := `module m {
  fn f() -> u64 {
    entry():
      br nowhere();
  }
}`
	parsed, err := ParseSource("bad.fir", src)
	require.NoError(t, err)

	_, _, diags := Lower(parsed)
	require.NotEmpty(t, diags)
	assert.Equal(t, "E0101", diags[0].Code)
}

func TestGtfMnemonicRoundtrips(t *testing.T) {
	c := ir.NewContext()
	u64 := c.UintType(64)
	f := c.NewFunction("f", nil, u64)
	entry := c.EntryBlock(f)
	b := ir.NewBuilder(c, entry)
	zero := c.NewConstantValue(c.ConstUintValue(64, 0))
	v := b.Gtf(zero, 0x401)
	b.Ret(v, u64)

	m := ir.NewModule("m")
	m.AddFunction(f)

	text1 := Write(c, m)
	assert.Contains(t, text1, "GTF_INPUT_COUNT")

	parsed, err := ParseSource("gtf.fir", text1)
	require.NoError(t, err)
	c2, m2, diags := Lower(parsed)
	require.Empty(t, diags)
	assert.Equal(t, text1, Write(c2, m2))
}

func TestParseRejectsUnknownAsmMnemonic(t *testing.T) {
	src := `module m {
  fn f() -> u64 {
    entry():
      %0: u64 = asm() -> u64 { "frobnicate" };
      ret %0;
  }
}`
	parsed, err := ParseSource("badasm.fir", src)
	require.NoError(t, err)

	_, _, diags := Lower(parsed)
	require.NotEmpty(t, diags)
	assert.Equal(t, "E0100", diags[0].Code)
}

func TestParseAcceptsKnownAsmMnemonic(t *testing.T) {
	src := `module m {
  fn f() -> u64 {
    entry():
      %0: u64 = asm() -> u64 { "move r1, r2" };
      ret %0;
  }
}`
	parsed, err := ParseSource("goodasm.fir", src)
	require.NoError(t, err)

	_, _, diags := Lower(parsed)
	assert.Empty(t, diags)
}

func TestParsePointerDeclAndGetPointer(t *testing.T) {
	src := `module m {
  fn f() -> u64 {
    ptrs {
      $0: mut u64 = 7;
    }
    entry():
      %0: ptr<u64> = get_ptr base=$0, ptrty=$0, offset=0;
      %1: u64 = load %0;
      ret %1;
  }
}`
	parsed, err := ParseSource("ptr.fir", src)
	require.NoError(t, err)

	ctx, m, diags := Lower(parsed)
	require.Empty(t, diags)
	require.Len(t, m.Functions, 1)
	blocks := ctx.FunctionBlocks(m.Functions[0])
	require.Len(t, blocks, 1)
	assert.Equal(t, 3, ctx.InstructionCount(blocks[0]))
}
