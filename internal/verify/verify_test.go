package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fuelir/internal/ir"
)

// buildDiamond builds the two-block-merge scenario from spec.md §8.1:
// entry cbr's on x==0 to j(v) along both arms (passing 1 on the true
// arm and x on the false arm), and j returns v.
func buildDiamond(c *ir.Context) *ir.Module {
	u64 := c.UintType(64)
	f := c.NewFunction("f", []ir.Type{u64}, u64)
	x := c.EntryParams(f)[0]
	entry := c.EntryBlock(f)

	j := c.NewBlock(f, "j")
	jParam := c.AddBlockParam(j, u64)

	entryB := ir.NewBuilder(c, entry)
	zero := c.NewConstantValue(c.ConstUintValue(64, 0))
	one := c.NewConstantValue(c.ConstUintValue(64, 1))
	cmp := entryB.Cmp(ir.Equal, x, zero)
	entryB.ConditionalBranch(cmp, j, []ir.Value{one}, j, []ir.Value{x})

	jB := ir.NewBuilder(c, j)
	jB.Ret(jParam, u64)

	m := ir.NewModule("m")
	m.AddFunction(f)
	return m
}

func TestVerifyWellFormedDiamond(t *testing.T) {
	c := ir.NewContext()
	m := buildDiamond(c)

	diags := Module(c, m)
	assert.Empty(t, diags)
}

func TestVerifyMissingTerminator(t *testing.T) {
	c := ir.NewContext()
	u64 := c.UintType(64)
	f := c.NewFunction("f", nil, u64)
	entry := c.EntryBlock(f)
	b := ir.NewBuilder(c, entry)
	zero := c.NewConstantValue(c.ConstUintValue(64, 0))
	b.AddrOf(zero) // no terminator appended

	m := ir.NewModule("m")
	m.AddFunction(f)

	diags := Module(c, m)
	assert.NotEmpty(t, diags)
	assert.Equal(t, "E0200", diags[0].Code)
}

func TestVerifyBlockArgMismatch(t *testing.T) {
	c := ir.NewContext()
	u64 := c.UintType(64)
	f := c.NewFunction("f", nil, u64)
	entry := c.EntryBlock(f)
	target := c.NewBlock(f, "target")
	c.AddBlockParam(target, u64)
	c.AddBlockParam(target, u64)

	b := ir.NewBuilder(c, entry)
	b.Branch(target, []ir.Value{c.NewConstantValue(c.ConstUintValue(64, 0))})

	tb := ir.NewBuilder(c, target)
	tb.Ret(c.NewConstantValue(c.ConstUintValue(64, 0)), u64)

	m := ir.NewModule("m")
	m.AddFunction(f)

	diags := Module(c, m)
	found := false
	for _, d := range diags {
		if d.Code == "E0201" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestVerifyUnreachableBlockWarning(t *testing.T) {
	c := ir.NewContext()
	u64 := c.UintType(64)
	f := c.NewFunction("f", nil, u64)
	entry := c.EntryBlock(f)
	dead := c.NewBlock(f, "dead")

	eb := ir.NewBuilder(c, entry)
	eb.Ret(c.NewConstantValue(c.ConstUintValue(64, 0)), u64)

	db := ir.NewBuilder(c, dead)
	db.Ret(c.NewConstantValue(c.ConstUintValue(64, 1)), u64)

	m := ir.NewModule("m")
	m.AddFunction(f)

	diags := Module(c, m)
	found := false
	for _, d := range diags {
		if d.Code == "W0001" {
			found = true
		}
	}
	assert.True(t, found)
}
