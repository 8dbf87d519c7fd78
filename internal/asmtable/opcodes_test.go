package asmtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownOpcode(t *testing.T) {
	def, ok := Lookup("add")
	assert.True(t, ok)
	assert.Equal(t, 2, def.Operands)
	assert.True(t, def.HasResult)
}

func TestIsKnownOpcode(t *testing.T) {
	assert.True(t, IsKnownOpcode("sww"))
	assert.False(t, IsKnownOpcode("frobnicate"))
}

func TestMnemonicsNonEmpty(t *testing.T) {
	names := Mnemonics()
	assert.NotEmpty(t, names)
	found := false
	for _, n := range names {
		if n == "call" {
			found = true
		}
	}
	assert.True(t, found)
}
