package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterStringAndLookup(t *testing.T) {
	assert.Equal(t, "ggas", Ggas.String())
	r, ok := Lookup("ggas")
	assert.True(t, ok)
	assert.Equal(t, Ggas, r)

	_, ok = Lookup("not-a-register")
	assert.False(t, ok)
}

func TestGtfFieldNameAndID(t *testing.T) {
	name, ok := GtfFieldName(0x401)
	assert.True(t, ok)
	assert.Equal(t, "GTF_INPUT_COUNT", name)

	id, ok := GtfFieldID("GTF_INPUT_COUNT")
	assert.True(t, ok)
	assert.Equal(t, uint64(0x401), id)

	_, ok = GtfFieldName(0xdead)
	assert.False(t, ok)

	_, ok = GtfFieldID("GTF_NOT_A_FIELD")
	assert.False(t, ok)
}
