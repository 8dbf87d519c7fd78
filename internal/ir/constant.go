package ir

import "fmt"

// ConstKind discriminates the literal payload a Constant carries.
type ConstKind int

const (
	ConstUnit ConstKind = iota
	ConstBool
	ConstUint
	ConstB256
	ConstArray
	ConstStruct
	ConstString
)

// Constant is an immutable literal value paired with its Type. It is
// not itself an arena handle -- Constants are cheap to copy by value
// and are embedded directly into Value and Pointer entries, the way
// original_source embeds `Constant` by value inside `ValueDatum::Constant`.
type Constant struct {
	Ty      Type
	Kind    ConstKind
	Bool    bool
	Uint    uint64
	B256    [32]byte
	Str     string
	Elems   []Constant // ConstArray / ConstStruct
}

func (c Constant) debugKey() string {
	switch c.Kind {
	case ConstUnit:
		return "unit()"
	case ConstBool:
		return fmt.Sprintf("bool(%v)", c.Bool)
	case ConstUint:
		return fmt.Sprintf("uint(%d)", c.Uint)
	case ConstB256:
		return fmt.Sprintf("b256(%x)", c.B256)
	case ConstString:
		return fmt.Sprintf("str(%q)", c.Str)
	case ConstArray, ConstStruct:
		s := "agg("
		for _, e := range c.Elems {
			s += e.debugKey() + ","
		}
		return s + ")"
	default:
		return "?"
	}
}

// ConstUnitValue, ConstBoolValue, ConstUintValue, ConstB256Value and
// ConstStringValue build the scalar Constant variants.

func (c *Context) ConstUnitValue() Constant {
	return Constant{Ty: c.UnitType(), Kind: ConstUnit}
}

func (c *Context) ConstBoolValue(b bool) Constant {
	return Constant{Ty: c.BoolType(), Kind: ConstBool, Bool: b}
}

func (c *Context) ConstUintValue(bits int, v uint64) Constant {
	return Constant{Ty: c.UintType(bits), Kind: ConstUint, Uint: v}
}

func (c *Context) ConstB256Value(v [32]byte) Constant {
	return Constant{Ty: c.B256Type(), Kind: ConstB256, B256: v}
}

func (c *Context) ConstStringValue(s string) Constant {
	return Constant{Ty: c.StringType(len(s)), Kind: ConstString, Str: s}
}

// ConstArrayValue and ConstStructValue build aggregate Constants; the
// caller supplies the already-computed element/field type so the
// aggregate's Type is explicit rather than re-derived (mirrors
// original_source's `Constant::new_array`/`new_struct`, which take the
// element type alongside the values).
func (c *Context) ConstArrayValue(elemTy Type, elems []Constant) Constant {
	return Constant{
		Ty:    c.ArrayType(elemTy, len(elems)),
		Kind:  ConstArray,
		Elems: append([]Constant(nil), elems...),
	}
}

func (c *Context) ConstStructValue(fieldTys []Type, elems []Constant) Constant {
	return Constant{
		Ty:    c.StructType(fieldTys),
		Kind:  ConstStruct,
		Elems: append([]Constant(nil), elems...),
	}
}

// constIndexValue resolves a Value that is expected to be a constant,
// non-negative integer index (as used by GetElmPtr/GetIndexedType).
// Only a Value wrapping a ConstUint constant resolves; anything else
// (an Argument, an Instruction result, a non-integer Constant) fails.
func (c *Context) constIndexValue(v Value) (int, bool) {
	d := c.valueData(v)
	if d.kind != valueKindConstant || d.constant.Kind != ConstUint {
		return 0, false
	}
	return int(d.constant.Uint), true
}
