package ir

import (
	"fmt"
	"strings"
)

// TypeKind discriminates the structural Type variants. The set is
// closed and every consumer (printer, verifier, codegen) switches on
// it exhaustively.
type TypeKind int

const (
	KindUnit TypeKind = iota
	KindBool
	KindUint
	KindB256
	KindArray
	KindStruct
	KindPointer
	KindString
)

func (k TypeKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindUint:
		return "uint"
	case KindB256:
		return "b256"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindPointer:
		return "pointer"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// typeData is the structural descriptor behind a Type handle. Only
// the fields relevant to Kind are meaningful.
type typeData struct {
	kind TypeKind

	bits int // KindUint: bit width in {8,16,32,64,256}

	elem   Type // KindArray: element type
	length int  // KindArray: length

	fields []Type // KindStruct: ordered field types

	pointee   Type     // KindPointer: pointee type
	mutable   bool     // KindPointer: mutable?
	initial   Constant // KindPointer: optional initial constant for globals
	hasInit   bool
	strLength int // KindString: length
}

// UnitType, BoolType and B256Type return (and intern) the canonical
// singleton of each non-parametric type.
func (c *Context) UnitType() Type   { return c.intern("unit", typeData{kind: KindUnit}) }
func (c *Context) BoolType() Type   { return c.intern("bool", typeData{kind: KindBool}) }
func (c *Context) B256Type() Type   { return c.intern("b256", typeData{kind: KindB256}) }
func (c *Context) StringType(length int) Type {
	return c.intern(fmt.Sprintf("string(%d)", length), typeData{kind: KindString, strLength: length})
}

// UintType interns a Uint(bits) type. bits is expected to be one of
// {8,16,32,64,256}; the core does not itself enforce this -- see
// spec.md §4.1 -- callers (the verifier, the builder's typed
// constructors) are responsible for using sane widths.
func (c *Context) UintType(bits int) Type {
	return c.intern(fmt.Sprintf("uint(%d)", bits), typeData{kind: KindUint, bits: bits})
}

// ArrayType interns Array(elem, length).
func (c *Context) ArrayType(elem Type, length int) Type {
	key := fmt.Sprintf("array(%d,%d)", elem.index, length)
	return c.intern(key, typeData{kind: KindArray, elem: elem, length: length})
}

// StructType interns Struct(fields...). Field order is structural.
func (c *Context) StructType(fields []Type) Type {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%d", f.index)
	}
	key := "struct(" + strings.Join(parts, ",") + ")"
	data := typeData{kind: KindStruct, fields: append([]Type(nil), fields...)}
	return c.intern(key, data)
}

// PointerType interns Pointer(pointee, mutable). Two pointer types
// with the same pointee and mutability but different initializers are
// still distinct handles -- the initializer is semantic (spec.md
// §4.1), so it is folded into the interning key via initTag.
func (c *Context) PointerType(pointee Type, mutable bool) Type {
	return c.pointerTypeWithInit(pointee, mutable, Constant{}, false)
}

// PointerTypeWithInitializer interns a Pointer(pointee, mutable) type
// carrying an initial constant, for globals.
func (c *Context) PointerTypeWithInitializer(pointee Type, mutable bool, init Constant) Type {
	return c.pointerTypeWithInit(pointee, mutable, init, true)
}

func (c *Context) pointerTypeWithInit(pointee Type, mutable bool, init Constant, hasInit bool) Type {
	initTag := "none"
	if hasInit {
		initTag = init.debugKey()
	}
	key := fmt.Sprintf("ptr(%d,%v,%s)", pointee.index, mutable, initTag)
	data := typeData{kind: KindPointer, pointee: pointee, mutable: mutable, initial: init, hasInit: hasInit}
	return c.intern(key, data)
}

func (c *Context) intern(key string, data typeData) Type {
	if h, ok := c.typeInterning[key]; ok {
		return h
	}
	idx := len(c.types)
	c.types = append(c.types, typeData{})
	c.types[idx] = data
	h := Type{index: idx, gen: 1}
	c.typeInterning[key] = h
	return h
}

func (c *Context) typeData(t Type) typeData {
	return c.types[t.index]
}

// TypeString renders a Type's structural description.
func (c *Context) TypeString(t Type) string {
	d := c.typeData(t)
	switch d.kind {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindUint:
		return fmt.Sprintf("u%d", d.bits)
	case KindB256:
		return "b256"
	case KindString:
		return fmt.Sprintf("str[%d]", d.strLength)
	case KindArray:
		return fmt.Sprintf("[%s; %d]", c.TypeString(d.elem), d.length)
	case KindStruct:
		parts := make([]string, len(d.fields))
		for i, f := range d.fields {
			parts[i] = c.TypeString(f)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case KindPointer:
		mut := ""
		if d.mutable {
			mut = "mut "
		}
		return fmt.Sprintf("ptr<%s%s>", mut, c.TypeString(d.pointee))
	default:
		return "?"
	}
}

// Kind, UintBits, ArrayElem/ArrayLen, StructFields and
// PointerInfo expose the structural fields of a Type.

func (c *Context) Kind(t Type) TypeKind { return c.typeData(t).kind }

func (c *Context) UintBits(t Type) int { return c.typeData(t).bits }

// StringLength returns a KindString Type's declared length.
func (c *Context) StringLength(t Type) int { return c.typeData(t).strLength }

func (c *Context) ArrayElem(t Type) Type { return c.typeData(t).elem }
func (c *Context) ArrayLen(t Type) int   { return c.typeData(t).length }

func (c *Context) StructFields(t Type) []Type { return c.typeData(t).fields }

// PointerInfo returns the pointee, mutability and optional initializer
// of a Pointer type.
func (c *Context) PointerInfo(t Type) (pointee Type, mutable bool, init Constant, hasInit bool) {
	d := c.typeData(t)
	return d.pointee, d.mutable, d.initial, d.hasInit
}

// IsArray and IsStruct report whether t is an aggregate of that shape.
func (c *Context) IsArray(t Type) bool  { return c.Kind(t) == KindArray }
func (c *Context) IsStruct(t Type) bool { return c.Kind(t) == KindStruct }

// StripPtrType yields the pointee of a Pointer type, or t unchanged if
// t is not a Pointer (spec.md §4.1).
func (c *Context) StripPtrType(t Type) Type {
	if c.Kind(t) != KindPointer {
		return t
	}
	return c.typeData(t).pointee
}

// GetIndexedType walks a sequence of aggregate indices against t,
// failing (ok=false) on a non-aggregate or an out-of-range constant
// index. Indices are Values that must resolve to integer Constants;
// see spec.md §4.1 and §4.3.2's GetElmPtr discussion.
func (c *Context) GetIndexedType(t Type, indices []Value) (Type, bool) {
	cur := t
	for _, idx := range indices {
		d := c.typeData(cur)
		n, ok := c.constIndexValue(idx)
		if !ok {
			return Type{}, false
		}
		switch d.kind {
		case KindStruct:
			if n < 0 || n >= len(d.fields) {
				return Type{}, false
			}
			cur = d.fields[n]
		case KindArray:
			if n < 0 || n >= d.length {
				return Type{}, false
			}
			cur = d.elem
		default:
			return Type{}, false
		}
	}
	return cur, true
}
