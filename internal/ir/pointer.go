package ir

// pointerData is the arena payload behind a Pointer handle: a typed,
// optionally-mutable storage location, with an optional constant
// initializer for module-level globals (original_source's
// `Pointer::new`).
type pointerData struct {
	pointeeType Type
	mutable     bool
	initializer Constant
	hasInit     bool
}

// NewPointer allocates a fresh Pointer of the given pointee type. Two
// calls with identical arguments still return distinct handles --
// unlike Type, Pointer identity is never structurally deduplicated
// (spec.md §3 "Pointer": "Pointer allocation is never interned").
func (c *Context) NewPointer(pointeeType Type, mutable bool) Pointer {
	return c.newPointerWithInit(pointeeType, mutable, Constant{}, false)
}

// NewPointerWithInitializer allocates a Pointer carrying an initial
// constant value, for module-level globals.
func (c *Context) NewPointerWithInitializer(pointeeType Type, mutable bool, init Constant) Pointer {
	return c.newPointerWithInit(pointeeType, mutable, init, true)
}

func (c *Context) newPointerWithInit(pointeeType Type, mutable bool, init Constant, hasInit bool) Pointer {
	idx := len(c.pointers)
	c.pointers = append(c.pointers, pointerData{
		pointeeType: pointeeType,
		mutable:     mutable,
		initializer: init,
		hasInit:     hasInit,
	})
	return Pointer{index: idx, gen: 1}
}

func (c *Context) pointerData(p Pointer) pointerData {
	return c.pointers[p.index]
}

// PointeeType, PointerMutable and PointerInitializer expose a
// Pointer's arena fields.
func (c *Context) PointeeType(p Pointer) Type { return c.pointerData(p).pointeeType }
func (c *Context) PointerMutable(p Pointer) bool { return c.pointerData(p).mutable }

func (c *Context) PointerInitializer(p Pointer) (Constant, bool) {
	d := c.pointerData(p)
	return d.initializer, d.hasInit
}
