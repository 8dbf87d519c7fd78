package ir

// functionData is the arena payload behind a Function handle: an
// entry block, a parameter list (mirrored as the entry block's formal
// parameters), a return Type, and the function's owned blocks in
// creation order (spec.md §3 "Function").
type functionData struct {
	name       string
	paramTypes []Type
	returnType Type
	entry      Block
	hasEntry   bool
	blocks     []Block
}

func (c *Context) functionData(f Function) *functionData {
	return &c.functions[f.index]
}

// NewFunction allocates a Function with the given name, parameter
// types and return type, plus its entry block. The entry block's
// formal parameters are created immediately from paramTypes, matching
// spec.md §3: "parameter list (copied as entry block parameters)".
func (c *Context) NewFunction(name string, paramTypes []Type, returnType Type) Function {
	idx := len(c.functions)
	c.functions = append(c.functions, functionData{
		name:       name,
		paramTypes: append([]Type(nil), paramTypes...),
		returnType: returnType,
	})
	f := Function{index: idx, gen: 1}

	entry := c.NewBlock(f, "entry")
	for _, pt := range paramTypes {
		c.AddBlockParam(entry, pt)
	}
	fd := c.functionData(f)
	fd.entry = entry
	fd.hasEntry = true
	return f
}

// FunctionName, FunctionReturnType and FunctionParamTypes expose a
// Function's declared signature.
func (c *Context) FunctionName(f Function) string          { return c.functionData(f).name }
func (c *Context) FunctionReturnType(f Function) Type       { return c.functionData(f).returnType }
func (c *Context) FunctionParamTypes(f Function) []Type {
	return append([]Type(nil), c.functionData(f).paramTypes...)
}

// EntryBlock returns f's entry block.
func (c *Context) EntryBlock(f Function) Block { return c.functionData(f).entry }

// EntryParams returns the entry block's formal parameter Values, i.e.
// f's actual argument Values.
func (c *Context) EntryParams(f Function) []Value {
	return c.BlockParams(c.functionData(f).entry)
}

// FunctionBlocks returns f's owned blocks in creation order.
func (c *Context) FunctionBlocks(f Function) []Block {
	return append([]Block(nil), c.functionData(f).blocks...)
}
