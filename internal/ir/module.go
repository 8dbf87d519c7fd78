package ir

// Module is a named collection of Functions (spec.md §3 item 8; named
// Program in the surrounding prose, Module in the data-model list).
// Unlike the other entities it is not arena-backed -- a Module is just
// an ordered name and Function-handle list, since nothing ever holds a
// handle to a Module itself.
type Module struct {
	Name      string
	Functions []Function
}

// NewModule returns an empty, named Module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunction records f as belonging to m, in declaration order.
func (m *Module) AddFunction(f Function) {
	m.Functions = append(m.Functions, f)
}
