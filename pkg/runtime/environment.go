package runtime

// Environment provides lexically scoped variable bindings. Procedure calls
// push a child scope whose bindings shadow globals of the same name; the
// scope is discarded when the call returns.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Extend returns a new child scope of the current environment.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.values[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

// Set implements MAKE semantics: update the binding in the innermost scope
// where the name already exists, so a procedure parameter absorbs writes
// without touching a same-named global; names bound nowhere are created at
// the global root.
func (e *Environment) Set(name string, value Value) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return
		}
	}
	e.root().values[name] = value
}

func (e *Environment) root() *Environment {
	env := e
	for env.parent != nil {
		env = env.parent
	}
	return env
}
