package rules

var registered []Rule

// Register adds a rule to the registry. Rules run in registration order.
func Register(r Rule) {
	registered = append(registered, r)
}

// All returns every registered rule in execution order.
func All() []Rule {
	return registered
}

// Lookup finds a registered rule by ID.
func Lookup(id string) (Rule, bool) {
	for _, r := range registered {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

func init() {
	Register(&SortImports{})
	Register(&SortObjectKeys{})
	Register(&SortDestructuringKeys{})
}
