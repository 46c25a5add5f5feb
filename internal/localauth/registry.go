package localauth

// Registration describes the outcome of Registry.Register.
type Registration struct {
	// Added is true when ref was the first registration of its name.
	Added bool
	// Duplicate is true when the name was already registered.
	Duplicate bool
	// Conflict is true for a duplicate whose type or file path differs from
	// the retained reference.
	Conflict bool
	// Retained is the reference kept for the name.
	Retained Reference
}

// Registry accumulates distinct references for a single rewrite pass.
// The first registration of a name wins; later ones are ignored.
type Registry struct {
	order []Reference
	index map[string]int
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

// Register records ref unless its name is already known.
func (r *Registry) Register(ref Reference) Registration {
	if i, ok := r.index[ref.Name]; ok {
		kept := r.order[i]
		return Registration{
			Duplicate: true,
			Conflict:  kept.Type != ref.Type || kept.FilePath != ref.FilePath,
			Retained:  kept,
		}
	}
	r.index[ref.Name] = len(r.order)
	r.order = append(r.order, ref)
	return Registration{Added: true, Retained: ref}
}

// Distinct returns the registered references in first-registration order.
func (r *Registry) Distinct() []Reference {
	out := make([]Reference, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of distinct references.
func (r *Registry) Len() int { return len(r.order) }
