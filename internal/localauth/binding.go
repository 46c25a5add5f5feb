package localauth

// Form identifies where a route declared its local authorizer.
type Form int

const (
	// FormNone means the route has no local authorizer.
	FormNone Form = iota
	// FormNested is http.authorizer.localAuthorizer.
	FormNested
	// FormFlat is http.localAuthorizer.
	FormFlat
)

const bindingKey = "localAuthorizer"

func (f Form) String() string {
	switch f {
	case FormNested:
		return "nested"
	case FormFlat:
		return "flat"
	default:
		return "none"
	}
}

// LookupBinding returns the raw local-authorizer shorthand of an http event.
// The nested form wins over the flat form when both are set.
func LookupBinding(http map[string]any) (any, Form) {
	if auth, ok := http["authorizer"].(map[string]any); ok {
		if raw := auth[bindingKey]; present(raw) {
			return raw, FormNested
		}
	}
	if raw := http[bindingKey]; present(raw) {
		return raw, FormFlat
	}
	return nil, FormNone
}

// present treats null, "" and false as unset.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	default:
		return true
	}
}

// rewriteBinding builds the route's new authorizer: the original shorthand
// fields with name replaced by the reserved key and type resolved.
func rewriteBinding(raw any, ref Reference) map[string]any {
	out := map[string]any{}
	if obj, ok := raw.(map[string]any); ok {
		for k, v := range obj {
			out[k] = v
		}
	}
	out["name"] = FunctionKey(ref.Name)
	out["type"] = ref.Type
	return out
}
