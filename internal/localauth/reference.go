package localauth

import "fmt"

const (
	// DefaultType is the authorizer type used when the shorthand names none.
	DefaultType = "token"
	// DefaultFilePath is the handler module used when the shorthand names none.
	DefaultFilePath = "local-authorizers.js"
)

// Reference is the canonical form of a local authorizer binding.
type Reference struct {
	Name     string
	Type     string
	FilePath string
}

// Normalize decodes one route's raw local-authorizer shorthand.
//
// Accepted shapes:
//
//	nil, ""              no binding; returns nil, nil
//	"auth1"              {name: "auth1"}
//	{name, type, filePath, ...}
//
// type and filePath are defaulted when absent; type is not checked against
// KnownTypes. raw is never modified.
func Normalize(raw any) (*Reference, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		ref := withDefaults(Reference{Name: v})
		return &ref, nil
	case map[string]any:
		return normalizeObject(v)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidBinding, raw)
	}
}

func normalizeObject(obj map[string]any) (*Reference, error) {
	rawName, ok := obj["name"]
	if !ok || rawName == nil {
		return nil, ErrMissingName
	}
	name, ok := rawName.(string)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidName, rawName)
	}
	if name == "" {
		return nil, ErrMissingName
	}
	ref := withDefaults(Reference{
		Name:     name,
		Type:     scalarString(obj["type"]),
		FilePath: scalarString(obj["filePath"]),
	})
	return &ref, nil
}

func withDefaults(ref Reference) Reference {
	if ref.Type == "" {
		ref.Type = DefaultType
	}
	if ref.FilePath == "" {
		ref.FilePath = DefaultFilePath
	}
	return ref
}

// scalarString renders an optional field; absent and null become "".
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
