package localauth

import "strings"

const (
	// ReservedPrefix marks bindings and function keys owned by this package.
	ReservedPrefix = "$__LOCAL_AUTHORIZER_"

	// MemorySize and Timeout are fixed for every synthesized function.
	MemorySize = 256
	Timeout    = 30
)

// DeploymentContext identifies the service being rewritten.
type DeploymentContext struct {
	Provider    string
	ServiceName string
	Stage       string
}

// Package is a function's packaging rules.
type Package struct {
	Include []string `yaml:"include" json:"include"`
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// Function is a synthesized stand-in for a remote authorizer. It has no
// events; the offline runner invokes it directly.
type Function struct {
	MemorySize int     `yaml:"memorySize" json:"memorySize"`
	Timeout    int     `yaml:"timeout" json:"timeout"`
	Handler    string  `yaml:"handler" json:"handler"`
	Events     []any   `yaml:"events" json:"events"`
	Name       string  `yaml:"name" json:"name"`
	Package    Package `yaml:"package" json:"package"`
}

// FunctionKey returns the reserved function-collection key for an authorizer.
func FunctionKey(name string) string { return ReservedPrefix + name }

// IsReserved reports whether name already carries ReservedPrefix.
func IsReserved(name string) bool { return strings.HasPrefix(name, ReservedPrefix) }

// HandlerFor derives the handler entry point: everything in filePath before
// the first '.', then "." and the authorizer name. "lib/auth.v2.js" with
// name "a" yields "lib/auth.a".
func HandlerFor(filePath, name string) string {
	stem, _, _ := strings.Cut(filePath, ".")
	return stem + "." + name
}

// DisplayName is the deployed function name: <service>-<stage>-authorizer<name>.
func DisplayName(dc DeploymentContext, name string) string {
	return dc.ServiceName + "-" + dc.Stage + "-authorizer" + name
}

// Synthesize builds the stand-in function for ref.
func Synthesize(ref Reference, dc DeploymentContext) Function {
	return Function{
		MemorySize: MemorySize,
		Timeout:    Timeout,
		Handler:    HandlerFor(ref.FilePath, ref.Name),
		Events:     []any{},
		Name:       DisplayName(dc, ref.Name),
		Package: Package{
			Include: []string{ref.FilePath},
			Exclude: []string{},
		},
	}
}

// Descriptor renders f in the generic tree form used by the function collection.
func (f Function) Descriptor() map[string]any {
	events := make([]any, len(f.Events))
	copy(events, f.Events)
	return map[string]any{
		"memorySize": f.MemorySize,
		"timeout":    f.Timeout,
		"handler":    f.Handler,
		"events":     events,
		"name":       f.Name,
		"package": map[string]any{
			"include": stringsToAny(f.Package.Include),
			"exclude": stringsToAny(f.Package.Exclude),
		},
	}
}

func stringsToAny(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
