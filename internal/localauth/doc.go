// Package localauth rewrites a service's function collection so HTTP routes
// bound to local authorizers point at synthesized stand-in functions.
//
// A pass runs in three steps: every route's shorthand binding is normalized to
// a Reference, references are deduplicated by name in a pass-scoped Registry,
// and one Function descriptor is synthesized per distinct reference and
// inserted under its reserved key ($__LOCAL_AUTHORIZER_<name>).
//
// The function collection is the generic tree decoded from the service
// definition (map[string]any all the way down) and is mutated in place.
package localauth
