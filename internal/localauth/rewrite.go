package localauth

import (
	"fmt"
	"sort"
	"strings"

	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"

	"github.com/mikecbrant/local-authorizers/internal/utils/logging"
)

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLogger sets the logger; nil keeps the NopLogger.
func WithLogger(l logging.Logger) Option {
	return func(r *Rewriter) { r.logger = logging.OrNop(l) }
}

// Rewriter replaces local-authorizer bindings with references to
// synthesized functions. A Rewriter holds no state between passes.
type Rewriter struct {
	dc     DeploymentContext
	logger logging.Logger
}

// New validates the deployment context. Only the aws provider is supported.
func New(dc DeploymentContext, opts ...Option) (*Rewriter, error) {
	if dc.Provider != "aws" {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedProvider, dc.Provider)
	}
	if strings.TrimSpace(dc.ServiceName) == "" || strings.TrimSpace(dc.Stage) == "" {
		return nil, ErrInvalidContext
	}
	r := &Rewriter{dc: dc, logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RouteRewrite records one rewritten route.
type RouteRewrite struct {
	Function   string
	Event      int
	Form       Form
	Authorizer string
	Key        string
	// GatewayType is the API Gateway authorizer type the binding stands in
	// for; empty for aws_iam and unknown types.
	GatewayType apigwtypes.AuthorizerType
}

// Result summarizes a pass.
type Result struct {
	Routes    []RouteRewrite
	Functions []string
}

type plannedRoute struct {
	http    map[string]any
	binding map[string]any
	rewrite RouteRewrite
}

// Apply runs one pass over functions, mutating it in place. Every route is
// normalized before anything is written, so an error leaves functions
// untouched. Function entries that are not mappings, and events that are not
// lists, are skipped.
func (r *Rewriter) Apply(functions map[string]any) (*Result, error) {
	if functions == nil {
		return nil, fmt.Errorf("%w: nil function collection", ErrInvalidFunctions)
	}
	reg := NewRegistry()

	plan, err := r.scan(functions, reg)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, p := range plan {
		p.http["authorizer"] = p.binding
		res.Routes = append(res.Routes, p.rewrite)
		r.logger.Debug("localauth.route.rewritten", logging.Fields{
			"function":    p.rewrite.Function,
			"event":       p.rewrite.Event,
			"form":        p.rewrite.Form.String(),
			"key":         p.rewrite.Key,
			"gatewayType": string(p.rewrite.GatewayType),
		})
	}

	for _, ref := range reg.Distinct() {
		key := FunctionKey(ref.Name)
		fn := Synthesize(ref, r.dc)
		if existing, ok := functions[key]; ok && !isSynthesized(existing, fn) {
			r.logger.Warn("localauth.function.overwritten", logging.Fields{"key": key})
		}
		functions[key] = fn.Descriptor()
		res.Functions = append(res.Functions, key)
		r.logger.Debug("localauth.function.synthesized", logging.Fields{
			"key":      key,
			"handler":  fn.Handler,
			"filePath": ref.FilePath,
		})
	}

	r.logger.Info("localauth.pass.done", logging.Fields{
		"routes":    len(res.Routes),
		"functions": len(res.Functions),
	})
	return res, nil
}

// scan visits functions in key order and plans every route rewrite.
func (r *Rewriter) scan(functions map[string]any, reg *Registry) ([]plannedRoute, error) {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)

	var plan []plannedRoute
	for _, fnName := range names {
		def, ok := functions[fnName].(map[string]any)
		if !ok {
			continue
		}
		events, ok := def["events"].([]any)
		if !ok {
			continue
		}
		for i, ev := range events {
			p, err := r.planRoute(fnName, i, ev, reg)
			if err != nil {
				return nil, &RouteError{Function: fnName, Event: i, Err: err}
			}
			if p != nil {
				plan = append(plan, *p)
			}
		}
	}
	return plan, nil
}

func (r *Rewriter) planRoute(fnName string, idx int, ev any, reg *Registry) (*plannedRoute, error) {
	event, ok := ev.(map[string]any)
	if !ok {
		return nil, nil
	}
	http, ok := event["http"].(map[string]any)
	if !ok {
		return nil, nil
	}
	raw, form := LookupBinding(http)
	if form == FormNone {
		return nil, nil
	}
	ref, err := Normalize(raw)
	if err != nil || ref == nil {
		return nil, err
	}
	if IsReserved(ref.Name) {
		ref.Name = strings.TrimPrefix(ref.Name, ReservedPrefix)
		if ref.Name == "" {
			return nil, ErrMissingName
		}
	}
	gwType, mapped := GatewayAuthorizerType(ref.Type)
	switch {
	case !KnownType(ref.Type):
		r.logger.Warn("localauth.type.unknown", logging.Fields{
			"function": fnName,
			"event":    idx,
			"type":     ref.Type,
		})
	case !mapped:
		r.logger.Warn("localauth.type.noauthorizer", logging.Fields{
			"function": fnName,
			"event":    idx,
			"type":     ref.Type,
		})
	}

	outcome := reg.Register(*ref)
	if outcome.Conflict {
		r.logger.Warn("localauth.registry.conflict", logging.Fields{
			"name":             ref.Name,
			"function":         fnName,
			"event":            idx,
			"retainedType":     outcome.Retained.Type,
			"retainedFilePath": outcome.Retained.FilePath,
			"ignoredType":      ref.Type,
			"ignoredFilePath":  ref.FilePath,
		})
	}

	return &plannedRoute{
		http:    http,
		binding: rewriteBinding(raw, *ref),
		rewrite: RouteRewrite{
			Function:    fnName,
			Event:       idx,
			Form:        form,
			Authorizer:  ref.Name,
			Key:         FunctionKey(ref.Name),
			GatewayType: gwType,
		},
	}, nil
}

// isSynthesized reports whether existing looks like a function this package
// produced for the same authorizer, as left by an earlier pass.
func isSynthesized(existing any, fn Function) bool {
	def, ok := existing.(map[string]any)
	if !ok {
		return false
	}
	name, _ := def["name"].(string)
	handler, _ := def["handler"].(string)
	return name == fn.Name && handler == fn.Handler
}
