package localauth

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestHandlerFor(t *testing.T) {
	tests := []struct {
		filePath string
		want     string
	}{
		{"local-authorizers.js", "local-authorizers.auth1"},
		{"handlers/auth", "handlers/auth.auth1"},
		{"lib/auth.v2.js", "lib/auth.auth1"},
		{"./auth.js", ".auth1"},
	}
	for _, tt := range tests {
		t.Run(tt.filePath, func(t *testing.T) {
			assert.Equal(t, tt.want, HandlerFor(tt.filePath, "auth1"))
		})
	}
}

func TestSynthesize_Defaults(t *testing.T) {
	ref, _ := Normalize(map[string]any{"name": "auth1"})
	dc := DeploymentContext{Provider: "aws", ServiceName: "svc", Stage: "dev"}

	got := Synthesize(*ref, dc)
	want := Function{
		MemorySize: 256,
		Timeout:    30,
		Handler:    "local-authorizers.auth1",
		Events:     []any{},
		Name:       "svc-dev-authorizerauth1",
		Package:    Package{Include: []string{"local-authorizers.js"}, Exclude: []string{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Synthesize mismatch (-want +got):\n%s", diff)
	}
}

func TestFunction_Descriptor(t *testing.T) {
	fn := Synthesize(Reference{Name: "a", Type: "token", FilePath: "auth/impl.js"}, DeploymentContext{ServiceName: "s", Stage: "prod"})
	want := map[string]any{
		"memorySize": 256,
		"timeout":    30,
		"handler":    "auth/impl.a",
		"events":     []any{},
		"name":       "s-prod-authorizera",
		"package": map[string]any{
			"include": []any{"auth/impl.js"},
			"exclude": []any{},
		},
	}
	if diff := cmp.Diff(want, fn.Descriptor()); diff != "" {
		t.Fatalf("Descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestFunctionKey(t *testing.T) {
	assert.Equal(t, "$__LOCAL_AUTHORIZER_auth1", FunctionKey("auth1"))
	assert.True(t, IsReserved(FunctionKey("auth1")))
	assert.False(t, IsReserved("auth1"))
}
