package servicedef

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikecbrant/local-authorizers/internal/localauth"
)

const sampleYAML = `service: svc
provider:
  name: aws
  runtime: nodejs20.x
functions:
  f1:
    handler: handler.hello
    events:
      - http:
          path: /hello
          method: get
          localAuthorizer: auth1
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_YAML(t *testing.T) {
	def, err := Load(writeTemp(t, "serverless.yml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, def.Format)
	assert.Equal(t, "svc", def.ServiceName())
	assert.Equal(t, "aws", def.ProviderName())

	fns, err := def.Functions()
	require.NoError(t, err)
	assert.Contains(t, fns, "f1")
}

func TestLoad_JSON(t *testing.T) {
	body := `{"service":{"name":"svc"},"provider":{"name":"aws","stage":"qa"},"functions":{}}`
	def, err := Load(writeTemp(t, "serverless.json", body))
	require.NoError(t, err)
	assert.Equal(t, "svc", def.ServiceName())
	assert.Equal(t, "qa", def.ProviderStage())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeTemp(t, "serverless.toml", "x"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Load(writeTemp(t, "list.yml", "- a\n- b\n"))
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Load(writeTemp(t, "bad.json", "{"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestFunctions(t *testing.T) {
	def := &Definition{Root: map[string]any{}}
	fns, err := def.Functions()
	require.NoError(t, err)
	fns["x"] = map[string]any{}
	assert.Contains(t, def.Root["functions"], "x")

	def = &Definition{Root: map[string]any{"functions": []any{"nope"}}}
	_, err = def.Functions()
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestDeploymentContext_StagePrecedence(t *testing.T) {
	def := &Definition{Root: map[string]any{
		"service":  "svc",
		"provider": map[string]any{"name": "aws", "stage": "qa"},
	}}
	assert.Equal(t, localauth.DeploymentContext{Provider: "aws", ServiceName: "svc", Stage: "prod"}, def.DeploymentContext("prod"))
	assert.Equal(t, "qa", def.DeploymentContext("").Stage)

	delete(def.Root["provider"].(map[string]any), "stage")
	assert.Equal(t, DefaultStage, def.DeploymentContext("").Stage)
}

func TestRewriteRoundTrip(t *testing.T) {
	path := writeTemp(t, "serverless.yml", sampleYAML)
	def, err := Load(path)
	require.NoError(t, err)

	r, err := localauth.New(def.DeploymentContext(""))
	require.NoError(t, err)
	fns, err := def.Functions()
	require.NoError(t, err)
	_, err = r.Apply(fns)
	require.NoError(t, err)

	out := filepath.Join(filepath.Dir(path), "out.json")
	require.NoError(t, def.Save(out))

	again, err := Load(out)
	require.NoError(t, err)
	fns, err = again.Functions()
	require.NoError(t, err)

	synth := fns["$__LOCAL_AUTHORIZER_auth1"].(map[string]any)
	assert.Equal(t, "local-authorizers.auth1", synth["handler"])
	assert.Equal(t, "svc-dev-authorizerauth1", synth["name"])
	assert.Equal(t, float64(256), synth["memorySize"])
	assert.Equal(t, []any{}, synth["events"])

	route := fns["f1"].(map[string]any)["events"].([]any)[0].(map[string]any)["http"].(map[string]any)
	assert.Equal(t, map[string]any{"name": "$__LOCAL_AUTHORIZER_auth1", "type": "token"}, route["authorizer"])
}

func TestEncode_YAML(t *testing.T) {
	def, err := Decode([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, def.Encode(&buf, FormatYAML))
	assert.Contains(t, buf.String(), "localAuthorizer: auth1")

	assert.True(t, errors.Is(def.Encode(&buf, Format("toml")), ErrUnsupportedFormat))
}
