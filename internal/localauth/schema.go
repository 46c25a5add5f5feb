package localauth

import (
	"strings"

	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"
)

// knownTypes is the advisory enumeration for a binding's type field.
var knownTypes = []string{"token", "cognito_user_pools", "request", "aws_iam"}

// KnownTypes returns the accepted authorizer type names.
func KnownTypes() []string {
	out := make([]string, len(knownTypes))
	copy(out, knownTypes)
	return out
}

// KnownType reports whether t matches one of KnownTypes, ignoring case.
func KnownType(t string) bool {
	for _, k := range knownTypes {
		if strings.EqualFold(k, t) {
			return true
		}
	}
	return false
}

// GatewayAuthorizerType maps a binding type onto the API Gateway authorizer
// type. aws_iam is a method authorization mode, not an authorizer, so it has
// no mapping.
func GatewayAuthorizerType(t string) (apigwtypes.AuthorizerType, bool) {
	switch strings.ToLower(t) {
	case "token":
		return apigwtypes.AuthorizerTypeToken, true
	case "request":
		return apigwtypes.AuthorizerTypeRequest, true
	case "cognito_user_pools":
		return apigwtypes.AuthorizerTypeCognitoUserPools, true
	default:
		return "", false
	}
}

// EventPropertySchema is the JSON-schema fragment a host registers on http
// events so authors may write localAuthorizer. Type matching is
// case-insensitive.
func EventPropertySchema() map[string]any {
	anyOf := make([]any, 0, len(knownTypes))
	for _, t := range knownTypes {
		anyOf = append(anyOf, map[string]any{
			"type":   "string",
			"regexp": "/^" + t + "$/i",
		})
	}
	return map[string]any{
		"properties": map[string]any{
			bindingKey: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":     map[string]any{"type": "string"},
					"type":     map[string]any{"anyOf": anyOf},
					"filePath": map[string]any{"type": "string"},
				},
			},
		},
	}
}
