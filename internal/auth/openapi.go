package auth

import "github.com/JaimeStill/pledge/pkg/openapi"

type spec struct {
	Code    *openapi.Operation
	Verify  *openapi.Operation
	Refresh *openapi.Operation
	Logout  *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all auth endpoints.
var Spec = spec{
	Code: &openapi.Operation{
		Summary:     "Request verification code",
		Description: "Sends a 6-digit code to the phone number, replacing any pending code",
		RequestBody: openapi.RequestBodyJSON("CodeCommand", true),
		Responses: map[int]*openapi.Response{
			202: openapi.ResponseJSON("Code issued", "CodeIssued"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Verify: &openapi.Operation{
		Summary:     "Verify code",
		Description: "Exchanges a verification code for a session. Creates the user on first sign-in",
		RequestBody: openapi.RequestBodyJSON("VerifyCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session opened", "TokenResponse"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			429: openapi.ResponseRef("TooManyRequests"),
		},
	},
	Refresh: &openapi.Operation{
		Summary:     "Refresh session",
		Description: "Rotates the refresh token and issues a new access token",
		RequestBody: openapi.RequestBodyJSON("RefreshCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session refreshed", "TokenResponse"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Logout: &openapi.Operation{
		Summary:     "Logout",
		Description: "Revokes the session owning the refresh token",
		RequestBody: openapi.RequestBodyJSON("RefreshCommand", true),
		Responses: map[int]*openapi.Response{
			204: {Description: "Session revoked"},
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

// Schemas returns the auth domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"CodeCommand": {
			Type:     "object",
			Required: []string{"phone"},
			Properties: map[string]*openapi.Schema{
				"phone": {Type: "string", Description: "E.164 phone number", Example: "+15551234567"},
			},
		},
		"CodeIssued": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"phone":      {Type: "string"},
				"expires_at": {Type: "string", Format: "date-time"},
				"dev_code":   {Type: "string", Description: "Present only in development mode"},
			},
		},
		"VerifyCommand": {
			Type:     "object",
			Required: []string{"phone", "code"},
			Properties: map[string]*openapi.Schema{
				"phone": {Type: "string", Example: "+15551234567"},
				"code":  {Type: "string", Example: "123456"},
				"name":  {Type: "string", Description: "Display name for first sign-in"},
			},
		},
		"RefreshCommand": {
			Type:     "object",
			Required: []string{"refresh_token"},
			Properties: map[string]*openapi.Schema{
				"refresh_token": {Type: "string"},
			},
		},
		"TokenResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"access_token":  {Type: "string"},
				"refresh_token": {Type: "string"},
				"token_type":    {Type: "string", Example: "Bearer"},
				"expires_at":    {Type: "string", Format: "date-time"},
				"user":          openapi.SchemaRef("User"),
			},
		},
	}
}
