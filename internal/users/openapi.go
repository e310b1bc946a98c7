package users

import "github.com/JaimeStill/pledge/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Search *openapi.Operation
	Me     *openapi.Operation
	Find   *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all user endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List users",
		Description: "Returns a paginated list of users with optional filtering and sorting",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query (matches name or phone)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("name", "string", "Filter by name (contains)", false),
			openapi.QueryParam("phone", "string", "Filter by E.164 phone number", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of users", "UserPageResult"),
			401: openapi.ResponseRef("Unauthorized"),
		},
		Security: openapi.BearerAuth,
	},
	Search: &openapi.Operation{
		Summary:     "Search users",
		Description: "Search users with filters and pagination via POST body",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("name", "string", "Filter by name (contains)", false),
			openapi.QueryParam("phone", "string", "Filter by E.164 phone number", false),
		},
		RequestBody: openapi.RequestBodyJSON("PageRequest", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated search results", "UserPageResult"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
		Security: openapi.BearerAuth,
	},
	Me: &openapi.Operation{
		Summary:     "Current user",
		Description: "Returns the profile of the authenticated caller",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Caller profile", "User"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
		Security: openapi.BearerAuth,
	},
	Find: &openapi.Operation{
		Summary:     "Find user by ID",
		Description: "Retrieves a single user profile",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "User UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("User profile", "User"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
		Security: openapi.BearerAuth,
	},
	Update: &openapi.Operation{
		Summary:     "Update user",
		Description: "Updates the caller's own profile",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "User UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateUserCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("User updated", "User"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
		Security: openapi.BearerAuth,
	},
	Delete: &openapi.Operation{
		Summary:     "Delete user",
		Description: "Removes the caller's account and revokes its sessions",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "User UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "User deleted"},
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
		Security: openapi.BearerAuth,
	},
}

// Schemas returns the users domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"name":       {Type: "string"},
				"phone":      {Type: "string", Description: "E.164 phone number"},
				"avatar":     {Type: "string", Description: "Initials or short avatar token"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"UpdateUserCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":   {Type: "string", Example: "Ada Lovelace"},
				"avatar": {Type: "string", Example: "AL"},
			},
		},
		"PageRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string"},
				"sort": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"field":      {Type: "string"},
							"descending": {Type: "boolean"},
						},
					},
				},
			},
		},
		"UserPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("User")},
				"total":       {Type: "integer", Description: "Total number of results"},
				"page":        {Type: "integer", Description: "Current page number"},
				"page_size":   {Type: "integer", Description: "Results per page"},
				"total_pages": {Type: "integer", Description: "Total number of pages"},
			},
		},
	}
}
