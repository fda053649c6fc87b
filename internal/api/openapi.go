package api

import (
	"github.com/jmallard/manifest/internal/config"
	"github.com/jmallard/manifest/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the intake API.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"CreateSessionRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"tenant": {Type: "string", Description: "Tenant scope for reference lookups"},
				"type":   {Type: "string", Enum: []any{"order", "consignment"}, Default: "order"},
			},
		},
		"ItemsRequest": {
			Type:     "object",
			Required: []string{"items"},
			Properties: map[string]*openapi.Schema{
				"items": {
					Type:        "array",
					Description: "Free-text document descriptions, one per item",
					Items:       &openapi.Schema{Type: "string"},
				},
			},
		},
		"SubmissionOutcome": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"submitted": {Type: "boolean"},
				"message":   {Type: "string", Description: "Remote API message or failure wording"},
			},
		},
		"Item": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"position":   {Type: "integer", Description: "Zero-based input position"},
				"text":       {Type: "string"},
				"accepted":   {Type: "boolean"},
				"reason":     {Type: "string", Description: "Rejection reason, verbatim"},
				"submission": openapi.SchemaRef("SubmissionOutcome"),
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"tenant":     {Type: "string"},
				"type":       {Type: "string", Enum: []any{"order", "consignment"}},
				"items":      {Type: "array", Items: openapi.SchemaRef("Item")},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"Warehouse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":     {Type: "string"},
				"tenant": {Type: "string"},
				"name":   {Type: "string"},
				"code":   {Type: "string"},
			},
		},
		"Customer": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string"},
				"tenant":     {Type: "string"},
				"name":       {Type: "string"},
				"code":       {Type: "string"},
				"warehouses": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
	})

	spec.Paths["/sessions"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Open an intake session",
			Tags:        []string{"sessions"},
			RequestBody: openapi.RequestBodyJSON("CreateSessionRequest", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Session created", "Session"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/sessions/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Fetch a session and its batch",
			Tags:       []string{"sessions"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session", "Session"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Discard a session",
			Tags:       []string{"sessions"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Session discarded"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/sessions/{id}/items"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Run intake over a batch of free-text items",
			Description: "Each item is classified, extracted, and validated independently. Outcomes are appended to the session in input order.",
			Tags:        []string{"sessions"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			RequestBody: openapi.RequestBodyJSON("ItemsRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session with per-item outcomes", "Session"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				409: {Description: "Session is busy with another phase"},
			},
		},
	}

	spec.Paths["/sessions/{id}/upload"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Run intake over an uploaded workbook",
			Description: "Each data row of the first sheet is flattened into a text item and processed exactly like free text.",
			Tags:        []string{"sessions"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			RequestBody: &openapi.RequestBody{
				Required: true,
				Content: map[string]*openapi.MediaType{
					"multipart/form-data": {
						Schema: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"file": {Type: "string", Format: "binary"},
							},
						},
					},
				},
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session with per-item outcomes", "Session"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				413: {Description: "Workbook exceeds the upload size limit"},
			},
		},
	}

	spec.Paths["/sessions/{id}/submit"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Submit the session's accepted items",
			Description: "Logs in once and submits each accepted item independently. An authentication failure aborts the whole phase.",
			Tags:        []string{"sessions"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session with submission outcomes", "Session"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				502: {Description: "Remote authentication failed"},
			},
		},
	}

	listParams := func(description string) []*openapi.Parameter {
		return []*openapi.Parameter{
			openapi.QueryParam("tenant", "string", "Tenant scope filter", false),
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", description, false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields, - prefix for descending", false),
		}
	}

	spec.Paths["/warehouses"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List warehouses",
			Tags:       []string{"refdata"},
			Parameters: listParams("Match against warehouse name or code"),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of warehouses", "Warehouse"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/customers"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List customers",
			Tags:       []string{"refdata"},
			Parameters: listParams("Match against customer name or code"),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of customers", "Customer"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	return spec
}
