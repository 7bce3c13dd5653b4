// Package docs registers the OpenAPI spec with swag for the swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API root info",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        },
        "/health/db": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Database health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        },
        "/api/players": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "List players",
                "description": "Returns every player, sorted descending by the chosen key.",
                "parameters": [
                    {
                        "type": "string",
                        "enum": ["hits", "home_runs", "hits_per_game"],
                        "default": "hits",
                        "description": "Sort key",
                        "name": "sort_by",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Player"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/players/sync": {
            "post": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Sync players from the stats feed",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SyncResult"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/players/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Get player",
                "parameters": [
                    {"type": "integer", "description": "Player ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Player"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Update player",
                "description": "Applies the provided fields, recomputes stored rate stats, and marks the row edited.",
                "parameters": [
                    {"type": "integer", "description": "Player ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlayerUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Player"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/players/{id}/description": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Get player description",
                "description": "Returns the cached description, generating and caching one on first request.",
                "parameters": [
                    {"type": "integer", "description": "Player ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"description": {"type": "string"}}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        },
        "Player": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "external_id": {"type": "string"},
                "player_name": {"type": "string"},
                "position": {"type": "string"},
                "games": {"type": "integer"},
                "at_bats": {"type": "integer"},
                "runs": {"type": "integer"},
                "hits": {"type": "integer"},
                "doubles": {"type": "integer"},
                "triples": {"type": "integer"},
                "home_runs": {"type": "integer"},
                "rbis": {"type": "integer"},
                "walks": {"type": "integer"},
                "strikeouts": {"type": "integer"},
                "stolen_bases": {"type": "integer"},
                "caught_stealing": {"type": "integer"},
                "batting_average": {"type": "number"},
                "on_base_percentage": {"type": "number"},
                "slugging_percentage": {"type": "number"},
                "ops": {"type": "number"},
                "hits_per_game": {"type": "number"},
                "description": {"type": "string"},
                "is_edited": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "PlayerUpdate": {
            "type": "object",
            "properties": {
                "player_name": {"type": "string"},
                "position": {"type": "string"},
                "games": {"type": "integer"},
                "at_bats": {"type": "integer"},
                "runs": {"type": "integer"},
                "hits": {"type": "integer"},
                "doubles": {"type": "integer"},
                "triples": {"type": "integer"},
                "home_runs": {"type": "integer"},
                "rbis": {"type": "integer"},
                "walks": {"type": "integer"},
                "strikeouts": {"type": "integer"},
                "stolen_bases": {"type": "integer"},
                "caught_stealing": {"type": "integer"}
            }
        },
        "SyncResult": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "updated": {"type": "integer"},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Dugout API",
	Description:      "Baseball player stats CRUD API with on-demand LLM-generated player descriptions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
