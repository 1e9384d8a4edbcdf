// Package docs registers the swagger spec served at /swagger/index.html.
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
        "/devices": {
            "get": {
                "description": "Returns every entity loaded from the Supla servers, optionally filtered by type",
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "List all devices",
                "parameters": [
                    {"type": "string", "description": "Entity type (cover, switch)", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ListDevicesResponse"}},
                    "500": {"description": "Controller error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/devices/{id}": {
            "get": {
                "description": "Returns details for a specific entity by unique ID",
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Get device details",
                "parameters": [
                    {"type": "string", "description": "Entity unique ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.DeviceResponse"}},
                    "404": {"description": "Device not found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Controller error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/devices/{id}/action": {
            "post": {
                "description": "Forwards an action and its parameters to the Supla server without local validation",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Execute a channel action",
                "parameters": [
                    {"type": "string", "description": "Entity unique ID", "name": "id", "in": "path", "required": true},
                    {"description": "Action and parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ActionRequest"}}
                ],
                "responses": {
                    "204": {"description": "Action accepted"},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Device not found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "502": {"description": "Supla server error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/devices/{id}/refresh": {
            "post": {
                "description": "Re-fetches the channel state unless the entity's update interval has not elapsed",
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Refresh device state",
                "parameters": [
                    {"type": "string", "description": "Entity unique ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StateResponse"}},
                    "404": {"description": "Device not found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "502": {"description": "Supla server error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/devices/{id}/state": {
            "get": {
                "description": "Returns the state of an entity from its last refresh",
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Get device state",
                "parameters": [
                    {"type": "string", "description": "Entity unique ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StateResponse"}},
                    "404": {"description": "Device not found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Controller error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Applies a state change validated against the entity's schema",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Set device state",
                "parameters": [
                    {"type": "string", "description": "Entity unique ID", "name": "id", "in": "path", "required": true},
                    {"description": "State to set, e.g. {\"action\": \"open\"} or {\"state\": \"ON\"}", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StateResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Device not found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Controller error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "502": {"description": "Supla server error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns the health status of the API and the Supla integration",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Integration is set up", "schema": {"$ref": "#/definitions/types.HealthResponse"}},
                    "503": {"description": "Integration setup failed", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/servers": {
            "get": {
                "description": "Returns the authenticated Supla servers with their resolved update interval",
                "produces": ["application/json"],
                "tags": ["servers"],
                "summary": "List servers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ListServersResponse"}},
                    "500": {"description": "Controller error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ActionRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string"},
                "parameters": {"type": "object", "additionalProperties": {}}
            }
        },
        "types.DeviceResponse": {
            "type": "object",
            "properties": {
                "device": {"$ref": "#/definitions/types.DeviceWithState"}
            }
        },
        "types.DeviceWithState": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "channel_id": {"type": "integer"},
                "class": {"type": "string"},
                "function": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "server": {"type": "string"},
                "state": {"type": "object", "additionalProperties": {}},
                "state_schema": {"type": "array", "items": {"type": "integer"}},
                "type": {"type": "string"},
                "update_interval_seconds": {"type": "number"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "integration": {"type": "string"},
                "servers": {"type": "integer"},
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "types.ListDevicesResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "devices": {"type": "array", "items": {"$ref": "#/definitions/types.DeviceWithState"}}
            }
        },
        "types.ListServersResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "servers": {"type": "array", "items": {"$ref": "#/definitions/types.ServerResponse"}}
            }
        },
        "types.ServerResponse": {
            "type": "object",
            "properties": {
                "entities": {"type": "integer"},
                "name": {"type": "string"},
                "update_interval_seconds": {"type": "number"}
            }
        },
        "types.StateResponse": {
            "type": "object",
            "properties": {
                "device": {"type": "string"},
                "state": {"type": "object", "additionalProperties": {}},
                "timestamp": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Homai Supla API",
	Description:      "REST API for Supla roller shutters, gates and switches",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
