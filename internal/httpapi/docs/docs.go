// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Keep it in step with the handler annotations in package httpapi.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "modelrouter maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List the model catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}
                }
            }
        },
        "/backends": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Check every backend directly",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.BackendsResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health cache snapshot and recent routing events",
                "parameters": [
                    {"type": "boolean", "description": "Mark every cached verdict stale first", "name": "refresh", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/route": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["routing"],
                "summary": "Pick a model for a task",
                "parameters": [
                    {"description": "Task and optional tier", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/types.RouteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RouteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/chat": {
            "post": {
                "description": "Routes by task and tier when model is empty. Backend failures map to 502 with the upstream status.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Send a conversation to a model",
                "parameters": [
                    {"description": "Chat request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ModelDescriptor": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "qwen3-coder-30b-a3b-instruct"},
                "display_name": {"type": "string", "example": "Qwen3-Coder-30B"},
                "backend": {"type": "string", "example": "lm_studio"},
                "tier": {"type": "string", "example": "L3"},
                "param_size": {"type": "string", "example": "30B"},
                "quantization": {"type": "string", "example": "unknown"},
                "latency_ms": {"type": "integer", "example": 1550},
                "max_tokens": {"type": "integer", "example": 8192},
                "context_window": {"type": "integer", "example": 131072}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"$ref": "#/definitions/types.ModelDescriptor"}}
            }
        },
        "types.BackendStatus": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "lm_studio"},
                "base_url": {"type": "string", "example": "http://127.0.0.1:1234"},
                "healthy": {"type": "boolean", "example": true}
            }
        },
        "types.BackendsResponse": {
            "type": "object",
            "properties": {
                "backends": {"type": "array", "items": {"$ref": "#/definitions/types.BackendStatus"}}
            }
        },
        "types.HealthEntryStatus": {
            "type": "object",
            "properties": {
                "model_id": {"type": "string", "example": "qwen2-7b-instruct"},
                "healthy": {"type": "boolean", "example": true},
                "checked_at_unix": {"type": "integer", "example": 1700000000},
                "fresh": {"type": "boolean", "example": true}
            }
        },
        "types.EventStatus": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "route_exhausted"},
                "model_id": {"type": "string", "example": "qwen3.5-397b-a17b"},
                "at_unix": {"type": "integer", "example": 1700000000},
                "fields": {"type": "object", "additionalProperties": true}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "health": {"type": "array", "items": {"$ref": "#/definitions/types.HealthEntryStatus"}},
                "health_ttl_seconds": {"type": "integer", "example": 60},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "server_time_unix": {"type": "integer", "example": 1700000000},
                "events": {"type": "array", "items": {"$ref": "#/definitions/types.EventStatus"}}
            }
        },
        "types.RouteRequest": {
            "type": "object",
            "properties": {
                "task": {"type": "string", "example": "reasoning"},
                "tier": {"type": "string", "example": "L4"}
            }
        },
        "types.RouteResponse": {
            "type": "object",
            "properties": {
                "model": {"$ref": "#/definitions/types.ModelDescriptor"},
                "fallback": {"type": "boolean", "example": false},
                "reason": {"type": "string", "example": "first healthy candidate"}
            }
        },
        "types.ChatMessage": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "example": "user"},
                "content": {"type": "string", "example": "Hello"}
            }
        },
        "types.ChatRequest": {
            "type": "object",
            "properties": {
                "model": {"type": "string", "example": "qwen2-7b-instruct"},
                "task": {"type": "string", "example": "realtime"},
                "tier": {"type": "string", "example": "L2"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/types.ChatMessage"}},
                "max_tokens": {"type": "integer", "example": 256},
                "temperature": {"type": "number", "example": 0.3}
            }
        },
        "types.Usage": {
            "type": "object",
            "properties": {
                "prompt_tokens": {"type": "integer"},
                "completion_tokens": {"type": "integer"},
                "total_tokens": {"type": "integer"}
            }
        },
        "types.ChatResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "model": {"type": "string", "example": "qwen2-7b-instruct"},
                "content": {"type": "string"},
                "usage": {"$ref": "#/definitions/types.Usage"},
                "latency_ms": {"type": "integer", "example": 1234},
                "tokens_per_second": {"type": "number", "example": 42.5},
                "fallback": {"type": "boolean", "example": false}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 502},
                "upstream_status": {"type": "integer", "example": 400}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "modelrouter API",
	Description:      "Health-aware routing of chat requests across local LM Studio and Ollama backends.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
