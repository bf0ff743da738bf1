// Package docs registers the OpenAPI document served at /swagger.
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
    "securityDefinitions": {
        "ApiToken": {"type": "apiKey", "name": "X-API-Token", "in": "header"}
    },
    "paths": {
        "/hook/push": {
            "post": {
                "tags": ["Webhook"],
                "summary": "Push webhook",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "parameters": [
                    {"type": "string", "name": "api", "in": "query", "required": true,
                     "enum": ["gogs", "github", "gitea", "gitbucket", "bitbucket", "bitbucket-cloud", "gitlab"]}
                ],
                "responses": {
                    "200": {"description": "build #<num> queued, or ref not whitelisted"},
                    "400": {"description": "validation failure or rejected push"},
                    "403": {"description": "forbidden"},
                    "429": {"description": "rate limit exceeded"},
                    "500": {"description": "internal error"}
                }
            }
        },
        "/api/v1/repos": {
            "get": {"tags": ["Repositories"], "summary": "List repositories", "security": [{"ApiToken": []}],
                    "parameters": [
                        {"type": "integer", "name": "limit", "in": "query"},
                        {"type": "integer", "name": "offset", "in": "query"}
                    ],
                    "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Repositories"], "summary": "Register a repository", "security": [{"ApiToken": []}],
                     "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/api/v1/repos/ping": {
            "post": {"tags": ["Repositories"], "summary": "Check a clone url", "security": [{"ApiToken": []}],
                     "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not reachable"}}}
        },
        "/api/v1/repos/{id}": {
            "get": {"tags": ["Repositories"], "summary": "Get a repository", "security": [{"ApiToken": []}],
                    "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                    "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["Repositories"], "summary": "Update a repository", "security": [{"ApiToken": []}],
                    "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                    "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["Repositories"], "summary": "Delete a repository", "security": [{"ApiToken": []}],
                       "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                       "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/api/v1/repos/{id}/builds": {
            "get": {"tags": ["Builds"], "summary": "List builds of a repository", "security": [{"ApiToken": []}],
                    "parameters": [
                        {"type": "string", "name": "id", "in": "path", "required": true},
                        {"type": "integer", "name": "limit", "in": "query"},
                        {"type": "integer", "name": "offset", "in": "query"}
                    ],
                    "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Builds"], "summary": "Trigger a build", "security": [{"ApiToken": []}],
                     "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                     "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/builds/{id}": {
            "get": {"tags": ["Builds"], "summary": "Get a build", "security": [{"ApiToken": []}],
                    "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                    "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Builds"], "summary": "Delete a build", "security": [{"ApiToken": []}],
                       "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                       "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/api/v1/builds/{id}/restart": {
            "post": {"tags": ["Builds"], "summary": "Restart a build", "security": [{"ApiToken": []}],
                     "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                     "responses": {"202": {"description": "Accepted"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/api/v1/builds/{id}/stop": {
            "post": {"tags": ["Builds"], "summary": "Stop a build", "security": [{"ApiToken": []}],
                     "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                     "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/health": {"get": {"tags": ["Health"], "summary": "Health Check", "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["Health"], "summary": "Readiness Check", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}}},
        "/live": {"get": {"tags": ["Health"], "summary": "Liveness Check", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "flux-ci API",
	Description:      "Push webhooks from seven Git hosts, verified and turned into numbered builds.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
