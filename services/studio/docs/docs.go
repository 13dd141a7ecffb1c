// Package docs is generated by swag init from the handler annotations.
// Regenerate with: swag init -g services/studio/cmd/app/main.go -o services/studio/docs
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/{kind}": {
            "get": {
                "tags": ["media"],
                "summary": "List media",
                "produces": ["application/json"],
                "parameters": [
                    {"enum": ["photos", "videos"], "type": "string", "in": "path", "name": "kind", "required": true},
                    {"type": "string", "in": "query", "name": "category"},
                    {"type": "string", "in": "query", "name": "tag"},
                    {"type": "string", "in": "query", "name": "search"},
                    {"type": "boolean", "in": "query", "name": "featured"},
                    {"type": "string", "in": "query", "name": "uploaded_by"},
                    {"enum": ["newest", "oldest", "popular", "liked"], "type": "string", "in": "query", "name": "sort"},
                    {"type": "integer", "in": "query", "name": "page"},
                    {"type": "integer", "in": "query", "name": "limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MediaListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["media"],
                "summary": "Upload media",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"enum": ["photos", "videos"], "type": "string", "in": "path", "name": "kind", "required": true},
                    {"type": "file", "in": "formData", "name": "file", "required": true},
                    {"type": "file", "in": "formData", "name": "thumbnail"},
                    {"type": "string", "in": "formData", "name": "title", "required": true},
                    {"type": "string", "in": "formData", "name": "description"},
                    {"type": "string", "in": "formData", "name": "category"},
                    {"type": "string", "in": "formData", "name": "tags"},
                    {"type": "boolean", "in": "formData", "name": "is_public"},
                    {"type": "boolean", "in": "formData", "name": "is_featured"},
                    {"type": "number", "in": "formData", "name": "duration_seconds"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.MediaResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/{kind}/{id}": {
            "get": {
                "tags": ["media"],
                "summary": "Get media by id",
                "produces": ["application/json"],
                "parameters": [
                    {"enum": ["photos", "videos"], "type": "string", "in": "path", "name": "kind", "required": true},
                    {"type": "string", "in": "path", "name": "id", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MediaResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["media"],
                "summary": "Delete media",
                "produces": ["application/json"],
                "parameters": [
                    {"enum": ["photos", "videos"], "type": "string", "in": "path", "name": "kind", "required": true},
                    {"type": "string", "in": "path", "name": "id", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/{kind}/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["media"],
                "summary": "Like or unlike",
                "produces": ["application/json"],
                "parameters": [
                    {"enum": ["photos", "videos"], "type": "string", "in": "path", "name": "kind", "required": true},
                    {"type": "string", "in": "path", "name": "id", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.LikeResponse"}}
                }
            }
        },
        "/contact": {
            "post": {
                "tags": ["contact"],
                "summary": "Send a contact message",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.ContactRequest"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "http.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "http.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string", "minLength": 8}}
        },
        "http.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "http.AuthResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/entity.User"}}
        },
        "http.ContactRequest": {
            "type": "object",
            "required": ["email", "message", "name"],
            "properties": {
                "email": {"type": "string"}, "message": {"type": "string"}, "name": {"type": "string"},
                "phone": {"type": "string"}, "service": {"type": "string"}
            }
        },
        "http.LikeResponse": {
            "type": "object",
            "properties": {"liked": {"type": "boolean"}, "likes_count": {"type": "integer"}}
        },
        "http.MediaListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.MediaResponse"}},
                "pagination": {"$ref": "#/definitions/entity.Pagination"}
            }
        },
        "http.MediaResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "kind": {"type": "string"}, "title": {"type": "string"},
                "description": {"type": "string"}, "category": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "uploaded_by": {"type": "string"}, "is_public": {"type": "boolean"}, "is_featured": {"type": "boolean"},
                "likes_count": {"type": "integer"}, "comments_count": {"type": "integer"}, "is_liked": {"type": "boolean"},
                "views": {"type": "integer"}, "public_id": {"type": "string"},
                "urls": {"type": "object", "additionalProperties": {"type": "string"}},
                "created_at": {"type": "string"}, "updated_at": {"type": "string"}
            }
        },
        "entity.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"}, "limit": {"type": "integer"}, "total": {"type": "integer"},
                "pages": {"type": "integer"}, "has_next": {"type": "boolean"}, "has_prev": {"type": "boolean"}
            }
        },
        "entity.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"},
                "avatar_url": {"type": "string"}, "bio": {"type": "string"}, "role": {"type": "string"},
                "is_active": {"type": "boolean"}, "last_login_at": {"type": "string"},
                "created_at": {"type": "string"}, "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Studio Portfolio API",
	Description:      "Portfolio media backend: photos, videos, users and contact messages",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
