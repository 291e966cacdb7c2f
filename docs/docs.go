// Package docs registers the OpenAPI description of the todoapp bridge with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Loopback bridge between the todoapp desktop front-end and the local task store. Every route answers with the {success, data, error} envelope.",
        "title": "todoapp bridge",
        "version": "1.0"
    },
    "host": "127.0.0.1:17420",
    "basePath": "/",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Bridge is up"}}
            }
        },
        "/api/v1/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "description": "Without query parameters every task is returned in insertion order. With filter, q or sorted the list is narrowed and ordered.",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "filter", "type": "string", "enum": ["all", "pending", "completed", "today", "overdue"]},
                    {"in": "query", "name": "q", "type": "string", "description": "Case-insensitive text in title or description"},
                    {"in": "query", "name": "sorted", "type": "boolean", "description": "Pending first, then priority, then newest"}
                ],
                "responses": {"200": {"description": "Task list", "schema": {"$ref": "#/definitions/TaskListEnvelope"}}}
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create a task",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "task", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {"200": {"description": "Created task", "schema": {"$ref": "#/definitions/TaskEnvelope"}}}
            }
        },
        "/api/v1/tasks/stats": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Task counts",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Counts", "schema": {"$ref": "#/definitions/StatsEnvelope"}}}
            }
        },
        "/api/v1/tasks/{id}": {
            "patch": {
                "tags": ["Tasks"],
                "summary": "Update selected fields of a task",
                "description": "An unknown id succeeds with null data.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "changes", "required": true, "schema": {"$ref": "#/definitions/UpdateTaskRequest"}}
                ],
                "responses": {"200": {"description": "Updated task or null", "schema": {"$ref": "#/definitions/TaskEnvelope"}}}
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete a task",
                "description": "An unknown id fails with \"Task does not exist\".",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Deletion result", "schema": {"$ref": "#/definitions/BoolEnvelope"}}}
            }
        },
        "/api/v1/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Current settings",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Settings", "schema": {"$ref": "#/definitions/SettingsEnvelope"}}}
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace the settings",
                "description": "Fields missing from the body take their default values.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "settings", "required": true, "schema": {"$ref": "#/definitions/Settings"}}
                ],
                "responses": {"200": {"description": "Saved settings", "schema": {"$ref": "#/definitions/SettingsEnvelope"}}}
            }
        },
        "/api/v1/data": {
            "delete": {
                "tags": ["Data"],
                "summary": "Delete every task",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Clear result", "schema": {"$ref": "#/definitions/BoolEnvelope"}}}
            }
        },
        "/api/v1/data/export": {
            "get": {
                "tags": ["Data"],
                "summary": "Export all tasks as a JSON string",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Exported document", "schema": {"$ref": "#/definitions/StringEnvelope"}}}
            }
        },
        "/api/v1/data/import": {
            "post": {
                "tags": ["Data"],
                "summary": "Replace all tasks with an exported document",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "import", "required": true, "schema": {"$ref": "#/definitions/ImportRequest"}}
                ],
                "responses": {"200": {"description": "Import result", "schema": {"$ref": "#/definitions/BoolEnvelope"}}}
            }
        },
        "/api/v1/data/dir": {
            "get": {
                "tags": ["Data"],
                "summary": "Data directory path",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Absolute path", "schema": {"$ref": "#/definitions/StringEnvelope"}}}
            }
        },
        "/api/v1/files/open": {
            "post": {
                "tags": ["Files"],
                "summary": "Open an attachment with the system default application",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "file", "required": true, "schema": {"$ref": "#/definitions/OpenFileRequest"}}
                ],
                "responses": {"200": {"description": "Open result", "schema": {"$ref": "#/definitions/BoolEnvelope"}}}
            }
        }
    },
    "definitions": {
        "Attachment": {
            "type": "object",
            "required": ["id", "name"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "size": {"type": "integer"},
                "type": {"type": "string"},
                "data": {"type": "string", "format": "byte"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string", "x-nullable": true},
                "completed": {"type": "boolean"},
                "priority": {"type": "string", "enum": ["high", "medium", "low"]},
                "due_date": {"type": "string", "x-nullable": true},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"},
                "attachments": {"type": "array", "items": {"$ref": "#/definitions/Attachment"}}
            }
        },
        "TaskStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "completed": {"type": "integer"},
                "pending": {"type": "integer"},
                "overdue": {"type": "integer"},
                "today": {"type": "integer"},
                "high_priority": {"type": "integer"},
                "medium_priority": {"type": "integer"},
                "low_priority": {"type": "integer"}
            }
        },
        "Settings": {
            "type": "object",
            "properties": {
                "theme": {"type": "string", "enum": ["light", "pink"]},
                "notifications": {"type": "boolean"},
                "autoSave": {"type": "boolean"},
                "isPinned": {"type": "boolean"},
                "isCollapsed": {"type": "boolean"},
                "username": {"type": "string"},
                "avatar": {"type": "string"}
            }
        },
        "CreateTaskRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "maxLength": 500},
                "description": {"type": "string"},
                "priority": {"type": "string"},
                "due_date": {"type": "string"},
                "attachments": {"type": "array", "items": {"$ref": "#/definitions/Attachment"}}
            }
        },
        "UpdateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 500},
                "description": {"type": "string"},
                "completed": {"type": "boolean"},
                "priority": {"type": "string"},
                "due_date": {"type": "string"},
                "attachments": {"type": "array", "items": {"$ref": "#/definitions/Attachment"}}
            }
        },
        "ImportRequest": {
            "type": "object",
            "required": ["data"],
            "properties": {"data": {"type": "string"}}
        },
        "OpenFileRequest": {
            "type": "object",
            "required": ["file_name", "file_data"],
            "properties": {
                "file_name": {"type": "string"},
                "file_data": {"type": "string", "format": "byte"},
                "file_type": {"type": "string"}
            }
        },
        "TaskEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/Task"}, "error": {"type": "string"}}
        },
        "TaskListEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "array", "items": {"$ref": "#/definitions/Task"}}, "error": {"type": "string"}}
        },
        "StatsEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/TaskStats"}, "error": {"type": "string"}}
        },
        "SettingsEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/Settings"}, "error": {"type": "string"}}
        },
        "StringEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "string"}, "error": {"type": "string"}}
        },
        "BoolEnvelope": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "boolean"}, "error": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "127.0.0.1:17420",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "todoapp bridge",
	Description:      "Loopback bridge between the todoapp desktop front-end and the local task store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
