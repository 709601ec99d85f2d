// Package docs registers the Swagger specification with the swag runtime.
// Code generated by swag; edits are overwritten by `swag init`.
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
        "/questions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "List questions (filtered, paginated)",
                "operationId": "listQuestions",
                "parameters": [
                    {"type": "string", "name": "company", "in": "query"},
                    {"type": "string", "name": "difficulty", "in": "query"},
                    {"type": "string", "name": "topics", "in": "query"},
                    {"type": "string", "name": "asked_within", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListQuestionsResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/questions/topics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "List topics",
                "operationId": "listTopics",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/questions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "Get one question",
                "operationId": "getQuestion",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.QuestionView"}},
                    "404": {"description": "Question not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/stats/home": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Public dashboard stats",
                "operationId": "homeStats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.HomeStats"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/stats/companies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Per-company question counts",
                "operationId": "companyStats",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/repo.CompanyCount"}}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/meta/last-updated": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Catalog last-updated timestamp",
                "operationId": "lastUpdated",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LastUpdatedResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/tracking": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tracking"],
                "summary": "List progress (paginated)",
                "operationId": "listTracking",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackingPage"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/tracking/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tracking"],
                "summary": "Progress summary",
                "operationId": "trackingStats",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackingStats"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/tracking/{questionId}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tracking"],
                "summary": "Record progress on a question",
                "operationId": "upsertTracking",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "questionId", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpsertTrackingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Tracking"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Question not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Tracking"],
                "summary": "Remove progress on a question",
                "operationId": "deleteTracking",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "questionId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "No progress recorded", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/requests": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Requests"],
                "summary": "List company requests",
                "operationId": "listRequests",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CompanyRequest"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Requests"],
                "summary": "Open a company request",
                "operationId": "createRequest",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateRequestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CompanyRequest"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/requests/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Requests"],
                "summary": "Get one request with its thread",
                "operationId": "getRequest",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CompanyRequest"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Not the creator", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Request not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/requests/{id}/messages": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Requests"],
                "summary": "Reply in a request thread",
                "operationId": "addRequestMessage",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AddMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.RequestMessage"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Not allowed to post", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Request not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Request closed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/admin/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Ingest a company CSV (admin)",
                "operationId": "adminUpload",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "company", "in": "formData", "required": true},
                    {"type": "string", "name": "asked_within", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ingest.Report"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/admin/questions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Bulk-create questions (admin)",
                "operationId": "adminBulkCreate",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.BulkCreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.BulkCreateResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/admin/questions/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Patch one question (admin)",
                "operationId": "adminUpdateQuestion",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateQuestionRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Question not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Delete one question (admin)",
                "operationId": "adminDeleteQuestion",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Question not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Admin dashboard stats",
                "operationId": "adminStats",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.AdminStats"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/admin/requests/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Requests"],
                "summary": "Transition a request (admin)",
                "operationId": "updateRequestStatus",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateStatusRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Request not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.CompanyRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "company": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "completed", "rejected"]},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/domain.RequestMessage"}}
            }
        },
        "domain.RequestMessage": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "senderId": {"type": "string"},
                "content": {"type": "string"},
                "isSystemMessage": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        },
        "domain.CompanyTag": {
            "type": "object",
            "properties": {
                "company": {"type": "string"},
                "lastAskedDate": {"type": "string"},
                "askedWithin": {"type": "string", "enum": ["30days", "2months", "6months", "older"]},
                "frequency": {"type": "number"}
            }
        },
        "domain.Question": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "difficulty": {"type": "string", "enum": ["Easy", "Medium", "Hard"]},
                "topics": {"type": "array", "items": {"type": "string"}},
                "link": {"type": "string"},
                "acceptanceRate": {"type": "number"},
                "frequency": {"type": "number"},
                "isActive": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "companies": {"type": "array", "items": {"$ref": "#/definitions/domain.CompanyTag"}}
            }
        },
        "domain.Tracking": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "questionId": {"type": "string"},
                "isSolved": {"type": "boolean"},
                "isRevise": {"type": "boolean"},
                "notes": {"type": "string"},
                "solvedAt": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "question": {"$ref": "#/definitions/domain.Question"}
            }
        },
        "handlers.AddMessageRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {
                "content": {"type": "string", "example": "Any update on this?"}
            }
        },
        "handlers.BulkQuestion": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Two Sum"},
                "difficulty": {"type": "string", "example": "Easy"},
                "topics": {"type": "array", "items": {"type": "string"}},
                "link": {"type": "string", "example": "https://leetcode.com/problems/two-sum"},
                "acceptanceRate": {"type": "number"},
                "frequency": {"type": "number"},
                "companies": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.BulkCreateRequest": {
            "type": "object",
            "required": ["questions"],
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/handlers.BulkQuestion"}}
            }
        },
        "handlers.BulkCreateResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "errors": {"type": "integer"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/ingest.RowErrorDetail"}}
            }
        },
        "handlers.CreateRequestRequest": {
            "type": "object",
            "required": ["company"],
            "properties": {
                "company": {"type": "string", "example": "Stripe"},
                "message": {"type": "string", "example": "Please add Stripe's latest onsite questions"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"},
                "code": {"type": "string", "example": "not_found"},
                "message": {"type": "string", "example": "resource not found"}
            }
        },
        "handlers.LastUpdatedResponse": {
            "type": "object",
            "properties": {
                "lastUpdated": {"type": "integer"}
            }
        },
        "handlers.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "has_next": {"type": "boolean"}
            }
        },
        "handlers.ListQuestionsResponse": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/services.QuestionView"}},
                "pagination": {"$ref": "#/definitions/handlers.Pagination"}
            }
        },
        "handlers.UpdateQuestionRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "difficulty": {"type": "string"},
                "topics": {"type": "array", "items": {"type": "string"}},
                "link": {"type": "string"},
                "acceptanceRate": {"type": "number"},
                "frequency": {"type": "number"},
                "isActive": {"type": "boolean"}
            }
        },
        "handlers.UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "example": "completed"}
            }
        },
        "handlers.UpsertTrackingRequest": {
            "type": "object",
            "properties": {
                "isSolved": {"type": "boolean"},
                "isRevise": {"type": "boolean"},
                "notes": {"type": "string"}
            }
        },
        "ingest.RowErrorDetail": {
            "type": "object",
            "properties": {
                "row": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "ingest.Report": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "updated": {"type": "integer"},
                "skipped": {"type": "integer"},
                "errors": {"type": "integer"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/ingest.RowErrorDetail"}}
            }
        },
        "repo.CompanyCount": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "services.AdminStats": {
            "type": "object",
            "properties": {
                "totalQuestions": {"type": "integer"},
                "byDifficulty": {"type": "object", "additionalProperties": {"type": "integer"}},
                "byRecency": {"type": "object", "additionalProperties": {"type": "integer"}},
                "totalCompanies": {"type": "integer"},
                "trackedUsers": {"type": "integer"},
                "recentQuestions": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}}
            }
        },
        "services.HomeStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "byDifficulty": {"type": "object", "additionalProperties": {"type": "integer"}},
                "faang": {"type": "array", "items": {"$ref": "#/definitions/repo.CompanyCount"}},
                "topCompanies": {"type": "array", "items": {"$ref": "#/definitions/repo.CompanyCount"}}
            }
        },
        "services.QuestionView": {
            "allOf": [
                {"$ref": "#/definitions/domain.Question"},
                {
                    "type": "object",
                    "properties": {
                        "progress": {"$ref": "#/definitions/domain.Tracking"}
                    }
                }
            ]
        },
        "services.TrackingPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Tracking"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "services.TrackingStats": {
            "type": "object",
            "properties": {
                "totalTracked": {"type": "integer"},
                "solved": {"type": "integer"},
                "revising": {"type": "integer"},
                "solvedByDifficulty": {"type": "object", "additionalProperties": {"type": "integer"}},
                "solvedByCompany": {"type": "object", "additionalProperties": {"type": "integer"}},
                "recentlySolved": {"type": "array", "items": {"$ref": "#/definitions/domain.Tracking"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Prep Backend API",
	Description:      "Company-tagged interview question catalog with CSV ingestion, per-user progress tracking, and company requests.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
