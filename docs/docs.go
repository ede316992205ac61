// Package docs registers the OpenAPI document served by the Swagger UI at /swagger/*.
// Keep it in step with the swag annotations on the handlers.
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
        "/files": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "List registered files",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.PageEnvelope"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/model.File"}}}}
                            ]
                        }
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/files/thumbnails": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "List thumbnails stored on the media host",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.CountedEnvelope"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/model.ThumbnailAsset"}}}}
                            ]
                        }
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/files/thumbnail": {
            "post": {
                "description": "Accepts JSON {file, filename} with a base64 data URI, or multipart/form-data with a file part.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Upload a thumbnail image",
                "parameters": [
                    {"description": "JSON upload", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.uploadThumbnailRequest"}},
                    {"type": "file", "description": "Image file", "name": "file", "in": "formData"},
                    {"type": "string", "description": "Display filename", "name": "filename", "in": "formData"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Envelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.UploadedThumbnail"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "delete": {
                "description": "Each id is destroyed independently; per-item failures are reported, not raised.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Delete thumbnails from the media host",
                "parameters": [
                    {"description": "Media host public ids", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.idsRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Envelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.ThumbnailDeleteResult"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Pings the database.",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/project": {
            "post": {
                "description": "thumbnail is either a registered filename, an absolute URL, or {url, filename, id}.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a project",
                "parameters": [
                    {"description": "Project", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createProjectRequest"}}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Envelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/model.Project"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "delete": {
                "description": "Fails with 404 and deletes nothing when any id is unknown.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Delete projects",
                "parameters": [
                    {"description": "Project ids", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.idsRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Envelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.ProjectDeleteResult"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/project/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project",
                "parameters": [
                    {"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Envelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/model.Project"}}}
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "put": {
                "description": "Omitted fields are left unchanged. A replaced thumbnail's media host asset is removed on a best-effort basis.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Partially update a project",
                "parameters": [
                    {"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateProjectRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Envelope"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/model.Project"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.PageEnvelope"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/model.Project"}}}}
                            ]
                        }
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "handler.createProjectRequest": {
            "type": "object",
            "required": ["desc", "name"],
            "properties": {
                "desc": {"type": "string"},
                "name": {"type": "string"},
                "shortDesc": {"type": "string"},
                "thumbnail": {"type": "object"}
            }
        },
        "handler.idsRequest": {
            "type": "object",
            "required": ["ids"],
            "properties": {
                "ids": {"type": "array", "minItems": 1, "items": {"type": "string"}}
            }
        },
        "handler.updateProjectRequest": {
            "type": "object",
            "properties": {
                "desc": {"type": "string"},
                "name": {"type": "string"},
                "shortDesc": {"type": "string"},
                "thumbnail": {"type": "object"}
            }
        },
        "handler.uploadThumbnailRequest": {
            "type": "object",
            "required": ["file", "filename"],
            "properties": {
                "file": {"type": "string", "example": "data:image/png;base64,iVBORw0KGgo="},
                "filename": {"type": "string", "example": "cover.png"}
            }
        },
        "model.File": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "filename": {"type": "string"},
                "id": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "model.Project": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "desc": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "shortDesc": {"type": "string"},
                "thumbnail": {"$ref": "#/definitions/model.Thumbnail"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.Thumbnail": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "id": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "model.ThumbnailAsset": {
            "type": "object",
            "properties": {
                "bytes": {"type": "integer"},
                "created_at": {"type": "string"},
                "filename": {"type": "string"},
                "format": {"type": "string"},
                "height": {"type": "integer"},
                "public_id": {"type": "string"},
                "url": {"type": "string"},
                "width": {"type": "integer"}
            }
        },
        "response.CountedEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"},
                "total": {"type": "integer"}
            }
        },
        "response.Envelope": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "response.Page": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "page": {"type": "integer"}
            }
        },
        "response.PageEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"},
                "pagination": {"$ref": "#/definitions/response.Page"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "service.ProjectDeleteResult": {
            "type": "object",
            "properties": {
                "deletedIds": {"type": "array", "items": {"type": "string"}},
                "thumbnailDeletionResults": {"type": "array", "items": {"$ref": "#/definitions/service.ThumbnailCleanup"}}
            }
        },
        "service.ThumbnailCleanup": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fileDeleted": {"type": "boolean"},
                "filename": {"type": "string"},
                "id": {"type": "string"},
                "mediaHostResult": {"type": "string"},
                "note": {"type": "string"},
                "publicId": {"type": "string"},
                "success": {"type": "boolean"},
                "thumbnail": {"$ref": "#/definitions/model.Thumbnail"},
                "thumbnailId": {"type": "string"}
            }
        },
        "service.ThumbnailDeleteResult": {
            "type": "object",
            "properties": {
                "failed": {"type": "array", "items": {"type": "string"}},
                "successful": {"type": "array", "items": {"type": "string"}},
                "totalDeleted": {"type": "integer"},
                "totalRequested": {"type": "integer"}
            }
        },
        "service.UploadedThumbnail": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "id": {"type": "string"},
                "url": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Project API",
	Description:      "Portfolio projects and their thumbnail images.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
