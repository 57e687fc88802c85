// Package docs holds the swagger 2.0 description of the attendance api, served on /swagger/.
// It follows the annotations on the handlers in internal/handlers.
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
        "/login": {
            "get": {
                "tags": [
                    "authentication"
                ],
                "summary": "Login required",
                "description": "Where unauthenticated browsers are redirected to, echoes the page to return to after POST /login",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "page to return to",
                        "name": "next",
                        "in": "query"
                    }
                ],
                "responses": {
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.UnauthorizedError"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "authentication"
                ],
                "summary": "Log in",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BadRequestError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.UnauthorizedError"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "login",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/apiResponses.Credentials"
                        }
                    }
                ]
            }
        },
        "/register": {
            "post": {
                "tags": [
                    "authentication"
                ],
                "summary": "Register a student account",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BadRequestError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ConflictError"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "new account",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/apiResponses.Credentials"
                        }
                    }
                ]
            }
        },
        "/logout": {
            "get": {
                "tags": [
                    "authentication"
                ],
                "summary": "Log out",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "303": {
                        "description": "See Other"
                    }
                }
            }
        },
        "/v": {
            "get": {
                "tags": [
                    "version"
                ],
                "summary": "Get the api version",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    }
                }
            }
        },
        "/home": {
            "get": {
                "tags": [
                    "home"
                ],
                "summary": "Landing data of the logged in user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    }
                }
            }
        },
        "/lessons": {
            "get": {
                "tags": [
                    "lessons"
                ],
                "summary": "Lessons of the logged in user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "lessons"
                ],
                "summary": "Create a lesson",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BadRequestError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "new lesson",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/apiResponses.CreateLessonRequest"
                        }
                    }
                ]
            }
        },
        "/lessons/all": {
            "get": {
                "tags": [
                    "lessons"
                ],
                "summary": "Every lesson",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    }
                }
            }
        },
        "/my-lessons": {
            "get": {
                "tags": [
                    "lessons"
                ],
                "summary": "Schedule of a student or lessons of a teacher",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    }
                }
            }
        },
        "/lessons/{id}/entry-state": {
            "put": {
                "tags": [
                    "lessons"
                ],
                "summary": "Open or close a lesson for check-in",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BadRequestError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "new state",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/apiResponses.EntryStateRequest"
                        }
                    }
                ]
            }
        },
        "/lessons/{id}/roster": {
            "get": {
                "tags": [
                    "lessons"
                ],
                "summary": "Attendance list of a lesson",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/lessons/{id}/qr": {
            "get": {
                "tags": [
                    "lessons"
                ],
                "summary": "QR code students scan to check in",
                "produces": [
                    "image/png"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/lessons/{id}/attendance": {
            "put": {
                "tags": [
                    "lessons"
                ],
                "summary": "Mark attendance",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BadRequestError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ConflictError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "attendance",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/apiResponses.AttendanceRequest"
                        }
                    }
                ]
            }
        },
        "/checkin/{lessonId}": {
            "get": {
                "tags": [
                    "checkin"
                ],
                "summary": "Check-in form data",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "303": {
                        "description": "See Other"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ConflictError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "id",
                        "name": "lessonId",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "post": {
                "tags": [
                    "checkin"
                ],
                "summary": "Check in to a lesson",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ConflictError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "id",
                        "name": "lessonId",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/classes": {
            "get": {
                "tags": [
                    "classes"
                ],
                "summary": "All classes with their counselor",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    }
                }
            }
        },
        "/classes/{code}/students": {
            "get": {
                "tags": [
                    "classes"
                ],
                "summary": "Members of a class",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "class code",
                        "name": "code",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "post": {
                "tags": [
                    "classes"
                ],
                "summary": "Add a student to a class",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ConflictError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "class code",
                        "name": "code",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "student name",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ClassStudentRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "classes"
                ],
                "summary": "Remove a student from a class",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.NotFoundError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "class code",
                        "name": "code",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "student name",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ClassStudentRequest"
                        }
                    }
                ]
            }
        },
        "/students": {
            "get": {
                "tags": [
                    "directory"
                ],
                "summary": "All students",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    }
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": [
                    "directory"
                ],
                "summary": "All teachers",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    }
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": [
                    "directory"
                ],
                "summary": "All subjects",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.BaseResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/apiResponses.ForbiddenError"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "apiResponses.BaseResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer",
                    "example": 200
                },
                "success": {
                    "type": "boolean",
                    "example": true
                },
                "message": {
                    "type": "string",
                    "example": "Ok"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                },
                "data": {}
            }
        },
        "apiResponses.BadRequestError": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer",
                    "example": 400
                },
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "message": {
                    "type": "string",
                    "example": "Missing required field (date)"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "apiResponses.UnauthorizedError": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer",
                    "example": 401
                },
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "message": {
                    "type": "string",
                    "example": "Invalid username or password"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "apiResponses.ForbiddenError": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer",
                    "example": 403
                },
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "message": {
                    "type": "string",
                    "example": "Only teachers can do this"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "apiResponses.NotFoundError": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer",
                    "example": 404
                },
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "message": {
                    "type": "string",
                    "example": "Lesson 12 not found"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "apiResponses.ConflictError": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer",
                    "example": 409
                },
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "message": {
                    "type": "string",
                    "example": "Lesson closed"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "apiResponses.Credentials": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string",
                    "example": "1000001"
                },
                "password": {
                    "type": "string"
                },
                "next": {
                    "type": "string",
                    "example": "/checkin/12"
                }
            }
        },
        "apiResponses.CreateLessonRequest": {
            "type": "object",
            "properties": {
                "subject_id": {
                    "type": "integer",
                    "example": 1
                },
                "teacher_id": {
                    "type": "integer",
                    "example": 2001
                },
                "date": {
                    "type": "string",
                    "format": "date-time"
                },
                "classes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "INF1A"
                    ]
                },
                "students": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "Bo Jansen"
                    ]
                }
            }
        },
        "apiResponses.EntryStateRequest": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string",
                    "enum": [
                        "opened",
                        "closed"
                    ]
                }
            }
        },
        "apiResponses.AttendanceRequest": {
            "type": "object",
            "properties": {
                "student_number": {
                    "type": "integer",
                    "example": 1000001
                },
                "state": {
                    "type": "string",
                    "enum": [
                        "absent",
                        "present"
                    ]
                },
                "reason": {
                    "type": "string",
                    "example": "sick"
                }
            }
        },
        "apiResponses.ClassStudentRequest": {
            "type": "object",
            "properties": {
                "student": {
                    "type": "string",
                    "example": "Bo Jansen"
                }
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
	Title:            "aanwezigheid api",
	Description:      "Attendance registration with QR check-in for students and teachers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
