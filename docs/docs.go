// Package docs holds the Swagger specification served at /docs/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Pruefungsplaner API Documentation",
        "title": "Pruefungsplaner API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register",
                "description": "Create a new account and return a token pair",
                "responses": {
                    "201": {"description": "Account created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login",
                "description": "Authenticate with email and password",
                "responses": {
                    "200": {"description": "Token pair"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh tokens",
                "responses": {
                    "200": {"description": "New token pair"},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["Authentication"],
                "summary": "Change password",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Password updated"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List exam records",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "All exam records of the user"}
                }
            },
            "post": {
                "tags": ["Exams"],
                "summary": "Create exam record",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created record"},
                    "400": {"description": "Missing or invalid field"},
                    "502": {"description": "Storage failure, change rolled back"}
                }
            }
        },
        "/exams/{id}": {
            "put": {
                "tags": ["Exams"],
                "summary": "Replace exam record",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated record"},
                    "404": {"description": "Unknown id"}
                }
            },
            "delete": {
                "tags": ["Exams"],
                "summary": "Delete exam record",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Unknown id"}
                }
            }
        },
        "/exams/upcoming": {
            "get": {
                "tags": ["Exams"],
                "summary": "Upcoming exams",
                "description": "Exams inside the window [today, today+days], soonest first. days=-1 lifts the bound.",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Sorted upcoming exams"}
                }
            }
        },
        "/calendar/{year}/{month}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Month grid",
                "description": "Month grid with the exams of each day. start=sunday|monday selects the week start.",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Grid cells with exams"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Pruefungsplaner API",
	Description:      "Pruefungsplaner API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
