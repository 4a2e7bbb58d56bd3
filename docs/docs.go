// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "Cookie",
            "description": "accessToken cookie issued by /auth/sign-in"
        }
    },
    "paths": {
        "/auth/sign-in": {"post": {"tags": ["Auth"], "summary": "Sign in with Google", "responses": {"200": {"description": "Signed in"}, "400": {"description": "Invalid code"}, "409": {"description": "Email linked to another Google account"}}}},
        "/auth/sign-out": {"post": {"tags": ["Auth"], "summary": "Sign out", "responses": {"200": {"description": "Signed out"}, "400": {"description": "Refresh token cookie missing"}}}},
        "/auth/refresh-tokens": {"post": {"tags": ["Auth"], "summary": "Rotate auth tokens", "responses": {"200": {"description": "Tokens rotated"}, "400": {"description": "Refresh token cookie missing"}, "401": {"description": "Invalid, expired or revoked token"}, "404": {"description": "User no longer exists"}}}},
        "/auth/me": {"get": {"tags": ["Auth"], "summary": "Current user", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "Signed-in user"}, "401": {"description": "Unauthenticated"}}}},
        "/cohorts": {"get": {"tags": ["Cohorts"], "summary": "List cohorts", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "Cohorts"}}}},
        "/teams": {
            "get": {"tags": ["Teams"], "summary": "List unpublished teams of a cohort", "security": [{"CookieAuth": []}], "parameters": [{"name": "cohortId", "in": "query", "required": true, "type": "string"}], "responses": {"200": {"description": "Teams"}, "400": {"description": "Missing or invalid cohortId"}}},
            "post": {"tags": ["Teams"], "summary": "Create a team", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Team created"}, "400": {"description": "Validation error"}, "409": {"description": "Active team already exists in cohort"}}}
        },
        "/teams/{id}": {"get": {"tags": ["Teams"], "summary": "Get a team with its members", "security": [{"CookieAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Team"}, "404": {"description": "Team not found"}}}},
        "/teams/{id}/join": {"post": {"tags": ["Teams"], "summary": "Join a team", "security": [{"CookieAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Team"}, "409": {"description": "Conflict"}}}},
        "/teams/{id}/leave": {"post": {"tags": ["Teams"], "summary": "Leave a team", "security": [{"CookieAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Left team"}, "409": {"description": "Leader cannot leave"}}}},
        "/teams/{id}/publish": {"patch": {"tags": ["Teams"], "summary": "Publish or unpublish a team", "security": [{"CookieAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Team"}, "403": {"description": "Not the team leader"}}}},
        "/teams/{id}/disband": {"post": {"tags": ["Teams"], "summary": "Disband a team", "security": [{"CookieAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Team"}, "403": {"description": "Not the team leader"}}}},
        "/notices": {"post": {"tags": ["Notices"], "summary": "Post a notice", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Notice created"}, "403": {"description": "Not the team leader"}}}},
        "/notices/{teamId}": {"get": {"tags": ["Notices"], "summary": "List a team's notices", "security": [{"CookieAuth": []}], "parameters": [{"name": "teamId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Notices"}}}},
        "/notices/{id}": {
            "put": {"tags": ["Notices"], "summary": "Edit a notice", "security": [{"CookieAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Notice updated"}, "403": {"description": "Not the team leader"}, "404": {"description": "Notice not found"}}},
            "delete": {"tags": ["Notices"], "summary": "Delete a notice", "security": [{"CookieAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Notice deleted"}, "403": {"description": "Not the team leader"}, "404": {"description": "Notice not found"}}}
        },
        "/admin/upload-csv": {"post": {"tags": ["Admin"], "summary": "Upload a user roster", "security": [{"CookieAuth": []}], "consumes": ["multipart/form-data"], "parameters": [{"name": "file", "in": "formData", "required": true, "type": "file"}], "responses": {"200": {"description": "Roster imported"}, "400": {"description": "Missing or invalid file"}, "403": {"description": "Admin access required"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Teabag API",
	Description:      "Cohort team formation: Google sign-in, teams, notices and roster upload",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
