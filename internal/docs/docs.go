// Package docs registra a especificação OpenAPI servida em /swagger/.
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
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/auth/sign-up/email": {
            "post": {
                "tags": ["auth"], "summary": "Cria uma conta por email e senha",
                "parameters": [{"in": "body", "name": "registration", "required": true, "schema": {"$ref": "#/definitions/domain.SignUpInput"}}],
                "responses": {
                    "201": {"description": "Conta criada", "schema": {"$ref": "#/definitions/domain.Account"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Email já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/api/auth/sign-in/email": {
            "post": {
                "tags": ["auth"], "summary": "Autentica uma conta e retorna um JWT",
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/domain.SignInInput"}}],
                "responses": {
                    "200": {"description": "Token emitido", "schema": {"$ref": "#/definitions/domain.Session"}},
                    "401": {"description": "Credenciais inválidas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "tags": ["products"], "summary": "Lista os produtos",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}}}}
            },
            "post": {
                "tags": ["products"], "summary": "Cria um novo produto", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "product", "required": true, "schema": {"$ref": "#/definitions/domain.CreateProductInput"}}],
                "responses": {
                    "201": {"description": "Produto criado", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "tags": ["products"], "summary": "Busca um produto pelo ID",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "404": {"description": "Produto não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "patch": {
                "tags": ["products"], "summary": "Atualiza parcialmente um produto", "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "product", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateProductInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "404": {"description": "Produto não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["products"], "summary": "Remove um produto", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Produto removido"}}
            }
        },
        "/api/users": {
            "get": {
                "tags": ["users"], "summary": "Lista os perfis de usuário", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.UserProfile"}}}}
            }
        },
        "/api/users/{id}": {
            "get": {
                "tags": ["users"], "summary": "Busca um perfil", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserProfile"}},
                    "404": {"description": "Usuário não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "patch": {
                "tags": ["users"], "summary": "Atualiza conta e perfil", "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "profile", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateUserProfileInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserProfile"}},
                    "409": {"description": "Email já em uso", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["users"], "summary": "Remove o perfil", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Perfil removido"}}
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {"type": "object", "properties": {
            "code": {"type": "integer", "example": 400},
            "category": {"type": "string", "example": "VALIDATION_ERROR"},
            "message": {"type": "string", "example": "O nome do produto é obrigatório."}
        }},
        "domain.Product": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"},
            "priceCents": {"type": "integer"}, "currency": {"type": "string", "example": "EUR"},
            "stock": {"type": "integer"}, "isActive": {"type": "boolean"},
            "createdAt": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"}
        }},
        "domain.CreateProductInput": {"type": "object", "required": ["name", "priceCents"], "properties": {
            "name": {"type": "string"}, "description": {"type": "string"}, "priceCents": {"type": "integer"},
            "currency": {"type": "string"}, "stock": {"type": "integer"}, "isActive": {"type": "boolean"}
        }},
        "domain.UpdateProductInput": {"type": "object", "properties": {
            "name": {"type": "string"}, "description": {"type": "string"}, "priceCents": {"type": "integer"},
            "currency": {"type": "string"}, "stock": {"type": "integer"}, "isActive": {"type": "boolean"}
        }},
        "domain.Account": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "image": {"type": "string"},
            "email": {"type": "string"}, "emailVerified": {"type": "boolean"},
            "createdAt": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"}
        }},
        "domain.UserProfile": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "image": {"type": "string"},
            "email": {"type": "string"}, "emailVerified": {"type": "boolean"},
            "firstName": {"type": "string"}, "lastName": {"type": "string"}, "phone": {"type": "string"},
            "role": {"type": "string", "enum": ["ADMIN", "EMPLOYE", "DIRECTEUR"]},
            "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE", "SUSPENDED"]},
            "lastLoginAt": {"type": "string", "format": "date-time"},
            "createdAt": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"}
        }},
        "domain.UpdateUserProfileInput": {"type": "object", "properties": {
            "name": {"type": "string"}, "image": {"type": "string"}, "email": {"type": "string"},
            "emailVerified": {"type": "boolean"}, "firstName": {"type": "string"}, "lastName": {"type": "string"},
            "phone": {"type": "string"}, "role": {"type": "string"}, "status": {"type": "string"},
            "lastLoginAt": {"type": "string", "format": "date-time"}
        }},
        "domain.SignUpInput": {"type": "object", "required": ["name", "email", "password"], "properties": {
            "name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "minLength": 8}, "image": {"type": "string"}
        }},
        "domain.SignInInput": {"type": "object", "required": ["email", "password"], "properties": {
            "email": {"type": "string"}, "password": {"type": "string"}
        }},
        "domain.Session": {"type": "object", "properties": {
            "token": {"type": "string"}, "expiresAt": {"type": "string", "format": "date-time"},
            "user": {"$ref": "#/definitions/domain.Account"}
        }}
    }
}`

// SwaggerInfo guarda as informações exportadas da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catálogo API",
	Description:      "Catálogo de produtos e perfis de usuário com provisionamento no cadastro.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
