// Package docs holds the OpenAPI document served under /swagger. Regenerate
// with `swag init -g cmd/server/main.go` after changing handler annotations.
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
    "paths": {
        "/cards": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "List the caller's cards, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.CardResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Issue a card",
                "parameters": [{"description": "Initial balance", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.IssueCardRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cards/batch": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Issue up to 100 cards with the same balance",
                "parameters": [{"description": "Count and initial balance", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.IssueBatchRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.IssueBatchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cards/{number}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Get one of the caller's cards",
                "parameters": [{"type": "string", "description": "Card number", "name": "number", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Delete a card and its history",
                "parameters": [{"type": "string", "description": "Card number", "name": "number", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OutcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cards/{number}/balance": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Set a card balance; zero deletes the card",
                "parameters": [
                    {"type": "string", "description": "Card number", "name": "number", "in": "path", "required": true},
                    {"description": "New balance", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AdjustBalanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OutcomeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cards/{number}/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Activate or deactivate a card",
                "parameters": [{"type": "string", "description": "Card number", "name": "number", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OutcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cards/{number}/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List one card's entries, newest first",
                "parameters": [{"type": "string", "description": "Card number", "name": "number", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.TransactionResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/payments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Pay from a card",
                "description": "A payment that empties the card deletes the card and its history.",
                "parameters": [{"description": "Payment data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CardPaymentRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OutcomeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List entries across the caller's cards, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.TransactionResponse"}}}
                }
            }
        },
        "/admin/cards": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List every card in the ledger",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.CardResponse"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List every entry in the ledger",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.TransactionResponse"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Summarise card counts, balances and today's activity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StatsResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Show the identity of the current token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MeResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Revoke the current token",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "handler.IssueCardRequest": {
            "type": "object",
            "required": ["initial_balance"],
            "properties": {"initial_balance": {"type": "string"}}
        },
        "handler.IssueBatchRequest": {
            "type": "object",
            "required": ["initial_balance"],
            "properties": {"count": {"type": "integer"}, "initial_balance": {"type": "string"}}
        },
        "handler.IssueBatchResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "cards": {"type": "array", "items": {"$ref": "#/definitions/handler.CardResponse"}}
            }
        },
        "handler.AdjustBalanceRequest": {
            "type": "object",
            "required": ["balance"],
            "properties": {"balance": {"type": "string"}}
        },
        "handler.CardPaymentRequest": {
            "type": "object",
            "required": ["amount", "card_number"],
            "properties": {"card_number": {"type": "string"}, "amount": {"type": "string"}}
        },
        "handler.CardResponse": {
            "type": "object",
            "properties": {
                "card_number": {"type": "string"},
                "balance": {"type": "string"},
                "initial_balance": {"type": "string"},
                "is_active": {"type": "boolean"},
                "owner_id": {"type": "string"},
                "created_by": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "card_number": {"type": "string"},
                "transaction_type": {"type": "string"},
                "amount": {"type": "string"},
                "balance_before": {"type": "string"},
                "balance_after": {"type": "string"},
                "transaction_date": {"type": "string"},
                "processed_by": {"type": "string"},
                "source_address": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "handler.OutcomeResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "deleted": {"type": "boolean"},
                "card": {"$ref": "#/definitions/handler.CardResponse"},
                "transaction": {"$ref": "#/definitions/handler.TransactionResponse"}
            }
        },
        "handler.StatsResponse": {
            "type": "object",
            "properties": {
                "total_cards": {"type": "integer"},
                "active_cards": {"type": "integer"},
                "total_transactions": {"type": "integer"},
                "transactions_today": {"type": "integer"},
                "outstanding_balance": {"type": "string"},
                "cards_by_owner": {"type": "array", "items": {"$ref": "#/definitions/model.OwnerCardCount"}}
            }
        },
        "model.OwnerCardCount": {
            "type": "object",
            "properties": {
                "owner_id": {"type": "string"},
                "cards": {"type": "integer"}
            }
        },
        "handler.MeResponse": {
            "type": "object",
            "properties": {
                "owner_id": {"type": "string"},
                "actor": {"type": "string"},
                "role": {"type": "string"},
                "token_id": {"type": "string"},
                "expires_at": {"type": "string"}
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
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Card Ledger API",
	Description:      "Prepaid card ledger: issuance, payments, balance adjustments and audit history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
