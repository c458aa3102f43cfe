// Package docs holds the OpenAPI document served under /swagger/.
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
        "/v1/minters": {
            "post": {
                "summary": "Register a minter",
                "tags": [
                    "minters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AddMinterRequest"
                        }
                    }
                ]
            }
        },
        "/v1/minters/{address}": {
            "get": {
                "summary": "Look up a minter",
                "tags": [
                    "minters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "address",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "delete": {
                "summary": "Remove a minter",
                "tags": [
                    "minters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "address",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/v1/admin/marketplace-operator": {
            "get": {
                "summary": "Current marketplace operator",
                "tags": [
                    "admin"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "not found"
                    }
                }
            },
            "put": {
                "summary": "Set the marketplace operator",
                "tags": [
                    "admin"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetMarketplaceRequest"
                        }
                    }
                ]
            }
        },
        "/v1/assets": {
            "post": {
                "summary": "Mint an asset certificate",
                "tags": [
                    "assets"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/MintRequest"
                        }
                    }
                ]
            }
        },
        "/v1/assets/{serial_id}": {
            "get": {
                "summary": "Get an asset",
                "tags": [
                    "assets"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "delete": {
                "summary": "Burn an asset",
                "tags": [
                    "assets"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/v1/assets/{serial_id}/listing-approval": {
            "post": {
                "summary": "Approve the marketplace to move the asset",
                "tags": [
                    "assets"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/v1/assets/{serial_id}/stolen": {
            "get": {
                "summary": "Stolen status",
                "tags": [
                    "theft"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "post": {
                "summary": "Flag as stolen",
                "tags": [
                    "theft"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "delete": {
                "summary": "Clear stolen flag",
                "tags": [
                    "theft"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/v1/listings/{serial_id}": {
            "get": {
                "summary": "Get a listing",
                "tags": [
                    "listings"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "post": {
                "summary": "List an asset for resale",
                "tags": [
                    "listings"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ListWatchRequest"
                        }
                    }
                ]
            },
            "delete": {
                "summary": "Cancel a listing",
                "tags": [
                    "listings"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/v1/listings/{serial_id}/quote": {
            "get": {
                "summary": "Price plus royalty",
                "tags": [
                    "listings"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/v1/listings/{serial_id}/purchase": {
            "post": {
                "summary": "Buy a listed asset",
                "tags": [
                    "listings"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    },
                    {
                        "name": "serial_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PurchaseRequest"
                        }
                    }
                ]
            }
        },
        "/v1/balances/{address}": {
            "get": {
                "summary": "Escrow balance",
                "tags": [
                    "balances"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "address",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/v1/balances/withdraw": {
            "post": {
                "summary": "Withdraw escrow balance",
                "tags": [
                    "balances"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "validation"
                    },
                    "401": {
                        "description": "missing caller"
                    },
                    "403": {
                        "description": "authorization"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "parameters": [
                    {
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true,
                        "type": "string",
                        "description": "pre-authenticated caller address"
                    }
                ]
            }
        }
    },
    "definitions": {
        "AddMinterRequest": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string"
                },
                "brand": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "royalty_bps": {
                    "type": "integer"
                }
            }
        },
        "SetMarketplaceRequest": {
            "type": "object",
            "properties": {
                "operator": {
                    "type": "string"
                }
            }
        },
        "MintRequest": {
            "type": "object",
            "properties": {
                "to": {
                    "type": "string"
                },
                "serial_id": {
                    "type": "string"
                },
                "metadata_uri": {
                    "type": "string"
                }
            }
        },
        "ListWatchRequest": {
            "type": "object",
            "properties": {
                "price": {
                    "type": "string"
                },
                "designated_buyer": {
                    "type": "string"
                }
            }
        },
        "PurchaseRequest": {
            "type": "object",
            "properties": {
                "payment": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Provenance Ledger API",
	Description:      "Asset provenance registry and resale marketplace. Callers identify themselves with the X-User-Id header.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
