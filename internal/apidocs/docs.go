// Package apidocs holds the OpenAPI document served at /swagger/doc.json.
//
// The document follows the swag annotations on cmd/certgw-server/main.go and internal/server/handlers.
// It is kept in the layout produced by
//
//	swag init -g cmd/certgw-server/main.go -o internal/apidocs --outputTypes go
//
// so rerunning that command replaces this file. Route coverage is checked by internal/server tests.
package apidocs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "consumes": [
        "application/json"
    ],
    "produces": [
        "application/json"
    ],
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Lists the gateway endpoints with their parameters and responses",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Common"
                ],
                "summary": "API description",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {}
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Checks the registry contract can be reached by reading the number of issued certificates.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Common"
                ],
                "summary": "Health Check",
                "responses": {
                    "200": {
                        "description": "status healthy",
                        "schema": {
                            "$ref": "#/definitions/api.HealthResponse"
                        }
                    },
                    "500": {
                        "description": "status unhealthy",
                        "schema": {
                            "$ref": "#/definitions/api.HealthResponse"
                        }
                    }
                }
            }
        },
        "/issue-certificate": {
            "post": {
                "description": "Records a new certificate on the ledger and waits for the transaction to be mined.\n\n` + "`" + `certificateHash` + "`" + ` is a bytes32 hex string; the ` + "`" + `0x` + "`" + ` prefix is added if it is missing.\n` + "`" + `certificateId` + "`" + ` and ` + "`" + `eventData` + "`" + ` are null if the CertificateIssued event could not be found in the receipt.",
                "tags": [
                    "Certificates"
                ],
                "summary": "Issue a certificate",
                "parameters": [
                    {
                        "description": "Certificate details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.IssueCertificateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Certificate issued",
                        "schema": {
                            "$ref": "#/definitions/api.IssueCertificateResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed or malformed body",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Ledger rejected the transaction (e.g. duplicate hash) or ledger unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/revoke-certificate": {
            "post": {
                "description": "Marks a certificate as revoked on the ledger and waits for the transaction to be mined.\nRevocation is permanent.",
                "tags": [
                    "Certificates"
                ],
                "summary": "Revoke a certificate",
                "parameters": [
                    {
                        "description": "Certificate to revoke",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.RevokeCertificateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Certificate revoked",
                        "schema": {
                            "$ref": "#/definitions/api.RevokeCertificateResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed or malformed body",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Ledger rejected the transaction (e.g. already revoked) or ledger unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/verify-certificate": {
            "get": {
                "description": "Looks up a certificate by id or by hash. At least one is required; when both are supplied the id is used.",
                "tags": [
                    "Certificates"
                ],
                "summary": "Verify a certificate",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Certificate id (non-negative integer)",
                        "name": "certificateId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Certificate hash (bytes32 hex)",
                        "name": "certificateHash",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Certificate found",
                        "schema": {
                            "$ref": "#/definitions/api.VerifyCertificateResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Certificate not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Ledger unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the version and build information for the service",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Common"
                ],
                "summary": "Get version information",
                "responses": {
                    "200": {
                        "description": "Version information",
                        "schema": {
                            "$ref": "#/definitions/api.VersionResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {
                    "description": "Details holds the raw underlying error. It is only populated in dev and test environments.",
                    "type": "string",
                    "example": "execution reverted: CertificateHashAlreadyExists"
                },
                "error": {
                    "type": "string",
                    "example": "A certificate with this hash already exists"
                },
                "success": {
                    "type": "boolean",
                    "example": false
                }
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "collegeAddress": {
                    "type": "string",
                    "example": "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
                },
                "contractAddress": {
                    "type": "string",
                    "example": "0x5FbDB2315678afecb367f032d93F642f64180aa3"
                },
                "error": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "healthy"
                },
                "timestamp": {
                    "type": "string",
                    "example": "2024-05-31T16:08:37.000Z"
                },
                "totalCertificates": {
                    "type": "string",
                    "example": "3"
                }
            }
        },
        "api.IssueCertificateRequest": {
            "type": "object",
            "properties": {
                "certificateHash": {
                    "type": "string",
                    "example": "0x9c22ff5f21f0b81b113e63f7db6da94fedef11b2119b4088b89664fb9a3cb658"
                },
                "metadataURI": {
                    "type": "string",
                    "example": "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
                },
                "studentIdentifier": {
                    "type": "string",
                    "example": "S123"
                }
            }
        },
        "api.IssueCertificateResponse": {
            "type": "object",
            "properties": {
                "blockNumber": {
                    "type": "integer",
                    "example": 42
                },
                "certificateId": {
                    "description": "CertificateID is null when the CertificateIssued event was not found in the receipt",
                    "type": "string",
                    "example": "7"
                },
                "eventData": {
                    "$ref": "#/definitions/certificate.IssuedEvent"
                },
                "gasUsed": {
                    "type": "string",
                    "example": "187523"
                },
                "issuer": {
                    "type": "string",
                    "example": "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
                },
                "success": {
                    "type": "boolean",
                    "example": true
                },
                "txHash": {
                    "type": "string",
                    "example": "0x4f1b0e3cb5a1c8e4b0f5d3f5a7c2e1d0b9a8f7e6d5c4b3a2918f7e6d5c4b3a29"
                }
            }
        },
        "api.RevokeCertificateRequest": {
            "type": "object",
            "properties": {
                "certificateId": {
                    "type": "string",
                    "example": "7"
                }
            }
        },
        "api.RevokeCertificateResponse": {
            "type": "object",
            "properties": {
                "blockNumber": {
                    "type": "integer",
                    "example": 43
                },
                "eventData": {
                    "$ref": "#/definitions/certificate.RevokedEvent"
                },
                "gasUsed": {
                    "type": "string",
                    "example": "31245"
                },
                "success": {
                    "type": "boolean",
                    "example": true
                },
                "txHash": {
                    "type": "string",
                    "example": "0x4f1b0e3cb5a1c8e4b0f5d3f5a7c2e1d0b9a8f7e6d5c4b3a2918f7e6d5c4b3a29"
                }
            }
        },
        "api.VerifyCertificateResponse": {
            "type": "object",
            "properties": {
                "certificate": {
                    "$ref": "#/definitions/certificate.Certificate"
                },
                "success": {
                    "type": "boolean",
                    "example": true
                }
            }
        },
        "api.VersionResponse": {
            "type": "object",
            "properties": {
                "build_time": {
                    "type": "string",
                    "example": "2024-01-28T10:00:00Z"
                },
                "service": {
                    "type": "string",
                    "example": "certgw-server"
                },
                "version": {
                    "type": "string",
                    "example": "1.0.0"
                }
            }
        },
        "certificate.Certificate": {
            "type": "object",
            "properties": {
                "certificateHash": {
                    "type": "string",
                    "example": "0x9c22ff5f21f0b81b113e63f7db6da94fedef11b2119b4088b89664fb9a3cb658"
                },
                "certificateId": {
                    "type": "string",
                    "example": "7"
                },
                "issuedAt": {
                    "description": "IssuedAt is the ledger timestamp in seconds since the epoch",
                    "type": "string",
                    "example": "1717171717"
                },
                "issuedAtDate": {
                    "description": "IssuedAtDate is IssuedAt formatted as an ISO-8601 UTC date",
                    "type": "string",
                    "example": "2024-05-31T16:08:37.000Z"
                },
                "metadataURI": {
                    "type": "string",
                    "example": "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
                },
                "revoked": {
                    "type": "boolean",
                    "example": false
                },
                "studentIdentifier": {
                    "type": "string",
                    "example": "S123"
                }
            }
        },
        "certificate.IssuedEvent": {
            "type": "object",
            "properties": {
                "certificateHash": {
                    "type": "string"
                },
                "certificateId": {
                    "type": "string"
                },
                "issuedAt": {
                    "type": "string"
                },
                "metadataURI": {
                    "type": "string"
                },
                "studentIdentifier": {
                    "type": "string"
                }
            }
        },
        "certificate.RevokedEvent": {
            "type": "object",
            "properties": {
                "certificateId": {
                    "type": "string"
                },
                "revokedAt": {
                    "type": "string"
                }
            }
        }
    },
    "tags": [
        {
            "description": "Issue, verify and revoke certificates",
            "name": "Certificates"
        },
        {
            "description": "Server API endpoints (api description, health, version)",
            "name": "Common"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "certgw-server",
	Description:      "certgw-server is an HTTP gateway to a certificate registry smart contract.\nIt issues, verifies and revokes academic certificates recorded on an EVM ledger.\n\n## Common Error Responses\nAll endpoints may return:\n- `413` Request body exceeds size limit\n- `429` Rate limit exceeded\n- `500` Ledger or infrastructure failure\n\nError bodies have the form `{\"success\": false, \"error\": \"...\", \"details\": \"...\"}`.\n`details` carries the raw ledger message and is only included outside production.\n\n## Transactions\nIssue and revoke requests wait until the transaction is mined before responding.\nA transaction that times out waiting for confirmation may still be mined later; it is not retried.\n\n## Authentication & Authorization\nThe gateway does not authenticate callers. All transactions are signed with the single\ncollege identity configured on the server, and it is expected to run behind an authenticating proxy.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
