// Package docs holds the OpenAPI document for the annotated handlers in
// internal/handlers. Regenerate with:
//
//	swag init -g cmd/ledger_backend/main.go -o cmd/docs --outputTypes go
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
        "/accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the whole chart of accounts ordered by code",
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List the chart of accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAccountsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to list accounts", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/accounts/{code}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Resolves a single hierarchical account code",
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get an account by code",
                "parameters": [
                    {"type": "string", "description": "Account code, e.g. 4.1.1", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Account not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sales/{saleID}/entries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every entry booked for a sale, reversals included, oldest first",
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "List the entries of a sale",
                "parameters": [
                    {"type": "string", "description": "Sale ID", "name": "saleID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SaleEntriesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to list sale entries", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Writes the revenue, consignment, fee, tax and cost entries of a finalized sale in one transaction",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Post the entries of a finalized sale",
                "parameters": [
                    {"type": "string", "description": "Sale ID", "name": "saleID", "in": "path", "required": true},
                    {"description": "Sale snapshot", "name": "sale", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PostSaleEntriesRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.PostSaleEntriesResponse"}},
                    "400": {"description": "Invalid sale snapshot", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Concurrent update, retry", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Chart of accounts not seeded or internal error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sales/{saleID}/reversal": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Mirrors every still-reversible entry of a sale. Repeating the call reports zero",
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Reverse the entries of a canceled sale",
                "parameters": [
                    {"type": "string", "description": "Sale ID", "name": "saleID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReverseSaleEntriesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Concurrent reversal, retry", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to reverse sale entries", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/entries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns one page of entries, newest first",
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "List journal entries",
                "parameters": [
                    {"type": "string", "description": "Filter by sale", "name": "saleID", "in": "query"},
                    {"enum": ["MANUAL", "SALE", "RECURRING_EXPENSE"], "type": "string", "description": "Filter by kind", "name": "kind", "in": "query"},
                    {"type": "string", "description": "Start date (YYYY-MM-DD)", "name": "fromDate", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "toDate", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListEntriesResponse"}},
                    "400": {"description": "Invalid query parameters", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/entries/{entryID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns an entry with its lines",
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Get a journal entry",
                "parameters": [
                    {"type": "string", "description": "Entry ID", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EntryResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Entry not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reports/dre": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Generates the income statement (DRE) for a period",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Generate the income statement",
                "parameters": [
                    {"type": "string", "description": "Start date (YYYY-MM-DD), open when omitted", "name": "fromDate", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "toDate", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.IncomeStatementResponse"}},
                    "400": {"description": "Invalid period", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to generate report", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reports/balance-sheet": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Generates a balance sheet as of a date",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Generate the balance sheet",
                "parameters": [
                    {"type": "string", "description": "Report date (YYYY-MM-DD)", "name": "asOf", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BalanceSheetResponse"}},
                    "400": {"description": "Invalid date", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to generate report", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reports/cash-flow": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Generates the cash-flow statement of the cash-equivalent accounts for a period",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Generate the cash-flow statement",
                "parameters": [
                    {"type": "string", "description": "Start date (YYYY-MM-DD), open when omitted", "name": "fromDate", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "toDate", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CashFlowResponse"}},
                    "400": {"description": "Invalid period", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to generate report", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reports/trial-balance": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Generates a trial balance report as of a specific date",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Generate trial balance report",
                "parameters": [
                    {"type": "string", "description": "Report date (YYYY-MM-DD)", "name": "asOf", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TrialBalanceResponse"}},
                    "400": {"description": "Invalid date", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to generate report", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reports/statement": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Builds the statement named by kind. Point-in-time statements use toDate",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Generate a statement by kind",
                "parameters": [
                    {"enum": ["DRE", "BALANCE_SHEET", "CASH_FLOW"], "type": "string", "description": "Statement kind", "name": "kind", "in": "query", "required": true},
                    {"type": "string", "description": "Start date (YYYY-MM-DD)", "name": "fromDate", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "toDate", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatementResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to generate statement", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tax/rolling-revenue": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Sums the taxable revenue of the twelve calendar months before the month of date",
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "Compute the trailing twelve-month revenue (RBT12)",
                "parameters": [
                    {"type": "string", "description": "Reference date (YYYY-MM-DD)", "name": "date", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RollingRevenueResponse"}},
                    "400": {"description": "Invalid date", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to compute rolling revenue", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tax/effective-rate": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Applies the bracket table to an RBT12 and, when given, a taxable base",
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "Preview the effective tax rate",
                "parameters": [
                    {"type": "string", "description": "Trailing twelve-month revenue", "name": "rbt12", "in": "query"},
                    {"type": "string", "description": "Taxable base", "name": "base", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TaxPreviewResponse"}},
                    "400": {"description": "Invalid amounts", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "accountID": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "nature": {"type": "string", "enum": ["DEBIT", "CREDIT"]},
                "category": {"type": "string", "enum": ["ASSET", "LIABILITY", "EQUITY", "REVENUE", "EXPENSE", "COST"]},
                "isActive": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "lastUpdatedAt": {"type": "string"},
                "lastUpdatedBy": {"type": "string"}
            }
        },
        "dto.ListAccountsResponse": {
            "type": "object",
            "properties": {"accounts": {"type": "array", "items": {"$ref": "#/definitions/dto.AccountResponse"}}}
        },
        "dto.PostSaleEntriesRequest": {
            "type": "object",
            "required": ["saleDate", "amount", "paymentMethod", "acquisitionType"],
            "properties": {
                "saleDate": {"type": "string", "example": "2025-03-15"},
                "amount": {"type": "string", "example": "1000.00"},
                "paymentMethod": {"type": "string", "enum": ["CASH", "PIX", "DEBIT_CARD", "CREDIT_CARD"]},
                "cardFeeRate": {"type": "string", "example": "4"},
                "acquisitionType": {"type": "string", "enum": ["OWNED", "CONSIGNED"]},
                "supplierPayout": {"type": "string", "example": "600.00"},
                "acquisitionCost": {"type": "string", "example": "300.00"},
                "maintenanceCost": {"type": "string", "example": "50.00"},
                "acquisitionChannel": {"type": "string", "enum": ["AUCTION", "MARKETPLACE", "INDIVIDUAL_SELLER"]}
            }
        },
        "dto.PostSaleEntriesResponse": {
            "type": "object",
            "properties": {
                "saleID": {"type": "string"},
                "entryIDs": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.ReverseSaleEntriesResponse": {
            "type": "object",
            "properties": {
                "saleID": {"type": "string"},
                "reversedCount": {"type": "integer"}
            }
        },
        "dto.EntryLineResponse": {
            "type": "object",
            "properties": {
                "lineID": {"type": "string"},
                "debitAccountID": {"type": "string"},
                "creditAccountID": {"type": "string"},
                "amount": {"type": "string"},
                "memo": {"type": "string"}
            }
        },
        "dto.EntryResponse": {
            "type": "object",
            "properties": {
                "entryID": {"type": "string"},
                "entryDate": {"type": "string"},
                "description": {"type": "string"},
                "kind": {"type": "string", "enum": ["MANUAL", "SALE", "RECURRING_EXPENSE"]},
                "saleID": {"type": "string"},
                "reversalOfID": {"type": "string"},
                "reversed": {"type": "boolean"},
                "reversedAt": {"type": "string"},
                "reversedBy": {"type": "string"},
                "total": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.EntryLineResponse"}},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"}
            }
        },
        "dto.ListEntriesResponse": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/dto.EntryResponse"}},
                "nextToken": {"type": "string"}
            }
        },
        "dto.SaleEntriesResponse": {
            "type": "object",
            "properties": {
                "saleID": {"type": "string"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/dto.EntryResponse"}}
            }
        },
        "dto.IncomeStatementResponse": {
            "type": "object",
            "properties": {
                "fromDate": {"type": "string"},
                "toDate": {"type": "string"},
                "rows": {"type": "array", "items": {"type": "object"}}
            }
        },
        "dto.BalanceSheetResponse": {
            "type": "object",
            "properties": {
                "asOf": {"type": "string"},
                "assets": {"type": "array", "items": {"type": "object"}},
                "liabilities": {"type": "array", "items": {"type": "object"}},
                "equity": {"type": "array", "items": {"type": "object"}},
                "summary": {"type": "object"}
            }
        },
        "dto.CashFlowResponse": {
            "type": "object",
            "properties": {
                "fromDate": {"type": "string"},
                "toDate": {"type": "string"},
                "openingBalance": {"type": "string"},
                "lines": {"type": "array", "items": {"type": "object"}},
                "byActivity": {"type": "object"},
                "totalInflow": {"type": "string"},
                "totalOutflow": {"type": "string"},
                "netChange": {"type": "string"},
                "closingBalance": {"type": "string"}
            }
        },
        "dto.TrialBalanceResponse": {
            "type": "object",
            "properties": {
                "asOf": {"type": "string"},
                "rows": {"type": "array", "items": {"type": "object"}},
                "totals": {"type": "object"}
            }
        },
        "dto.StatementResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["DRE", "BALANCE_SHEET", "CASH_FLOW"]},
                "incomeStatement": {"$ref": "#/definitions/dto.IncomeStatementResponse"},
                "balanceSheet": {"$ref": "#/definitions/dto.BalanceSheetResponse"},
                "cashFlow": {"$ref": "#/definitions/dto.CashFlowResponse"}
            }
        },
        "dto.RollingRevenueResponse": {
            "type": "object",
            "properties": {
                "referenceDate": {"type": "string"},
                "windowStart": {"type": "string"},
                "windowEnd": {"type": "string"},
                "rbt12": {"type": "string"}
            }
        },
        "dto.TaxPreviewResponse": {
            "type": "object",
            "properties": {
                "rbt12": {"type": "string"},
                "bracket": {"type": "integer"},
                "effectiveRate": {"type": "string"},
                "base": {"type": "string"},
                "amount": {"type": "string"},
                "aboveTopBracket": {"type": "boolean"}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Resale Ledger API",
	Description:      "Accounting core of a resale shop: automatic sale postings, reversals, revenue tax and financial statements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
