// Package docs holds the Swagger description of the bizchess API.
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
        "/board/initialize": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["board"],
                "summary": "Build the opening board for a market",
                "parameters": [
                    {"description": "market data", "name": "market", "in": "body", "required": true, "schema": {"$ref": "#/definitions/board.MarketData"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/board.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        },
        "/analysis/bestMove": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Search the best COMPANY move",
                "parameters": [
                    {"description": "position and depth", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/analysis.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analysis.Analysis"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}},
                    "422": {"description": "No legal moves", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        },
        "/analysis/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Run several independent searches",
                "parameters": [
                    {"description": "requests", "name": "batch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/analysis.BatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/analysis.BatchItem"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        },
        "/analysis/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Fetch a stored analysis",
                "parameters": [
                    {"type": "string", "description": "analysis id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analysis.Analysis"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        },
        "/analysis/{id}/report": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["analysis"],
                "summary": "Download an analysis as PDF",
                "parameters": [
                    {"type": "string", "description": "analysis id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF document", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "List the analyses of a session, newest first",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "page number starting at 1", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analysis.HistoryPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        },
        "/play/start": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["play"],
                "summary": "Start a game against the engine",
                "parameters": [
                    {"description": "market and depth", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/play.StartRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/play.Session"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        },
        "/play/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["play"],
                "summary": "Fetch a play session",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/play.Session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        },
        "/play/ws": {
            "get": {
                "tags": ["play"],
                "summary": "Play moves over a websocket",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "session_id", "in": "query", "required": true}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpresponse.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "board.Position": {
            "type": "object",
            "properties": {"x": {"type": "integer"}, "y": {"type": "integer"}}
        },
        "board.Rival": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "market_share": {"type": "number"}, "attributes": {"type": "object"}}
        },
        "board.MarketData": {
            "type": "object",
            "properties": {
                "competitors": {"type": "array", "items": {"$ref": "#/definitions/board.Rival"}},
                "conditions": {"type": "object"},
                "landscape": {"type": "object"}
            }
        },
        "board.PieceView": {
            "type": "object",
            "properties": {
                "archetype": {"type": "string"},
                "side": {"type": "string"},
                "position": {"$ref": "#/definitions/board.Position"},
                "value": {"type": "integer"},
                "influence_radius": {"type": "integer"},
                "strategic_weight": {"type": "number"}
            }
        },
        "board.Snapshot": {
            "type": "object",
            "properties": {
                "board": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/board.PieceView"}}},
                "pieces": {"type": "array", "items": {"$ref": "#/definitions/board.PieceView"}},
                "turn": {"type": "string"},
                "ply": {"type": "integer"},
                "market_conditions": {"type": "object"},
                "competitive_landscape": {"type": "object"}
            }
        },
        "board.MoveView": {
            "type": "object",
            "properties": {
                "piece": {"type": "string"},
                "side": {"type": "string"},
                "from": {"$ref": "#/definitions/board.Position"},
                "to": {"$ref": "#/definitions/board.Position"},
                "captured": {"type": "string"},
                "strategic_value": {"type": "number"},
                "risk_score": {"type": "number"},
                "expected_return": {"type": "number"}
            }
        },
        "analysis.Request": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "market_data": {"$ref": "#/definitions/board.MarketData"},
                "board_state": {"$ref": "#/definitions/board.Snapshot"},
                "depth": {"type": "integer"}
            }
        },
        "analysis.BatchRequest": {
            "type": "object",
            "properties": {"requests": {"type": "array", "items": {"$ref": "#/definitions/analysis.Request"}}}
        },
        "analysis.Result": {
            "type": "object",
            "properties": {
                "move": {"$ref": "#/definitions/board.MoveView"},
                "score": {"type": "number"},
                "depth": {"type": "integer"},
                "evaluation": {"type": "object"},
                "stats": {"type": "object"},
                "elapsed_ms": {"type": "integer"},
                "fallback": {"type": "boolean"},
                "timed_out": {"type": "boolean"}
            }
        },
        "analysis.Analysis": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "session_id": {"type": "string"},
                "position_key": {"type": "string"},
                "board_state": {"$ref": "#/definitions/board.Snapshot"},
                "result": {"$ref": "#/definitions/analysis.Result"},
                "cached": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "analysis.BatchItem": {
            "type": "object",
            "properties": {"analysis": {"$ref": "#/definitions/analysis.Analysis"}, "error": {"type": "string"}}
        },
        "analysis.HistoryPage": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "page": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/analysis.Analysis"}},
                "has_more": {"type": "boolean"}
            }
        },
        "play.StartRequest": {
            "type": "object",
            "properties": {"market_data": {"$ref": "#/definitions/board.MarketData"}, "depth": {"type": "integer"}}
        },
        "play.Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "depth": {"type": "integer"},
                "status": {"type": "string"},
                "winner": {"type": "string"},
                "board_state": {"$ref": "#/definitions/board.Snapshot"},
                "moves": {"type": "array", "items": {"$ref": "#/definitions/board.MoveView"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "httpresponse.ErrorResponse": {
            "type": "object",
            "properties": {"ErrorDescription": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "bizchess API",
	Description:      "Best-move search for business strategy positions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
