// Package docs is generated by swaggo/swag from the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/recommend": {
            "post": {
                "description": "Match a song and artist in the catalog and return its nearest neighbours",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Recommend"],
                "summary": "Recommend similar tracks",
                "parameters": [
                    {
                        "description": "Song and artist",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/recommend.RecommendRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recommend.RecommendResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/modes": {
            "get": {
                "description": "List the feature sets recommendations can be computed with",
                "produces": ["application/json"],
                "tags": ["Recommend"],
                "summary": "List recommendation modes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/modes.ModesResponse"}}
                }
            }
        },
        "/mood": {
            "get": {
                "description": "Top tracks by standardized valence and energy",
                "produces": ["application/json"],
                "tags": ["Recommend"],
                "summary": "Happiest and saddest tracks",
                "parameters": [
                    {"type": "integer", "description": "Tracks per list (default 5)", "name": "n", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/mood.MoodResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "description": "The latest recommended tracks, oldest first",
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Recent recommendations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/history.HistoryResponse"}}
                }
            }
        }
    },
    "definitions": {
        "cochlea.Pair": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "artist": {"type": "string"}
            }
        },
        "cochlea.Track": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "artist": {"type": "string"},
                "genre": {"type": "string"},
                "distance": {"type": "number"},
                "links": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "recommend.RecommendRequest": {
            "type": "object",
            "properties": {
                "song": {"type": "string"},
                "artist": {"type": "string"},
                "mode": {"type": "string"},
                "links": {"type": "boolean"}
            }
        },
        "recommend.RecommendResponse": {
            "type": "object",
            "properties": {
                "mode": {"type": "string"},
                "match": {"$ref": "#/definitions/cochlea.Track"},
                "tracks": {"type": "array", "items": {"$ref": "#/definitions/cochlea.Track"}},
                "message": {"type": "string"}
            }
        },
        "modes.ModesResponse": {
            "type": "object",
            "properties": {
                "modes": {"type": "array", "items": {"type": "object"}}
            }
        },
        "mood.MoodResponse": {
            "type": "object",
            "properties": {
                "happy": {"type": "array", "items": {"$ref": "#/definitions/cochlea.Track"}},
                "sad": {"type": "array", "items": {"$ref": "#/definitions/cochlea.Track"}}
            }
        },
        "history.HistoryResponse": {
            "type": "object",
            "properties": {
                "tracks": {"type": "array", "items": {"$ref": "#/definitions/cochlea.Pair"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cochlea",
	Description:      "Content-based music recommendations over a track catalog",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
