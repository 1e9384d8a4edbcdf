package config

import "encoding/json"

var configSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["supla"],
	"properties": {
		"supla": {
			"type": "object",
			"required": ["servers"],
			"properties": {
				"servers": {
					"oneOf": [
						{"$ref": "#/$defs/server"},
						{"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/server"}}
					]
				}
			},
			"additionalProperties": false
		}
	},
	"$defs": {
		"server": {
			"type": "object",
			"required": ["server", "access_token"],
			"properties": {
				"server": {"type": "string", "minLength": 1},
				"access_token": {"type": "string", "minLength": 1},
				"scan_interval": {
					"oneOf": [
						{"type": "number", "minimum": 0},
						{"type": "string", "minLength": 1}
					]
				}
			},
			"additionalProperties": false
		}
	}
}`)
