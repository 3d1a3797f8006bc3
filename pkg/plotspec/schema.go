package plotspec

// FigureSchema is the JSON Schema for figure descriptors
const FigureSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "anyOf": [
    { "required": ["series"] },
    { "required": ["functions"] },
    { "required": ["histogram"] }
  ],
  "properties": {
    "title": { "type": "string" },
    "xlabel": { "type": "string" },
    "ylabel": { "type": "string" },
    "terminal": { "type": "string", "minLength": 1 },
    "output": { "type": "string", "minLength": 1 },
    "commands": {
      "type": "array",
      "items": { "type": "string", "minLength": 1 }
    },
    "series": {
      "type": "array",
      "minItems": 1,
      "items": { "$ref": "#/definitions/series" }
    },
    "functions": {
      "type": "object",
      "required": ["range", "plots"],
      "additionalProperties": false,
      "properties": {
        "range": {
          "type": "object",
          "required": ["low", "high", "step"],
          "additionalProperties": false,
          "properties": {
            "low": { "type": "number" },
            "high": { "type": "number" },
            "step": { "type": "number", "exclusiveMinimum": 0 }
          }
        },
        "plots": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["name"],
            "additionalProperties": false,
            "properties": {
              "name": { "type": "string", "pattern": "^[a-z]+$" },
              "title": { "type": "string" },
              "style": { "type": "string" }
            }
          }
        }
      }
    },
    "histogram": {
      "type": "object",
      "required": ["labels", "clusters"],
      "additionalProperties": false,
      "properties": {
        "histogram_style": { "type": "string" },
        "bar_style": { "type": "string" },
        "labels": {
          "type": "array",
          "minItems": 1,
          "items": { "type": "number" }
        },
        "clusters": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["values"],
            "additionalProperties": false,
            "properties": {
              "title": { "type": "string" },
              "values": {
                "type": "array",
                "minItems": 1,
                "items": { "type": "number" }
              }
            }
          }
        }
      }
    }
  },
  "definitions": {
    "series": {
      "type": "object",
      "additionalProperties": false,
      "oneOf": [
        { "required": ["x", "y"], "not": { "required": ["file"] } },
        { "required": ["file"], "not": { "anyOf": [{ "required": ["x"] }, { "required": ["y"] }] } }
      ],
      "properties": {
        "title": { "type": "string" },
        "style": { "type": "string" },
        "x": { "type": "array", "minItems": 1, "items": { "type": "number" } },
        "y": { "type": "array", "minItems": 1, "items": { "type": "number" } },
        "file": { "type": "string", "minLength": 1 },
        "columns": {
          "type": "array",
          "minItems": 1,
          "maxItems": 2,
          "items": { "type": "integer", "minimum": 1 }
        }
      }
    }
  }
}`
