// Package config loads and validates verso.json project configuration.
//
// A minimal verso.json:
//
//	{
//	  "name": "my-app",
//	  "baseUrl": "http://localhost:8080"
//	}
//
// All other fields have defaults. Load applies them and Validate reports
// structured errors (internal/errors codes E200-E299) with suggestions.
package config
