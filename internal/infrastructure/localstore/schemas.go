package localstore

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Claves del almacenamiento local.
const (
	KeyFavorites = "favorites"
	KeySession   = "session"
)

const favoritesSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {"type": "string", "minLength": 1}
}`

const sessionSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["isLoggedIn"],
  "properties": {
    "isLoggedIn": {"type": "boolean"},
    "userName": {"type": ["string", "null"]},
    "email": {"type": ["string", "null"]}
  }
}`

var (
	favoritesSchema = jsonschema.MustCompileString("favorites.json", favoritesSchemaJSON)
	sessionSchema   = jsonschema.MustCompileString("session.json", sessionSchemaJSON)
)

// validate decodifica raw de forma genérica y lo valida contra schema.
func validate(schema *jsonschema.Schema, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: JSON inválido: %v", ErrCorrupt, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}
