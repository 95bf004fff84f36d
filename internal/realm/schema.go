package realm

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The payload schema is the first line of defense against malformed
// external input: it pins field names, nesting and primitive types
// before the invariant walk reasons about indices and cross-references.

//go:embed schemas/worldmap.schema.json
var worldMapSchemaJSON string

var payloadSchema = jsonschema.MustCompileString("worldmap.schema.json", worldMapSchemaJSON)
