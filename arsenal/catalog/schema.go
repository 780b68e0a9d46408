package catalog

import "barrage/server/arsenal/contract"

// FileDefinitions models the JSON contract for designer-authored weapon
// files: an array of full weapon definitions. It is shared with the schema
// generator so validation and editor tooling stay in sync with the Go types.
type FileDefinitions []contract.Definition
