package appmeta

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// appSchema pins down the shape of a metadata record before it is
// written to disk, so a bug upstream (a scraped address leaking into
// the wrong field, a build without versions) fails loudly here instead
// of producing a silently broken record.
const appSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["RepoType", "Repo"],
  "properties": {
    "AutoName": {"type": "string"},
    "Categories": {"type": "array", "items": {"type": "string"}},
    "License": {"type": "string"},
    "WebSite": {"type": "string"},
    "SourceCode": {"type": "string"},
    "IssueTracker": {"type": "string"},
    "RepoType": {"type": "string", "enum": ["git", "hg", "bzr"]},
    "Repo": {"type": "string", "minLength": 1, "pattern": "^\\S+$"},
    "UpdateCheckMode": {"type": "string"},
    "Builds": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["versionName", "versionCode"],
        "properties": {
          "versionName": {"type": "string", "minLength": 1},
          "versionCode": {"type": "string", "minLength": 1},
          "commit": {"type": "string"},
          "subdir": {"type": "string"},
          "gradle": {"type": "boolean"},
          "buildjni": {"type": "boolean"},
          "disable": {"type": "string"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(appSchema)

// Validate checks the record against the metadata schema.
func (a *App) Validate() error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(a))
	if err != nil {
		return fmt.Errorf("validating metadata: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var reasons []string
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}
	return fmt.Errorf("metadata record is invalid: %s", strings.Join(reasons, "; "))
}
