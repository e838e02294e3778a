// Package metadata loads externally produced image metadata and indexes it by path.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"imagefilter/database"
	"imagefilter/types"
)

// Format is the on-disk encoding of a metadata file
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// metasSchema only pins down what the filter needs: an array of objects with a path
const metasSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["path"],
		"properties": {
			"path": {"type": "string", "minLength": 1}
		}
	}
}`

// maxReportedErrors caps how many schema violations end up in the error message
const maxReportedErrors = 3

// DetectFormat picks the format from the file extension. Unknown extensions are read as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Load reads every record from the metadata file at path.
// Any failure to read or parse is returned as an error; records are never skipped.
func Load(path string) ([]types.ImageMeta, error) {
	switch DetectFormat(path) {
	case FormatSQLite:
		return loadSQLite(path)
	case FormatYAML:
		return loadYAML(path)
	default:
		return loadJSON(path)
	}
}

func loadJSON(path string) ([]types.ImageMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(metasSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for i, e := range result.Errors() {
			if i == maxReportedErrors {
				msgs = append(msgs, fmt.Sprintf("and %d more", len(result.Errors())-i))
				break
			}
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return fromMaps(raw)
}

func loadYAML(path string) ([]types.ImageMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	// an empty or null document leaves raw nil; "[]" decodes to an empty list
	if raw == nil {
		return nil, fmt.Errorf("invalid YAML: expected a list of records")
	}
	return fromMaps(raw)
}

func loadSQLite(path string) ([]types.ImageMeta, error) {
	db, err := database.OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return database.LoadImageMetas(db)
}

func fromMaps(raw []map[string]any) ([]types.ImageMeta, error) {
	metas := make([]types.ImageMeta, 0, len(raw))
	for i, m := range raw {
		meta, err := fromMap(m)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

func fromMap(m map[string]any) (types.ImageMeta, error) {
	var meta types.ImageMeta

	path, ok := m["path"].(string)
	if !ok || path == "" {
		return meta, fmt.Errorf("path must be a non-empty string")
	}
	meta.Path = path
	meta.Score, meta.HasScore = scoreValue(m["score"])

	for k, v := range m {
		if k == "path" || k == "score" {
			continue
		}
		if meta.Fields == nil {
			meta.Fields = make(map[string]any)
		}
		meta.Fields[k] = v
	}
	return meta, nil
}

func scoreValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
