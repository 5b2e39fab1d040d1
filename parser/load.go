package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v4"
)

// SourceFormat represents the format of the source OpenAPI specification file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// JSON typically starts with '{' or '[', while YAML does not.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// LoadResult contains a loaded document and its source metadata.
type LoadResult struct {
	// Document is the decoded document
	Document *Document
	// SourcePath is the file path the document was read from (empty for Load)
	SourcePath string
	// SourceFormat is the detected input format
	SourceFormat SourceFormat
}

// Load decodes an OpenAPI document from raw YAML or JSON bytes.
// The format is sniffed from the content. $ref pointers are not resolved;
// documents are expected to be pre-resolved by the caller's loader.
func Load(data []byte) (*LoadResult, error) {
	return load(data, "", detectFormatFromContent(data))
}

// LoadFile reads and decodes an OpenAPI document from a local file.
// The format is detected from the file extension, falling back to content
// sniffing for unrecognized extensions.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read %s: %w", path, err)
	}
	format := detectFormatFromPath(path)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	return load(data, path, format)
}

func load(data []byte, path string, format SourceFormat) (*LoadResult, error) {
	var raw map[string]any
	switch format {
	case SourceFormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parser: failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parser: failed to parse YAML: %w", err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("parser: empty document")
	}

	doc := &Document{}
	doc.decodeFromMap(raw)

	return &LoadResult{
		Document:     doc,
		SourcePath:   path,
		SourceFormat: format,
	}, nil
}
