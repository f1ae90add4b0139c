package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty and decoration becomes a no-op.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{operations: make(map[string]Operation)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for opID, raw := range doc.Operations {
			id := strings.TrimSpace(opID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty operation id", path)
			}
			if _, exists := store.operations[id]; exists {
				return fmt.Errorf("uischema: duplicate operation %q (file %s)", id, path)
			}

			op, err := normaliseOperation(raw, id, path)
			if err != nil {
				return err
			}
			store.operations[id] = op
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

type documentFile struct {
	Operations map[string]operationFile `json:"operations" yaml:"operations"`
}

type operationFile struct {
	Form   FormConfig             `json:"form" yaml:"form"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normaliseOperation(raw operationFile, id, source string) (Operation, error) {
	op := Operation{
		ID:     id,
		Source: source,
		Form:   raw.Form,
		Fields: make(map[string]FieldConfig, len(raw.Fields)),
	}

	for key, cfg := range raw.Fields {
		name := strings.TrimSpace(key)
		if name == "" {
			return Operation{}, fmt.Errorf("uischema: operation %q (file %s) defines an empty field key", id, source)
		}
		if _, exists := op.Fields[name]; exists {
			return Operation{}, fmt.Errorf("uischema: operation %q (file %s) defines duplicate field %q", id, source, name)
		}
		cloned := cloneFieldConfig(cfg)
		cloned.OriginalKey = key
		op.Fields[name] = cloned
	}

	return op, nil
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	if cfg.Order != nil {
		order := *cfg.Order
		out.Order = &order
	}
	if len(cfg.Messages) > 0 {
		out.Messages = make(map[string]string, len(cfg.Messages))
		for k, v := range cfg.Messages {
			out.Messages[k] = v
		}
	}
	if len(cfg.Metadata) > 0 {
		out.Metadata = make(map[string]string, len(cfg.Metadata))
		for k, v := range cfg.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
