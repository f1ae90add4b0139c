package fare

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// tableDocument is the on-disk shape of a pricing table. Pointer fields
// distinguish "absent" from zero so documents can omit the surcharge and
// inherit the default.
type tableDocument struct {
	Currency  string          `json:"currency" yaml:"currency"`
	Surcharge *int            `json:"surcharge" yaml:"surcharge"`
	Services  []entryDocument `json:"services" yaml:"services"`
}

type entryDocument struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Base  *int   `json:"base" yaml:"base"`
}

// LoadFS reads a pricing table from a filesystem entry. The document may be
// JSON or YAML; both are attempted, mirroring how the UI schema loader
// treats its documents.
func LoadFS(fsys fs.FS, name string) (Table, error) {
	if fsys == nil {
		return Table{}, fmt.Errorf("fare: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Table{}, fmt.Errorf("fare: read %s: %w", name, err)
	}
	return ParseTable(data, name)
}

// ParseTable decodes and validates a pricing table document. The source name
// only feeds error messages.
func ParseTable(data []byte, source string) (Table, error) {
	doc, err := decodeTable(data)
	if err != nil {
		return Table{}, fmt.Errorf("fare: parse %s: %w", source, err)
	}

	table := Table{
		Currency:  doc.Currency,
		Surcharge: DefaultSurcharge,
	}
	if doc.Surcharge != nil {
		table.Surcharge = *doc.Surcharge
	}
	if table.Currency == "" {
		table.Currency = DefaultCurrency
	}

	for i, entry := range doc.Services {
		if entry.Base == nil {
			return Table{}, fmt.Errorf("fare: parse %s: service %d: base price is required", source, i)
		}
		label := entry.Label
		if label == "" {
			label = entry.Key
		}
		table.Entries = append(table.Entries, Entry{
			Key:   Service(entry.Key),
			Label: label,
			Base:  *entry.Base,
		})
	}

	if err := table.Validate(); err != nil {
		return Table{}, fmt.Errorf("fare: parse %s: %w", source, err)
	}
	return table, nil
}

func decodeTable(data []byte) (tableDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return tableDocument{}, fmt.Errorf("document is empty")
	}

	var doc tableDocument
	if jsonErr := json.Unmarshal(trimmed, &doc); jsonErr == nil {
		return doc, nil
	}
	if yamlErr := yaml.Unmarshal(trimmed, &doc); yamlErr == nil {
		return doc, nil
	}
	return tableDocument{}, fmt.Errorf("invalid JSON or YAML")
}
