package orchestrator

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/model"
)

const optionsMetadataKey = "options"

// ServiceOptionsDecorator populates a service selection field from a fare
// estimator's pricing table: the accepted values come from the table keys and
// the display labels from the table entries. Forms without the field are left
// untouched, so the decorator is safe to run against every operation.
type ServiceOptionsDecorator struct {
	estimator *fare.Estimator
	field     string
}

var _ model.Decorator = (*ServiceOptionsDecorator)(nil)

// NewServiceOptionsDecorator builds the decorator for the named field.
func NewServiceOptionsDecorator(estimator *fare.Estimator, field string) *ServiceOptionsDecorator {
	return &ServiceOptionsDecorator{estimator: estimator, field: field}
}

// Decorate injects the service options. The label map is stored as JSON in
// the field metadata under "options", where renderers pick it up.
func (d *ServiceOptionsDecorator) Decorate(form *model.FormModel) error {
	if d == nil || d.estimator == nil || form == nil {
		return nil
	}

	field := form.FieldByName(d.field)
	if field == nil {
		return nil
	}

	services := d.estimator.Services()
	enum := make([]string, 0, len(services))
	labels := make(map[string]string, len(services))
	for _, service := range services {
		key := string(service)
		enum = append(enum, key)
		labels[key] = d.estimator.Label(key)
	}

	encoded, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("orchestrator: encode service options: %w", err)
	}

	field.Enum = enum
	if field.Metadata == nil {
		field.Metadata = make(map[string]string, 1)
	}
	field.Metadata[optionsMetadataKey] = string(encoded)
	return nil
}
