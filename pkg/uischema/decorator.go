package uischema

import (
	"fmt"
	"sort"

	pkgmodel "github.com/goliatone/go-formflow/pkg/model"
)

const (
	subtitleMetadataKey     = "subtitle"
	submitLabelMetadataKey  = "submitLabel"
	successTitleMetadataKey = "successTitle"
	successBodyMetadataKey  = "successBody"
	widgetMetadataKey       = "widget"
)

// Decorator applies overlay copy to a form model.
type Decorator struct {
	store *Store
}

var _ pkgmodel.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the supplied form model with overlay copy. When no
// matching operation is found the form is left untouched. Overlay values win
// over whatever the builder derived from the OpenAPI document.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store == nil || d.store.Empty() || form == nil {
		return nil
	}

	op, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}

	applyFormConfig(form, op)
	return applyFieldConfig(form, op)
}

func applyFormConfig(form *pkgmodel.FormModel, op Operation) {
	form.Metadata = mergeStringMap(form.Metadata, op.Form.Metadata)

	if op.Form.Title != "" {
		form.Title = op.Form.Title
	}
	if op.Form.Subtitle != "" {
		form.Metadata = ensureMetadata(form.Metadata)
		form.Metadata[subtitleMetadataKey] = op.Form.Subtitle
	}
	if op.Form.SubmitLabel != "" {
		form.Metadata = ensureMetadata(form.Metadata)
		form.Metadata[submitLabelMetadataKey] = op.Form.SubmitLabel
	}
	if op.Form.SuccessTitle != "" {
		form.Metadata = ensureMetadata(form.Metadata)
		form.Metadata[successTitleMetadataKey] = op.Form.SuccessTitle
	}
	if op.Form.SuccessBody != "" {
		form.Metadata = ensureMetadata(form.Metadata)
		form.Metadata[successBodyMetadataKey] = op.Form.SuccessBody
	}
}

func applyFieldConfig(form *pkgmodel.FormModel, op Operation) error {
	refs := make(map[string]*pkgmodel.Field, len(form.Fields))
	originalOrder := make(map[string]int, len(form.Fields))
	for idx := range form.Fields {
		refs[form.Fields[idx].Name] = &form.Fields[idx]
		originalOrder[form.Fields[idx].Name] = idx
	}

	explicitOrders := make(map[string]int, len(op.Fields))

	for name, cfg := range op.Fields {
		field, ok := refs[name]
		if !ok {
			return fmt.Errorf("uischema: operation %q (file %s) references unknown field %q", op.ID, op.Source, cfg.OriginalKey)
		}

		if cfg.Order != nil {
			explicitOrders[name] = *cfg.Order
		}
		applyFieldCopy(field, cfg)
	}

	reorderFields(form.Fields, explicitOrders, originalOrder)
	return nil
}

func applyFieldCopy(field *pkgmodel.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.HelpText != "" {
		field.Help = cfg.HelpText
	}
	if cfg.Widget != "" {
		field.Metadata = ensureMetadata(field.Metadata)
		field.Metadata[widgetMetadataKey] = cfg.Widget
	}
	if len(cfg.Messages) > 0 {
		if field.Messages == nil {
			field.Messages = make(map[string]string, len(cfg.Messages))
		}
		for key, value := range cfg.Messages {
			field.Messages[key] = value
		}
	}
	if len(cfg.Metadata) > 0 {
		field.Metadata = ensureMetadata(field.Metadata)
		for key, value := range cfg.Metadata {
			field.Metadata[key] = value
		}
	}
}

// reorderFields sorts fields carrying an explicit order ahead of the rest.
// Fields without one keep the builder's order, which makes partial overlays
// predictable.
func reorderFields(fields []pkgmodel.Field, explicit, originals map[string]int) {
	if len(explicit) == 0 {
		return
	}
	sort.SliceStable(fields, func(i, j int) bool {
		orderI, hasI := explicit[fields[i].Name]
		orderJ, hasJ := explicit[fields[j].Name]
		switch {
		case hasI && hasJ:
			if orderI != orderJ {
				return orderI < orderJ
			}
			return originals[fields[i].Name] < originals[fields[j].Name]
		case hasI:
			return true
		case hasJ:
			return false
		default:
			return originals[fields[i].Name] < originals[fields[j].Name]
		}
	})
}

func ensureMetadata(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	dst = ensureMetadata(dst)
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
