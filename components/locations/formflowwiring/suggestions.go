package formflowwiring

import (
	"strconv"

	"github.com/goliatone/go-formflow/components/locations"
	"github.com/goliatone/go-formflow/pkg/model"
)

// SuggestionsMetadataKey is the field metadata key renderers read to find
// the suggestion endpoint for a text input.
const SuggestionsMetadataKey = "suggestionsURL"

// SuggestionsDecorator returns a form-model decorator that points the named
// fields of one operation at the locations endpoint, using the component
// defaults (and any provided overrides).
//
// The stamped URL carries the configured limit parameter; clients append the
// search parameter as the user types.
func SuggestionsDecorator(operationID, basePath string, fieldNames []string, fns ...locations.OptionFn) model.Decorator {
	opts := locations.NewOptions(fns...)
	url := locations.MountPath(basePath, func(o *locations.Options) {
		if o == nil {
			return
		}
		*o = opts
	}) + "?" + opts.LimitParam + "=" + strconv.Itoa(opts.DefaultLimit)

	return model.DecoratorFunc(func(form *model.FormModel) error {
		if form == nil || form.OperationID != operationID {
			return nil
		}
		for _, name := range fieldNames {
			field := form.FieldByName(name)
			if field == nil {
				continue
			}
			if field.Metadata == nil {
				field.Metadata = map[string]string{}
			}
			field.Metadata[SuggestionsMetadataKey] = url
		}
		return nil
	})
}
