package render

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Renderer converts a FormModel plus per-request state into a byte
// representation (HTML, terminal output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, model model.FormModel, options RenderOptions) ([]byte, error)
}
