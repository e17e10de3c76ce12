package render

import (
	"context"

	"github.com/goliatone/go-metaform/pkg/model"
)

// Renderer converts normalized descriptors plus per-request state into a byte
// representation (HTML, terminal transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
}
