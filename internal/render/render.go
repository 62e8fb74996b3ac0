// Package render turns a layout document into the still image the menu video
// loops. Pixel rendering belongs to an external canvas; the package defines
// the boundary and ships a renderer that uses the background as-is.
package render

import (
	"context"
	"fmt"
	"strings"

	"bdmenu/internal/fileutil"
	"bdmenu/internal/layout"
	"bdmenu/internal/services"
)

// Renderer rasterizes doc into an image at dest.
type Renderer interface {
	Render(ctx context.Context, doc layout.Document, dest string) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, doc layout.Document, dest string) error

func (f RendererFunc) Render(ctx context.Context, doc layout.Document, dest string) error {
	return f(ctx, doc, dest)
}

// BackgroundRenderer copies the background image to dest without drawing the
// title or buttons.
type BackgroundRenderer struct{}

func (BackgroundRenderer) Render(ctx context.Context, doc layout.Document, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(doc.Background) == "" {
		return services.Wrap(services.ErrValidation, "render", "copy background", "no background image set", nil)
	}
	if !fileutil.Exists(doc.Background) {
		return services.Wrap(services.ErrValidation, "render", "copy background", fmt.Sprintf("background %q does not exist", doc.Background), nil)
	}
	same, err := fileutil.SameFile(doc.Background, dest)
	if err != nil {
		return services.Wrap(services.ErrIO, "render", "copy background", dest, err)
	}
	if same {
		return nil
	}
	if err := fileutil.CopyFileVerified(doc.Background, dest); err != nil {
		return services.Wrap(services.ErrIO, "render", "copy background", dest, err)
	}
	return nil
}
