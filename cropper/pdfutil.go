package cropper

import (
	"fmt"
	"io"

	"footcrop/types"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDF is a Document backed by a pdfcpu context.
type PDF struct {
	ctx *model.Context
	box types.BoxKind
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Read parses a PDF. box selects which page box gets adjusted;
// an empty value means the MediaBox.
func Read(rs io.ReadSeeker, box types.BoxKind) (*PDF, error) {
	ctx, err := api.ReadContext(rs, newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if box == "" {
		box = types.MediaBox
	}
	return &PDF{ctx: ctx, box: box}, nil
}

func (p *PDF) PageCount() int {
	return p.ctx.PageCount
}

// Box returns the page's effective box. The CropBox falls back to the
// MediaBox when the page has none.
func (p *PDF) Box(page int) (types.Rect, error) {
	_, _, inh, err := p.ctx.PageDict(page, false)
	if err != nil {
		return types.Rect{}, err
	}
	if inh == nil || inh.MediaBox == nil {
		return types.Rect{}, fmt.Errorf("missing MediaBox")
	}

	r := inh.MediaBox
	if p.box == types.CropBox && inh.CropBox != nil {
		r = inh.CropBox
	}

	return types.Rect{
		LLX: r.LL.X,
		LLY: r.LL.Y,
		URX: r.UR.X,
		URY: r.UR.Y,
	}, nil
}

func (p *PDF) SetBox(page int, r types.Rect) error {
	d, _, _, err := p.ctx.PageDict(page, false)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("missing page dict")
	}

	key := "MediaBox"
	if p.box == types.CropBox {
		key = "CropBox"
	}

	d.Update(key, pdftypes.NewRectangle(r.LLX, r.LLY, r.URX, r.URY).Array())
	return nil
}

func (p *PDF) Write(w io.Writer) error {
	return api.WriteContext(p.ctx, w)
}
