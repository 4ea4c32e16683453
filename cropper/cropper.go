// Package cropper hides the footer band of PDF pages by raising the lower
// edge of each page box.
package cropper

import (
	"errors"
	"fmt"
	"io"

	"footcrop/types"

	"github.com/go-playground/validator/v10"
)

// DefaultFooterHeight is 50pt, a little under 0.7 inch.
const DefaultFooterHeight = 50.0

var (
	ErrNotFound       = errors.New("input file not found")
	ErrUnreadable     = errors.New("unreadable document")
	ErrDegenerateBox  = errors.New("page box has no visible area")
	ErrInvalidOptions = errors.New("invalid crop options")
)

// Document is a parsed document whose pages expose a mutable box.
// Pages are numbered from 1.
type Document interface {
	PageCount() int
	Box(page int) (types.Rect, error)
	SetBox(page int, r types.Rect) error
	Write(w io.Writer) error
}

type Options struct {
	FooterHeight float64       `validate:"gte=0"`
	Box          types.BoxKind `validate:"omitempty,oneof=media crop"`
	// Strict rejects pages whose box ends up with no visible area.
	// Without it an oversized footer yields an inverted box.
	Strict   bool
	Progress func(page, total int) `validate:"-"`
}

var validate = validator.New()

func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// RaiseBottom moves the lower edge of r up by footer. Nothing else changes.
func RaiseBottom(r types.Rect, footer float64) types.Rect {
	r.LLY += footer
	return r
}

// RemoveFooter raises the bottom of every page box in doc by
// opts.FooterHeight, in page order. It returns the number of pages
// processed. The first error aborts the run.
func RemoveFooter(doc Document, opts Options) (int, error) {
	total := doc.PageCount()
	for page := 1; page <= total; page++ {
		box, err := doc.Box(page)
		if err != nil {
			return 0, fmt.Errorf("page %d: %w", page, err)
		}

		box = RaiseBottom(box, opts.FooterHeight)
		if opts.Strict && box.Degenerate() {
			return 0, fmt.Errorf("page %d: %w (lly %.2f, ury %.2f)", page, ErrDegenerateBox, box.LLY, box.URY)
		}

		if err := doc.SetBox(page, box); err != nil {
			return 0, fmt.Errorf("page %d: %w", page, err)
		}

		if opts.Progress != nil {
			opts.Progress(page, total)
		}
	}
	return total, nil
}
