// Package testpdf builds small well-formed PDF files for tests.
package testpdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"footcrop/types"
)

// Letter is a US Letter page, 8.5 x 11 inch.
var Letter = types.Rect{LLX: 0, LLY: 0, URX: 612, URY: 792}

type Page struct {
	MediaBox types.Rect
	CropBox  *types.Rect
}

// Build returns a PDF with one page per entry. Every page carries a
// short content stream drawing a line along its bottom edge.
func Build(pages ...Page) []byte {
	var objs []string

	// 1: catalog, 2: page tree, then page/content pairs.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))

	for i, p := range pages {
		page := fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox %s", array(p.MediaBox))
		if p.CropBox != nil {
			page += " /CropBox " + array(*p.CropBox)
		}
		page += fmt.Sprintf(" /Resources << >> /Contents %d 0 R >>", 4+2*i)

		content := fmt.Sprintf("%s %s m %s %s l S",
			num(p.MediaBox.LLX), num(p.MediaBox.LLY+10), num(p.MediaBox.URX), num(p.MediaBox.LLY+10))
		stream := fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)

		objs = append(objs, page, stream)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	return buf.Bytes()
}

// Pages returns n Letter sized pages.
func Pages(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{MediaBox: Letter}
	}
	return pages
}

func array(r types.Rect) string {
	return fmt.Sprintf("[%s %s %s %s]", num(r.LLX), num(r.LLY), num(r.URX), num(r.URY))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
