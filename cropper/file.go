package cropper

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CropFile removes the footer from every page of inFile and writes the
// result to outFile. Nothing is written unless every page was processed.
func CropFile(inFile, outFile string, opts Options) (int, error) {
	if _, err := os.Stat(inFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, inFile)
		}
		return 0, err
	}

	if err := opts.Validate(); err != nil {
		return 0, err
	}

	in, err := os.Open(inFile)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	doc, err := Read(in, opts.Box)
	if err != nil {
		return 0, err
	}

	pages, err := RemoveFooter(doc, opts)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(outFile)
	if err != nil {
		return 0, err
	}

	if err := doc.Write(out); err != nil {
		out.Close()
		os.Remove(outFile)
		return 0, fmt.Errorf("failed to write %s: %w", outFile, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(outFile)
		return 0, err
	}

	return pages, nil
}

// CropBytes is CropFile for an in-memory document.
func CropBytes(data []byte, opts Options) ([]byte, int, error) {
	if err := opts.Validate(); err != nil {
		return nil, 0, err
	}

	doc, err := Read(bytes.NewReader(data), opts.Box)
	if err != nil {
		return nil, 0, err
	}

	pages, err := RemoveFooter(doc, opts)
	if err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}
