package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"footcrop/cropper"
	"footcrop/types"

	"github.com/spf13/cobra"
)

const (
	defaultInput  = "input.pdf"
	defaultOutput = "output.pdf"
)

// errReported marks a failure whose message has already been printed.
var errReported = errors.New("reported")

func newRootCmd() *cobra.Command {
	var (
		box    string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "footcrop [input_path] [output_path] [footer_height]",
		Short: "Remove the footer band from every page of a PDF",
		Long: `footcrop hides the footer of every page of a PDF by raising the bottom
edge of the page box. The footer height is given in points (72 points = 1 inch).

Without arguments it reads input.pdf and writes output.pdf, removing 50 points.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrop(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, types.BoxKind(box), strict)
		},
	}

	cmd.Flags().StringVar(&box, "box", string(types.MediaBox), "page box to shrink: media or crop")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the footer is taller than a page")

	cmd.AddCommand(newServeCmd(), newWatchCmd())
	return cmd
}

func runCrop(stdout, stderr io.Writer, args []string, box types.BoxKind, strict bool) error {
	input, output, height := defaultInput, defaultOutput, cropper.DefaultFooterHeight
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}
	if len(args) > 2 {
		h, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			fmt.Fprintf(stderr, "Error processing PDF: invalid footer height %q\n", args[2])
			return errReported
		}
		height = h
	}

	if len(args) == 0 {
		printBanner(stdout, input, output, height)
	}

	pages, err := cropper.CropFile(input, output, cropper.Options{
		FooterHeight: height,
		Box:          box,
		Strict:       strict,
		Progress: func(page, total int) {
			fmt.Fprintf(stdout, "Processed page %d/%d\n", page, total)
		},
	})
	if errors.Is(err, cropper.ErrNotFound) {
		fmt.Fprintf(stderr, "Error: Input file '%s' not found.\n", input)
		return errReported
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error processing PDF: %v\n", err)
		return errReported
	}

	fmt.Fprintf(stdout, "\nSuccess! Footer removed from %d pages.\n", pages)
	fmt.Fprintf(stdout, "Output saved to: %s\n", output)
	return nil
}

func printBanner(w io.Writer, input, output string, height float64) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w, "PDF Footer Remover")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Input file: %s\n", input)
	fmt.Fprintf(w, "Output file: %s\n", output)
	fmt.Fprintf(w, "Footer height to remove: %g points\n", height)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}
