package api

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"footcrop/cropper"
	"footcrop/store"
	"footcrop/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CropHandler struct {
	store  store.DBStorer
	logger *slog.Logger
}

func NewCropHandler(s store.DBStorer) *CropHandler {
	return &CropHandler{
		store:  s,
		logger: slog.Default(),
	}
}

// HandleCrop crops the uploaded PDF and sends it back. Form fields
// footer_height, box and strict override the stored settings.
func (h *CropHandler) HandleCrop(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ErrMissingFile()
	}

	params, err := cropParams(c)
	if err != nil {
		return err
	}
	if errors := types.Validate(params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	settings, err := h.store.GetSettings(context.Background())
	if err != nil {
		return err
	}

	opts := cropper.Options{
		FooterHeight: settings.FooterHeight,
		Box:          settings.Box,
		Strict:       params.Strict,
	}
	if params.FooterHeight != nil {
		opts.FooterHeight = *params.FooterHeight
	}
	if params.Box != "" {
		opts.Box = types.BoxKind(params.Box)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	job := types.Job{
		ID:           uuid.New(),
		Source:       fileHeader.Filename,
		Output:       croppedName(fileHeader.Filename),
		FooterHeight: opts.FooterHeight,
		Box:          opts.Box,
		CreatedAt:    time.Now(),
	}

	out, pages, cropErr := cropper.CropBytes(data, opts)
	job.Pages = pages
	job.Status = types.JobDone
	if cropErr != nil {
		job.Status = types.JobFailed
		job.Error = cropErr.Error()
	}

	if err := h.store.SaveJob(context.Background(), job); err != nil {
		h.logger.Error("failed to save job", "job", job.ID, "error", err)
	}

	if cropErr != nil {
		return cropErr
	}

	h.logger.Info("cropped upload", "job", job.ID, "file", job.Source, "pages", pages, "footer_height", opts.FooterHeight)

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(job.Output))
	c.Set("X-Pages", strconv.Itoa(pages))
	c.Set("X-Job-ID", job.ID.String())
	return c.Send(out)
}

func cropParams(c *fiber.Ctx) (*types.CropParams, error) {
	params := &types.CropParams{
		Box: c.FormValue("box"),
	}

	if v := c.FormValue("footer_height"); v != "" {
		height, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, NewValidationError(map[string]string{"FooterHeight": "not a number"})
		}
		params.FooterHeight = &height
	}

	if v := c.FormValue("strict"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, NewValidationError(map[string]string{"Strict": "not a boolean"})
		}
		params.Strict = strict
	}

	return params, nil
}

func croppedName(name string) string {
	name = filepath.Base(name)
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, ".pdf") {
		return name + "_cropped.pdf"
	}
	return strings.TrimSuffix(name, ext) + "_cropped" + ext
}
