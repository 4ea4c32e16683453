package api

import (
	"context"
	"database/sql"
	"errors"

	"footcrop/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxJobsLimit = 100

type JobHandler struct {
	store store.DBStorer
}

func NewJobHandler(s store.DBStorer) *JobHandler {
	return &JobHandler{
		store: s,
	}
}

func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > maxJobsLimit {
		return NewValidationError(map[string]string{"limit": "must be between 1 and 100"})
	}

	jobs, err := h.store.ListJobs(context.Background(), limit)
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrInvalidID()
	}

	job, err := h.store.GetJobByID(context.Background(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound(id, "job")
	}
	if err != nil {
		return err
	}
	return c.JSON(job)
}
