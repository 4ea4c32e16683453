package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"footcrop/cropper"

	"github.com/gofiber/fiber/v2"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiError Error
	if errors.As(err, &apiError) {
		return c.Status(apiError.Code).JSON(apiError)
	}

	var valError ValidationError
	if errors.As(err, &valError) {
		return c.Status(valError.Status).JSON(valError)
	}

	apiError = fromError(err)
	slog.Default().Warn("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"code", apiError.Code,
		"error", apiError.Message)
	return c.Status(apiError.Code).JSON(apiError)
}

func fromError(err error) Error {
	var fiberError *fiber.Error
	switch {
	case errors.As(err, &fiberError):
		return NewError(fiberError.Code, fiberError.Message)
	case errors.Is(err, cropper.ErrUnreadable),
		errors.Is(err, cropper.ErrDegenerateBox),
		errors.Is(err, cropper.ErrInvalidOptions):
		return NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, sql.ErrNoRows):
		return NewError(fiber.StatusNotFound, "resource not found")
	default:
		return NewError(fiber.StatusInternalServerError, err.Error())
	}
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

// Error implements the Error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid request",
	}
}

func ErrMissingFile() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "form field 'file' is required",
	}
}

func ErrInvalidID() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid id given",
	}
}

func ErrNotFound[T any](arg T, resource string) Error {
	return Error{
		Code:    fiber.StatusNotFound,
		Message: fmt.Sprintf("%s with %v not found", resource, arg),
	}
}
