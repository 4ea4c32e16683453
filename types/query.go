package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

// CropParams are the optional form fields of a crop upload.
type CropParams struct {
	FooterHeight *float64 `validate:"omitempty,gte=0"`
	Box          string   `validate:"omitempty,oneof=media crop"`
	Strict       bool
}

// SettingsParams is a partial update of the stored settings.
type SettingsParams struct {
	FooterHeight *float64 `db:"footer_height" json:"footer_height,omitempty" validate:"omitempty,gte=0"`
	Box          string   `db:"box" json:"box,omitempty" validate:"omitempty,oneof=media crop"`
}

var validate = validator.New()

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func (params *CropParams) Validate() map[string]string {
	return validationErrors(validate.Struct(params))
}

func (params *SettingsParams) Validate() map[string]string {
	return validationErrors(validate.Struct(params))
}

func validationErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	errors := make(map[string]string)
	for _, e := range errs {
		errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
	}
	return errors
}
