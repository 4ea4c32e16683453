package api

import (
	"context"
	"reflect"
	"strings"

	"footcrop/store"
	"footcrop/types"

	"github.com/gofiber/fiber/v2"
)

type ConfigHandler struct {
	configStore store.DBStorer
}

func NewConfigHandler(cfgStore store.DBStorer) *ConfigHandler {
	return &ConfigHandler{
		configStore: cfgStore,
	}
}

func (h *ConfigHandler) HandleGetConfig(c *fiber.Ctx) error {
	settings, err := h.configStore.GetSettings(context.Background())
	if err != nil {
		return err
	}
	return c.JSON(settings)
}

func (h *ConfigHandler) HandleSetConfig(c *fiber.Ctx) error {
	var params types.SettingsParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	querySet := settingsQuerySet(params)
	if len(querySet) == 0 {
		return ErrBadRequest()
	}

	resp, err := h.configStore.SetSettings(context.Background(), querySet)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// settingsQuerySet maps the non-empty fields of params to their columns.
func settingsQuerySet(params types.SettingsParams) map[string]any {
	v := reflect.ValueOf(params)
	t := reflect.TypeOf(params)
	querySet := make(map[string]any)
	for i := 0; i < v.NumField(); i++ {
		key := strings.Split(t.Field(i).Tag.Get("db"), ",")[0]
		if key == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.Pointer:
			if !field.IsNil() {
				querySet[key] = field.Elem().Interface()
			}
		case reflect.String:
			if value := field.String(); value != "" {
				querySet[key] = value
			}
		}
	}
	return querySet
}
