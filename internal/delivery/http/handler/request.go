package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"campus-prep/internal/delivery/http/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// bindBody decodes the JSON body into out and runs its validate tags.
func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
		fields := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", fields, err)
	}
	return nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseQueryBool(c fiber.Ctx, key string) (bool, error) {
	s := c.Query(key)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func internalError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
}
