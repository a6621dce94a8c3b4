// Package rekuest validates incoming request payloads.
package rekuest

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report the json field name instead of the Go field name in violations
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
}

func violations(ve validator.ValidationErrors) []*ErrorResponse {
	out := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		out = append(out, &ErrorResponse{
			Field:     fe.Field(),
			Violation: fe.Tag(),
		})
	}
	return out
}

// ValidBody parses the JSON body into dest and validates it, converting
// violations into the standard invalid-request error shape.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return apperr.ErrInvalidReq.Msg("invalid request body: %s", err)
	}
	if err := Validate.Struct(dest); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return apperr.NewInvalidViolations(violations(ve))
		}
		return apperr.ErrInvalidReq
	}
	return nil
}
