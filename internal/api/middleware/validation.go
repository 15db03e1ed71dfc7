package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"audio-minutes/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// BindForm binds a multipart or urlencoded form into req, then runs the
// domain validation if req implements Validator.
func BindForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldError := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s %s", strings.ToLower(fieldError.Field()), describeTag(fieldError.Tag())))
			}
			return errors.NewBadRequestError(strings.Join(fields, "; "))
		}
		return errors.NewBadRequestError("invalid form data")
	}

	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of the allowed values"
	default:
		return "is invalid"
	}
}
