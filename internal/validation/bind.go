package validation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// BindAndValidate binds the JSON body into out and runs validation.
// On failure it writes a 400 and returns the error so the handler can return.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := BindJSON(c, out); err != nil {
		return err
	}

	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "validation_failed",
			"fields":  FieldErrors(err),
		})
		return err
	}
	return nil
}

// BindJSON binds the JSON body into out, writing a 400 when it cannot be decoded.
func BindJSON(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid_request_body",
			"msg":     err.Error(),
		})
		return err
	}
	return nil
}

// FieldErrors flattens validator errors into field → failed tag.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldName(fe)] = fe.Tag()
		}
		return out
	}
	out["error"] = err.Error()
	return out
}

// fieldName drops the top-level struct name from the namespace.
func fieldName(fe validatorv10.FieldError) string {
	ns := fe.Namespace()
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return fe.Field()
}
