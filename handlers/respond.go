package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"studiobook/services/booking"
	"studiobook/utils"
)

// respondServiceError maps a pipeline error onto the HTTP contract:
// business-rule errors carry their code and field details, everything
// else is an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	if e, ok := booking.AsError(err); ok {
		status := booking.HTTPStatus(e.Code)
		body := gin.H{"error": e.Message, "code": e.Code}
		if len(e.Fields) > 0 {
			body["details"] = e.Fields
		}
		c.JSON(status, body)
		return
	}
	utils.GetLogger().Error("unexpected handler error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// bindingFieldErrors converts gin binding failures into the field-level
// message array that drives inline form errors.
func bindingFieldErrors(err error) []booking.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]booking.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, booking.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: validationMessage(fe),
		})
	}
	return fields
}

func respondBindingError(c *gin.Context, err error) {
	body := gin.H{"error": "invalid request body"}
	if fields := bindingFieldErrors(err); len(fields) > 0 {
		body["details"] = fields
	}
	c.JSON(http.StatusBadRequest, body)
}

// fieldPath strips the root struct name and lower-cases the leading
// letter of each segment, matching the JSON field names.
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
