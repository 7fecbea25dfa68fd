package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/edusabi/mobileFacul/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// nameTags are consulted in order when naming a rejected field
var nameTags = [...]string{"json", "form", "uri"}

// fieldMessages maps a validator tag to its message. %p is the tag parameter
// and %s becomes " characters" on string fields.
var fieldMessages = map[string]string{
	"required": "This field is required",
	"min":      "Must be at least %p%s",
	"max":      "Must be at most %p%s",
	"uuid":     "Invalid UUID format",
	"oneof":    "Must be one of: %p",
	"gte":      "Must be greater than or equal to %p",
	"gt":       "Must be greater than %p",
	"numeric":  "Must be numeric",
}

// SetupValidator makes the gin validator report fields by their request name
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(requestFieldName)
}

func requestFieldName(fld reflect.StructField) string {
	for _, tag := range nameTags {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "":
			continue
		case "-":
			return ""
		default:
			return name
		}
	}
	return fld.Name
}

// FormatValidationErrors builds the 400 body for a binding error.
// Only field validation errors carry details; decode errors do not.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	var details []dto.ValidationDetail
	if errors.As(err, &fieldErrs) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes the validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

func fieldMessage(fe validator.FieldError) string {
	msg, ok := fieldMessages[fe.Tag()]
	if !ok {
		return "Invalid value"
	}
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	return strings.NewReplacer("%p", fe.Param(), "%s", unit).Replace(msg)
}
