package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const internalMessage = "Something went wrong. Try again later."

// ErrorDTO is the body of every failed response.
type ErrorDTO struct {
	StatusCode int      `json:"status_code"`
	Message    string   `json:"message"`
	Detail     []string `json:"detail"`
}

func abortWithError(c *gin.Context, status int, message string, detail ...string) {
	if detail == nil {
		detail = []string{}
	}
	c.AbortWithStatusJSON(status, ErrorDTO{StatusCode: status, Message: message, Detail: detail})
}

// respondError maps a service error to its status. message replaces the
// default text for domain errors; internal faults are logged and never
// described to the client.
func respondError(c *gin.Context, log logging.Logger, err error, message string) {
	status, fallback := statusOf(err)

	switch status {
	case http.StatusInternalServerError:
		log.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		abortWithError(c, status, internalMessage)
		return
	case http.StatusUnprocessableEntity:
		msg := validationMessage(err)
		abortWithError(c, status, msg, msg)
		return
	}

	if message == "" {
		message = fallback
	}
	abortWithError(c, status, message)
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Invalid password"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusUnprocessableEntity, "Validation failed"
	default:
		return http.StatusInternalServerError, internalMessage
	}
}

// validationMessage strips the sentinel prefix from a wrapped validation error.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, common.ErrorValidation.Error()+": "); i >= 0 {
		return msg[i+len(common.ErrorValidation.Error())+2:]
	}
	return msg
}

// bindingFailed renders a gin binding error as 422. Field level problems are
// all listed in detail; the first one is the message.
func bindingFailed(c *gin.Context, err error, what string) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		msg := fmt.Sprintf("Invalid %s", what)
		abortWithError(c, http.StatusUnprocessableEntity, msg, msg)
		return
	}

	detail := make([]string, 0, len(ve))
	for _, fe := range ve {
		detail = append(detail, describeField(fe))
	}
	abortWithError(c, http.StatusUnprocessableEntity, detail[0], detail...)
}

func describeField(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
