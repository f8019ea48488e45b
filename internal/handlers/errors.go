package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"todo-api/internal/models"
	"todo-api/internal/todos"
)

var notFound = models.ErrorResponse{Detail: "Not found."}

// renderError writes the response for err. Unexpected errors are attached
// to the context for the request logger and hidden from the client.
func renderError(c *gin.Context, err error) {
	var verr *todos.ValidationError
	switch {
	case errors.Is(err, todos.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Detail: "Authentication credentials were not provided."})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.FieldErrors{verr.Field: {verr.Message}})
	case errors.Is(err, todos.ErrNotFound):
		c.JSON(http.StatusNotFound, notFound)
	case errors.Is(err, todos.ErrInvalidPage):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: "Invalid page."})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: "internal error"})
	}
}

// bindError turns a request binding failure into a 400 body, naming the
// offending fields where they are known.
func bindError(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		c.JSON(http.StatusBadRequest, models.FieldErrors{typeErr.Field: {"Incorrect type. Expected " + typeErr.Type.String() + "."}})
	case errors.As(err, &verrs):
		fields := models.FieldErrors{}
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			fields[name] = append(fields[name], fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, fields)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "Malformed request body."})
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	default:
		return "Invalid value."
	}
}
