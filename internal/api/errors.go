package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/gtd/internal/models"
)

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// respondError maps an error kind onto a status code and writes the envelope.
// Unknown errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var verrs models.ValidationErrors
	var ferr *models.FieldError

	switch {
	case errors.As(err, &verrs):
		abortWith(c, http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: verrs.Fields()})
	case errors.As(err, &ferr):
		abortWith(c, http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Errors:  map[string][]string{ferr.Field: {ferr.Err.Error()}},
		})
	case errors.Is(err, models.ErrValidation):
		abortWith(c, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		abortWith(c, http.StatusUnauthorized, errorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		abortWith(c, http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrConflict):
		abortWith(c, http.StatusConflict, errorResponse{Message: err.Error()})
	default:
		slog.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
		)
		abortWith(c, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func abortWith(c *gin.Context, status int, body errorResponse) {
	c.AbortWithStatusJSON(status, body)
}

// bindJSON decodes the request body into dst, answering 400 on failure.
// It reports whether the handler should continue.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, bodyError(err))
		return false
	}
	return true
}

// bodyError turns a decoding failure into a field-keyed validation error
func bodyError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.Is(err, io.EOF):
		return models.NewFieldError("body", errors.New("request body is required"))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return models.NewFieldError(typeErr.Field, errors.New("must be a "+jsonKind(typeErr.Type.Kind().String())))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return models.NewFieldError("body", errors.New("malformed JSON"))
	}
	return models.NewFieldError("body", err)
}

// jsonKind names a Go kind the way a JSON client would
func jsonKind(kind string) string {
	switch {
	case strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"), strings.HasPrefix(kind, "float"):
		return "number"
	case kind == "bool":
		return "boolean"
	case kind == "slice", kind == "array":
		return "array"
	case kind == "struct", kind == "map":
		return "object"
	}
	return kind
}
