package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/gtd/internal/models"
)

var (
	errNotPositiveInt = errors.New("must be a positive integer")
	errNotBool        = errors.New("must be true or false")
)

// pathID reads a numeric path parameter, answering 400 when it is not one
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondError(c, models.NewFieldError(name, errNotPositiveInt))
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter
func queryInt(c *gin.Context, name string, errs *models.ValidationErrors) *int {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		errs.Add(name, errNotPositiveInt)
		return nil
	}
	return &v
}

// queryBool reads an optional boolean query parameter
func queryBool(c *gin.Context, name string, errs *models.ValidationErrors) *bool {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		errs.Add(name, errNotBool)
		return nil
	}
	return &v
}
