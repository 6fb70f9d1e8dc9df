package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/AGKL-Team/AGKL-Sales-backend/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator wires go-playground/validator into echo's c.Validate
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// actorFrom returns the audit actor for the request. The auth
// middleware guarantees it is present on protected routes.
func actorFrom(c echo.Context) string {
	actor, _ := middleware.ActorFromContext(c)
	return actor
}

// paramID parses the named route parameter as an entity id
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// readFormFile reads an uploaded multipart file into memory
func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// queryUint parses an optional uint query parameter
func queryUint(c echo.Context, name string) *uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	value := uint(parsed)
	return &value
}
