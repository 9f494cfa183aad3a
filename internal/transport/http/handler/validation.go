package handler

import (
	"errors"

	"github.com/ErlanBelekov/timesheet/internal/auth"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom binding tags used by request
// structs in this package on gin's validator.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return auth.RegisterValidations(v)
}
