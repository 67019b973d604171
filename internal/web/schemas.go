package web

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type contactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type loginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type postForm struct {
	Slug    string `validate:"required"`
	Title   string `validate:"required"`
	Excerpt string
	Content string `validate:"required"`
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var missing []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		missing = append(missing, strings.ToLower(fieldErr.Field()))
	}
	return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
}

func (c contactRequest) Validate() error { return validateStruct(c) }
func (l loginRequest) Validate() error   { return validateStruct(l) }
func (p postForm) Validate() error       { return validateStruct(p) }
