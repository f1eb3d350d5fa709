package handler

import (
    "errors"
    "fmt"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo.Validator.  Field
// names in messages are the JSON names the client sent.
type Validator struct {
    v *validator.Validate
}

func NewValidator() *Validator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        return name
    })
    return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error {
    return cv.v.Struct(i)
}

// bindAndValidate decodes the body into dst and runs its validate tags.
// The returned string is a client-facing message; empty means success.
func bindAndValidate(c echo.Context, dst interface{}) string {
    if err := c.Bind(dst); err != nil {
        return "invalid request body"
    }
    if err := c.Validate(dst); err != nil {
        return validationMessage(err)
    }
    return ""
}

func validationMessage(err error) string {
    var ves validator.ValidationErrors
    if !errors.As(err, &ves) || len(ves) == 0 {
        return "invalid request body"
    }
    fe := ves[0]
    switch fe.Tag() {
    case "required":
        return fmt.Sprintf("%s is required", fe.Field())
    case "min":
        return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
    case "oneof":
        return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
    case "datetime":
        return fmt.Sprintf("%s must be formatted as YYYY-MM-DD", fe.Field())
    }
    return fmt.Sprintf("%s is invalid", fe.Field())
}
