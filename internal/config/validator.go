package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	qdxerrors "github.com/alexisbeaulieu97/qdxstudio/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
			_, ok := catalog.ParseLocation(fl.Field().String())
			return ok
		})

		_ = v.RegisterValidation("link_target", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "current", "new":
				return true
			}
			return false
		})

		_ = v.RegisterValidation("web_url", func(fl validator.FieldLevel) bool {
			return IsWebURL(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// IsWebURL reports whether s is an absolute http or https URL with a host.
func IsWebURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

// CheckVar validates a single value against tag and reports it under field.
func CheckVar(field string, value any, tag string) *qdxerrors.ValidationError {
	err := validatorInstance().Var(value, tag)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return &qdxerrors.ValidationError{Field: field, Message: describeTag(ves[0].Tag(), ves[0].Param()), Err: err}
	}
	return &qdxerrors.ValidationError{Field: field, Message: err.Error(), Err: err}
}

// ConvertValidationErrors turns validator output into per-field errors.
func ConvertValidationErrors(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return qdxerrors.NewValidationError("document", err.Error(), err)
	}

	out := make(qdxerrors.ValidationErrors, 0, len(ves))
	for _, fe := range ves {
		out = append(out, &qdxerrors.ValidationError{
			Field:   fieldPath(fe),
			Message: describeTag(fe.Tag(), fe.Param()),
			Err:     fe,
		})
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describeTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "web_url", "url":
		return "must be an http(s) URL"
	case "location":
		return "must be TOP, MID or BOT"
	case "link_target":
		return "must be current or new"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", param)
	case "max":
		return fmt.Sprintf("must have at most %s entries", param)
	case "min":
		return fmt.Sprintf("must have at least %s entries", param)
	}
	return fmt.Sprintf("failed validation for tag '%s'", tag)
}
