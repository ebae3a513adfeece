package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Report category validation
	validate.RegisterValidation("report_category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		validCategories := []string{"spam", "harassment", "hate_speech", "violence", "inappropriate_content", "privacy_violation", "other"}
		for _, c := range validCategories {
			if category == c {
				return true
			}
		}
		return false
	})

	// Reported content type validation
	validate.RegisterValidation("content_type", func(fl validator.FieldLevel) bool {
		contentType := fl.Field().String()
		validTypes := []string{"post", "comment", "user", "message"}
		for _, t := range validTypes {
			if contentType == t {
				return true
			}
		}
		return false
	})

	// Moderation action validation
	validate.RegisterValidation("moderation_action", func(fl validator.FieldLevel) bool {
		action := fl.Field().String()
		validActions := []string{"warning", "content_removal", "temporary_ban", "permanent_ban", "dismiss"}
		for _, a := range validActions {
			if action == a {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "report_category":
			errors[field] = "Invalid category. Must be: spam, harassment, hate_speech, violence, inappropriate_content, privacy_violation, or other"
		case "content_type":
			errors[field] = "Invalid content type. Must be: post, comment, user, or message"
		case "moderation_action":
			errors[field] = "Invalid action. Must be: warning, content_removal, temporary_ban, permanent_ban, or dismiss"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
