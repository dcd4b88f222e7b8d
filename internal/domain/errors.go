package domain

import "errors"

// ErrInvalidEnum is returned when a raw value is not a member of an enumeration
var ErrInvalidEnum = errors.New("invalid enum value")

// ValidationMessages maps validator tags without a dedicated message to
// user-friendly text
var ValidationMessages = map[string]string{
	"url":        "must be a valid URL",
	"alphanum":   "must contain only alphanumeric characters",
	"numeric":    "must be a numeric value",
	"len":        "must be exactly the specified length",
	"lt":         "must be less than maximum value",
	"eq":         "must equal the specified value",
	"ne":         "must not equal the specified value",
	"startswith": "must start with the specified value",
	"endswith":   "must end with the specified value",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "validation failed: " + tag
}
