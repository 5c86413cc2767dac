package validation

import (
	"strings"
	"time"
)

// ValidateName validates profile name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return invalid("name", "name is required")
	}

	if len(trimmed) > 100 {
		return invalid("name", "name is too long (max 100 characters)")
	}

	return nil
}

// ValidateTimezone accepts IANA zone names such as "Asia/Seoul".
func ValidateTimezone(tz string) error {
	if tz == "" {
		return invalid("timezone", "timezone is required")
	}

	_, err := time.LoadLocation(tz)
	if err != nil {
		return invalid("timezone", "unknown timezone %q", tz)
	}

	return nil
}
