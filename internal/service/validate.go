package service

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a form field name to its validation messages.
// A nil map means the input was valid.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether the field collected at least one error.
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// Error lists the offending fields so FieldErrors can travel as an error.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid input: %s", strings.Join(fields, ", "))
}

// checkRequired trims the value and records a "required" error when nothing
// significant remains. Whitespace-only input counts as empty.
func checkRequired(errs FieldErrors, field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		errs.Add(field, "This field is required.")
	}
	return trimmed
}

// checkMaxLength counts runes, not bytes, so non-Latin input is not
// penalized for its encoding.
func checkMaxLength(errs FieldErrors, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		errs.Add(field, fmt.Sprintf("Ensure this value has at most %d characters.", max))
	}
}

func checkEmail(errs FieldErrors, field, value string) {
	if value == "" {
		return
	}
	if !isValidEmail(value) {
		errs.Add(field, "Enter a valid email address.")
	}
}

// isValidEmail enforces local-part "@" domain with at least one dot in the
// domain, no leading, trailing or consecutive dots on either side.
func isValidEmail(value string) bool {
	if strings.ContainsAny(value, " \t\r\n") {
		return false
	}

	at := strings.IndexByte(value, '@')
	if at <= 0 || at != strings.LastIndexByte(value, '@') {
		return false
	}

	local, domain := value[:at], value[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}

	for _, part := range []string{local, domain} {
		if part == "" ||
			strings.HasPrefix(part, ".") ||
			strings.HasSuffix(part, ".") ||
			strings.Contains(part, "..") {
			return false
		}
	}

	return true
}
