package validators

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

var phonePattern = regexp.MustCompile(`^(\d{2,3})-?(\d{3,4})-?(\d{4})$`)

// NormalizePhone accepts 010-1234-5678, 01012345678 or 02-123-4567 and returns the
// hyphenated form.
func NormalizePhone(raw string) (string, error) {
	v := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	m := phonePattern.FindStringSubmatch(v)
	if m == nil {
		return "", ErrInvalidPhone
	}
	return m[1] + "-" + m[2] + "-" + m[3], nil
}
