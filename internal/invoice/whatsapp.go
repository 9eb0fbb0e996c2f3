package invoice

import (
	"errors"
	"net/url"
	"strings"
)

var ErrNoPhoneNumber = errors.New("member has no phone number")

// BuildWhatsAppLink returns a wa.me deep link with the message prefilled.
// Phone is normalized to digits only; wa.me rejects '+' and separators.
func BuildWhatsAppLink(phone, message string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", ErrNoPhoneNumber
	}

	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message), nil
}
