package sanitizer

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Login keys are stored as bare 10-digit Indian mobile numbers, so
// parsing defaults to the IN region and strips the country code.
const defaultRegion = "IN"

// NormalizePhone parses a raw phone string and returns the 10-digit
// national number, or "" when the input is not a valid mobile number.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return ""
	}

	national := strconv.FormatUint(parsed.GetNationalNumber(), 10)
	if len(national) != 10 {
		return ""
	}
	return national
}
