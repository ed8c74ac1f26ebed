package sberreport

import (
	"regexp"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// DecodeISIN validates a security identifier cell (ISO 6166). The shape is
// always enforced. The check digit is verified only in strict mode: a
// statement is not the authority on its own identifiers, and a single OCR-ed
// or re-typed character should not reject an otherwise readable row unless
// the caller asked for it.
func DecodeISIN(s string, strict bool) (string, error) {
	isin := strings.ToUpper(normalizeSpace(s))

	if len(isin) != 12 {
		return "", &InvalidIdentifierError{Value: isin, Reason: "must be 12 characters"}
	}
	if !isinRegex.MatchString(isin) {
		return "", &InvalidIdentifierError{Value: isin, Reason: "must be 2 letters, 9 alphanumeric chars, and 1 digit"}
	}
	if !strict {
		return isin, nil
	}

	// Convert letters to numbers for the check digit calculation.
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// Apply a variation of the Luhn algorithm.
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit, _ := strconv.Atoi(string(digits[i]))
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit, _ := strconv.Atoi(string(isin[11]))
	if expectedCheckDigit != actualCheckDigit {
		return "", &InvalidIdentifierError{
			Value:  isin,
			Reason: "check digit is " + strconv.Itoa(actualCheckDigit) + ", want " + strconv.Itoa(expectedCheckDigit),
		}
	}
	return isin, nil
}
