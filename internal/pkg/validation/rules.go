package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// EmailPattern is the accepted email format
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// RollNumberPattern accepts institutional roll numbers such as 21BCS045
	RollNumberPattern = `^[0-9A-Za-z]{4,20}$`

	// OTPPattern is a 6 digit decimal code
	OTPPattern = `^\d{6}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	RollNumber *regexp.Regexp
	OTP        *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	RollNumber: regexp.MustCompile(RollNumberPattern),
	OTP:        regexp.MustCompile(OTPPattern),
}

// IsValidEmail reports whether the email matches the accepted format.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidRollNumber reports whether the roll number matches the accepted format.
func IsValidRollNumber(rollNumber string) bool {
	return CompiledPatterns.RollNumber.MatchString(rollNumber)
}

// IsValidOTP reports whether the submitted code is 6 decimal digits.
func IsValidOTP(code string) bool {
	return CompiledPatterns.OTP.MatchString(code)
}
