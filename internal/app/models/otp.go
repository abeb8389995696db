package models

import (
	"time"
)

// OTPValidity is how long an issued code stays usable.
const OTPValidity = 10 * time.Minute

// OTP defines a one-time code based on the 'otps' table. Rows are not tied
// to a user account because registration codes are issued before the account
// exists. A code is one-shot: Used flips on first successful verification.
type OTP struct {
	ID        int64      `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Code      string     `json:"-" db:"code"` // 6 decimal digits
	Purpose   OTPPurpose `json:"purpose" db:"purpose"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time  `json:"expiresAt" db:"expires_at"`
	Used      bool       `json:"used" db:"used"`
}
