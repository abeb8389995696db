package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Service defines the interface for outbound mail. Failures are surfaced to
// the caller; already-persisted state (such as OTP rows) is never rolled
// back on dispatch failure.
type Service interface {
	SendOTPEmail(toEmail, code, purpose string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

type smtpService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new SMTP-backed Service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{
		config: config,
		logger: logger,
	}
}

// SendOTPEmail sends a one-time code for registration or password reset.
func (s *smtpService) SendOTPEmail(toEmail, code, purpose string) error {
	// Without SMTP credentials the code is logged instead of sent, which
	// keeps local development usable.
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("code", code).
			Str("purpose", purpose).
			Msg("SMTP credentials not configured - OTP email not sent. Use the code above for testing.")
		return nil
	}

	var subject, body string
	if purpose == "password_reset" {
		subject = "Password Reset OTP - Project Management System"
		body = fmt.Sprintf(`You have requested to reset your password for the Project Management System.

Your OTP for password reset is: %s

This OTP will expire in 10 minutes.

If you did not request a password reset, please ignore this email.
`, code)
	} else {
		subject = "Your OTP for Registration - Project Management System"
		body = fmt.Sprintf("Your OTP for registration is: %s. It will expire in 10 minutes.", code)
	}

	return s.sendPlainEmail(toEmail, subject, body)
}

// sendPlainEmail sends a plain-text email over SMTP, with optional TLS.
func (s *smtpService) sendPlainEmail(toEmail, subject, textBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	message := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	message += fmt.Sprintf("To: %s\r\n", toEmail)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += "Content-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n" + textBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		err := smtp.SendMail(
			serverAddress,
			auth,
			s.config.FromEmail,
			[]string{toEmail},
			[]byte(message),
		)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	tlsConfig := &tls.Config{
		ServerName: s.config.Host,
	}

	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}
