package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendOTPEmail mails a verification code. Without SMTP credentials it logs
// the code instead, which keeps local development working offline.
func SendOTPEmail(toEmail, purpose, otp string) error {
	from := os.Getenv("EMAIL_FROM")
	pass := os.Getenv("EMAIL_PASS")

	if from == "" || pass == "" {
		log.Printf("SMTP not configured, OTP for %s (%s): %s", toEmail, purpose, otp)
		return nil
	}

	msg := fmt.Sprintf(`Subject: GradKart - %s verification

Dear student,

Your One-Time Password (OTP) is:

OTP: %s

Please enter this code to continue.

Thank you,
GradKart Team
`, purpose, otp)

	return smtp.SendMail(
		"smtp.gmail.com:587",
		smtp.PlainAuth("", from, pass, "smtp.gmail.com"),
		from,
		[]string{toEmail},
		[]byte(msg),
	)
}
