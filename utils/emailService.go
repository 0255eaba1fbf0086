package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"taxprep/config"
)

// Generic Send Email
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("Email skipped (no SendGrid key configured): %s -> %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("TaxPrep", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	log.Printf("Email sent to %s: %s", toEmail, subject)
	return nil
}

// HTML wrapper shared by all triggers
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A2D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #222222; line-height: 1.6; }
			.content h2 { color: #1B3A2D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #EDF5F0; padding: 15px; border-radius: 4px; border-left: 4px solid #2E7D52; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>TAXPREP</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 TaxPrep. All rights reserved.<br>
				Estimates are not tax advice. Verify all figures before filing.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to TaxPrep"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>TaxPrep</strong>! Your account has been created.</p>
		<p>You can now upload your W-9 and W-2 forms, add dependents, and generate your mortgage interest estimate from your dashboard.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Login Notification
func SendLoginNotificationEmail(email, name, ip, device, timeStr string) {
	subject := "New Login Alert"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We noticed a new login to your account.</p>
		<div class="info-box">
			<ul style="list-style: none; padding: 0; margin: 0;">
				<li style="margin-bottom: 8px;"><strong>Time:</strong> %s</li>
				<li style="margin-bottom: 8px;"><strong>IP Address:</strong> %s</li>
				<li><strong>Device:</strong> %s</li>
			</ul>
		</div>
		<p>If this was you, you can safely ignore this email.</p>
		<p style="color: #DC3545; font-weight: bold;">If you did not authorize this login, please contact support immediately.</p>
	`, name, timeStr, ip, device)

	go SendEmail(email, name, subject, getEmailTemplate("New Login Detected", body))
}

// 3. 1098 Estimate Ready
func Send1098ReadyEmail(email, name string, year int) {
	subject := fmt.Sprintf("Your %d Form 1098 Estimate Is Ready", year)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your Form 1098 mortgage interest estimate for tax year <strong>%d</strong> has been generated.</p>
		<div class="info-box">
			Download the PDF from your dashboard and verify the amounts against your lender's statement.
		</div>
	`, name, year)

	go SendEmail(email, name, subject, getEmailTemplate("Estimate Generated", body))
}
