package services

import (
	"bytes"
	"fmt"
	"hostel_complaints_go/config"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/resend/resend-go/v2"
)

// emailTemplatesDir holds <name>.html and <name>.txt pairs
var emailTemplatesDir = "templates/emails"

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders templateName.html and templateName.txt from the email templates directory
func loadTemplate(templateName string, data interface{}) (html string, text string, err error) {
	htmlPath := filepath.Join(emailTemplatesDir, templateName+".html")
	content, err := os.ReadFile(htmlPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s: %w", htmlPath, err)
	}
	htmlTmpl, err := template.New(filepath.Base(htmlPath)).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", htmlPath, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", htmlPath, err)
	}

	textPath := filepath.Join(emailTemplatesDir, templateName+".txt")
	content, err = os.ReadFile(textPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s: %w", textPath, err)
	}
	textTmpl, err := texttemplate.New(filepath.Base(textPath)).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", textPath, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", textPath, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// buildEmailWithFallback renders a template, falling back to a plain text body when it cannot be loaded
func buildEmailWithFallback(templateName string, data interface{}, to []string, subject, fallbackText string) *Email {
	htmlBody, textBody, err := loadTemplate(templateName, data)
	if err != nil {
		log.Printf("Error loading %s email template: %v", templateName, err)
		htmlBody, textBody = "", fallbackText
	}

	return &Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("[EMAIL] Sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode, not sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email in a goroutine so handlers do not block on Resend
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[EMAIL] Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// StatusChangedEmailData contains data for the status_changed template
type StatusChangedEmailData struct {
	StudentName    string
	ComplaintTitle string
	StatusName     string
	StatusMessage  string
	ComplaintURL   string
}

// BuildStatusChangedEmail tells a student their complaint moved to a new status
func BuildStatusChangedEmail(studentEmail string, data StatusChangedEmailData) *Email {
	subject := fmt.Sprintf("Your complaint %q is now %s", data.ComplaintTitle, data.StatusName)
	fallback := fmt.Sprintf("Hello %s,\n\nYour complaint %q is now %s.\n%s\n\n%s\n",
		data.StudentName, data.ComplaintTitle, data.StatusName, data.StatusMessage, data.ComplaintURL)
	return buildEmailWithFallback("status_changed", data, []string{studentEmail}, subject, fallback)
}

// HostelComplaintCount is one line of the open complaints digest
type HostelComplaintCount struct {
	Hostel string
	Count  int64
}

// OpenComplaintsDigestData contains data for the open_complaints_digest template
type OpenComplaintsDigestData struct {
	Date    string
	Total   int64
	Hostels []HostelComplaintCount
	AppURL  string
}

// BuildOpenComplaintsDigestEmail summarises unresolved complaints per hostel for admins
func BuildOpenComplaintsDigestEmail(adminEmails []string, data OpenComplaintsDigestData) *Email {
	subject := fmt.Sprintf("%d open complaints (%s)", data.Total, data.Date)

	var b strings.Builder
	fmt.Fprintf(&b, "Open complaints on %s: %d\n\n", data.Date, data.Total)
	for _, h := range data.Hostels {
		fmt.Fprintf(&b, "- %s: %d\n", h.Hostel, h.Count)
	}
	return buildEmailWithFallback("open_complaints_digest", data, adminEmails, subject, b.String())
}
