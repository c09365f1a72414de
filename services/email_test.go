package services

import (
	"hostel_complaints_go/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTemplatesDir points the email templates at dir for the duration of the test
func useTemplatesDir(t *testing.T, dir string) {
	t.Helper()
	previous := emailTemplatesDir
	emailTemplatesDir = dir
	t.Cleanup(func() { emailTemplatesDir = previous })
}

func writeTemplate(t *testing.T, dir, name, html, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".html"), []byte(html), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".txt"), []byte(text), 0644))
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	useTemplatesDir(t, dir)
	writeTemplate(t, dir, "greeting", "<p>Hello {{.Name}}</p>", "Hello {{.Name}} & co")

	t.Run("Renders both bodies", func(t *testing.T) {
		html, text, err := loadTemplate("greeting", map[string]string{"Name": "<Asha>"})
		assert.NoError(t, err)
		assert.Equal(t, "<p>Hello &lt;Asha&gt;</p>", html)
		assert.Equal(t, "Hello <Asha> & co", text)
	})

	t.Run("Template not found", func(t *testing.T) {
		_, _, err := loadTemplate("missing", nil)
		assert.Error(t, err)
	})
}

func TestBuildEmailWithFallback(t *testing.T) {
	dir := t.TempDir()
	useTemplatesDir(t, dir)
	writeTemplate(t, dir, "build", "HTML {{.Val}}", "Text {{.Val}}")

	email := buildEmailWithFallback("build", map[string]string{"Val": "OK"}, []string{"a@hostel.test"}, "Subject", "fallback")
	assert.Equal(t, []string{"a@hostel.test"}, email.To)
	assert.Equal(t, "HTML OK", email.HTMLBody)
	assert.Equal(t, "Text OK", email.TextBody)

	email = buildEmailWithFallback("absent", nil, []string{"a@hostel.test"}, "Subject", "fallback")
	assert.Empty(t, email.HTMLBody)
	assert.Equal(t, "fallback", email.TextBody)
}

func TestBuildStatusChangedEmail(t *testing.T) {
	useTemplatesDir(t, filepath.Join("..", "templates", "emails"))

	email := BuildStatusChangedEmail("asha@hostel.test", StatusChangedEmailData{
		StudentName:    "Asha",
		ComplaintTitle: "Broken fan",
		StatusName:     "resolved",
		StatusMessage:  "Your complaint has been resolved.",
		ComplaintURL:   "http://localhost:8080/complaints/1",
	})
	assert.Equal(t, []string{"asha@hostel.test"}, email.To)
	assert.Equal(t, `Your complaint "Broken fan" is now resolved`, email.Subject)
	assert.Contains(t, email.HTMLBody, "Broken fan")
	assert.Contains(t, email.TextBody, "Asha")
}

func TestBuildOpenComplaintsDigestEmail(t *testing.T) {
	useTemplatesDir(t, t.TempDir())

	email := BuildOpenComplaintsDigestEmail([]string{"admin@hostel.test"}, OpenComplaintsDigestData{
		Date:    "2024-03-01",
		Total:   3,
		Hostels: []HostelComplaintCount{{Hostel: "Block A", Count: 2}, {Hostel: "Unassigned", Count: 1}},
	})
	assert.Equal(t, "3 open complaints (2024-03-01)", email.Subject)
	assert.Contains(t, email.TextBody, "- Block A: 2")
	assert.Contains(t, email.TextBody, "- Unassigned: 1")
}

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}
	err := SendEmail(cfg, &Email{To: []string{"a@hostel.test"}, Subject: "Hi", TextBody: "Body"})
	assert.NoError(t, err)
}

func TestSendEmail_NoRecipients(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}
	err := SendEmail(cfg, &Email{Subject: "Hi", TextBody: "Body"})
	assert.EqualError(t, err, "email has no recipients")
}

func TestSendEmail_NoApiKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false}
	err := SendEmail(cfg, &Email{To: []string{"a@hostel.test"}, Subject: "Hi", TextBody: "Body"})
	assert.EqualError(t, err, "RESEND_API_KEY not configured")
}

func TestSendEmail_NoBody(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false, ResendAPIKey: "re_test"}
	err := SendEmail(cfg, &Email{To: []string{"a@hostel.test"}, Subject: "Hi"})
	assert.EqualError(t, err, "email must have either HTMLBody or TextBody")
}
