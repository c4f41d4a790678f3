package email

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"os"
	"strconv"
)

// Service handles email sending via Brevo SMTP
type Service struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewService creates a new email service configured with Brevo SMTP
func NewService() *Service {
	port, err := strconv.Atoi(os.Getenv("BREVO_SMTP_PORT"))
	if err != nil {
		port = 587 // default
	}

	return &Service{
		host:     os.Getenv("BREVO_SMTP_HOST"),
		port:     port,
		username: os.Getenv("BREVO_SMTP_LOGIN"),
		password: os.Getenv("BREVO_SMTP_KEY"),
		from:     os.Getenv("EMAIL_FROM"),
	}
}

// IsConfigured reports whether SMTP credentials are present.
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.password != "" && s.from != ""
}

// Email represents an email message
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
	ReplyTo string
}

// Send sends an email via Brevo SMTP
func (s *Service) Send(email *Email) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured: missing BREVO_SMTP_HOST, BREVO_SMTP_KEY, or EMAIL_FROM")
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", email.To[0]))
	if email.ReplyTo != "" {
		msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", email.ReplyTo))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))

	if email.IsHTML {
		msg.WriteString("MIME-Version: 1.0\r\n")
		msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	}

	msg.WriteString("\r\n")
	msg.WriteString(email.Body)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.from, email.To, msg.Bytes()); err != nil {
		slog.Error("failed to send email", "error", err, "to", email.To)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("email sent successfully", "to", email.To, "subject", email.Subject)
	return nil
}

// FormatCents converts cents to dollar string (e.g., 1234 -> "$12.34")
func FormatCents(cents int64) string {
	dollars := float64(cents) / 100.0
	return fmt.Sprintf("$%.2f", dollars)
}

// DigestRow is one publication outcome line in the daily digest.
type DigestRow struct {
	PromotionTitle string
	StoreName      string
	Platform       string
	Status         string
	Detail         string
}

// DigestData contains all data for the daily distribution digest email.
type DigestData struct {
	OrganizationName string
	Date             string
	Published        int
	Failed           int
	Rows             []DigestRow
}

// SendDistributionDigest sends the previous day's publication summary to an
// organization contact.
func (s *Service) SendDistributionDigest(to string, data *DigestData) error {
	html, err := RenderDistributionDigest(data)
	if err != nil {
		return err
	}

	email := &Email{
		To:      []string{to},
		Subject: fmt.Sprintf("Distribution digest for %s", data.Date),
		Body:    html,
		IsHTML:  true,
	}
	return s.Send(email)
}

// RenderDistributionDigest renders the digest email HTML for preview and
// sending.
func RenderDistributionDigest(data *DigestData) (string, error) {
	tmpl := template.Must(template.New("digest").Parse(distributionDigestTemplate))

	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to render digest email content: %w", err)
	}

	subject := fmt.Sprintf("Distribution digest for %s", data.Date)
	return WrapEmailContent(content.String(), subject)
}
