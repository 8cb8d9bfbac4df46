// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/web-prodavnica/backend/internal/config"
	"github.com/web-prodavnica/backend/internal/i18n"
	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
)

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type NotificationService struct {
	config   *config.Config
	sendMail SendMailFunc
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{
		config:   config,
		sendMail: smtp.SendMail,
	}
}

// WithSendMail replaces the SMTP transport.
func (s *NotificationService) WithSendMail(fn SendMailFunc) *NotificationService {
	s.sendMail = fn
	return s
}

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`<!DOCTYPE html>
<html lang="{{.Locale}}">
<body>
	<p>{{.Greeting}}</p>
	<p>{{.Intro}}</p>
	<table cellpadding="6" style="border-collapse: collapse">
		<tr><th align="left">{{.ProductLabel}}</th><th>{{.QuantityLabel}}</th><th align="right">{{.PriceLabel}}</th></tr>
		{{range .Lines}}<tr>
			<td>{{if .Image}}<img src="{{.Image}}" width="48" alt=""> {{end}}{{.ProductName}}</td>
			<td align="center">{{.Quantity}}</td>
			<td align="right">{{.LineTotal.StringFixed 2}} {{$.Currency}}</td>
		</tr>{{end}}
	</table>
	<p><strong>{{.TotalLabel}}: {{.Total.StringFixed 2}} {{.Currency}}</strong></p>
	{{if .PaymentReference}}<p>{{.ReferenceLabel}}: {{.PaymentReference}}</p>{{end}}
	<p>{{.Signature}}</p>
</body>
</html>`))

// RenderOrderConfirmation returns the subject and HTML body in the summary's locale.
func (s *NotificationService) RenderOrderConfirmation(summary orders.Summary) (string, string, error) {
	lang := summary.Locale
	if lang != models.LocaleEnglish {
		lang = models.LocaleSerbian
	}

	data := map[string]interface{}{
		"Locale":           lang,
		"Greeting":         i18n.T(lang, i18n.KeyOrderEmailGreeting),
		"Intro":            i18n.T(lang, i18n.KeyOrderEmailIntro),
		"ProductLabel":     i18n.T(lang, i18n.KeyOrderEmailProduct),
		"QuantityLabel":    i18n.T(lang, i18n.KeyOrderEmailQuantity),
		"PriceLabel":       i18n.T(lang, i18n.KeyOrderEmailPrice),
		"TotalLabel":       i18n.T(lang, i18n.KeyOrderEmailTotal),
		"ReferenceLabel":   i18n.T(lang, i18n.KeyOrderEmailReference),
		"Signature":        i18n.T(lang, i18n.KeyOrderEmailSignature),
		"Lines":            summary.Lines,
		"Total":            summary.Total,
		"Currency":         s.config.Payment.Currency,
		"PaymentReference": summary.PaymentReference,
	}

	var buf bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render email template: %w", err)
	}

	subject := i18n.T(lang, i18n.KeyOrderEmailSubject, shortOrderID(summary.OrderID))
	return subject, buf.String(), nil
}

// SendOrderConfirmation implements orders.Notifier.
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, summary orders.Summary) error {
	subject, body, err := s.RenderOrderConfirmation(summary)
	if err != nil {
		return err
	}
	return s.sendEmail(ctx, summary.Email, subject, body)
}

func (s *NotificationService) SendWelcomeEmail(ctx context.Context, user *models.User, lang string) error {
	subject := "Dobrodošli u Web Prodavnicu"
	body := "<p>Vaš nalog je uspešno kreiran.</p>"
	if lang == models.LocaleEnglish {
		subject = "Welcome to Web Prodavnica"
		body = "<p>Your account has been created.</p>"
	}
	return s.sendEmail(ctx, user.Email, subject, body)
}

// Helper methods
func (s *NotificationService) sendEmail(ctx context.Context, to, subject, body string) error {
	if !s.config.Email.Enabled() {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email service not configured, skipping send")
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	from := fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, body))

	// smtp.SendMail takes no context, so the deadline is enforced here.
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sending email to %s: %w", to, ctx.Err())
	}
}

func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
