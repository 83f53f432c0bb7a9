// Package email sends transactional mail on a best-effort basis: delivery
// failures are logged and swallowed, never propagated to the request that
// triggered them.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/models"
)

type Mailer struct {
	cfg config.SMTPConfig
	// domain is the public frontend origin embedded in links.
	domain string
}

func New(cfg config.SMTPConfig, domain string) *Mailer {
	return &Mailer{cfg: cfg, domain: domain}
}

// Enabled reports whether SMTP delivery is configured at all.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendActivation emails the account-activation link.
func (m *Mailer) SendActivation(user *models.User, uid, token string) {
	url := fmt.Sprintf("http://%s/activate/%s/%s", m.domain, uid, token)
	m.send(user.Email, "Activate your account", activationTmpl, map[string]any{
		"Name": displayName(user),
		"URL":  url,
	})
}

// SendPasswordReset emails the password-reset link.
func (m *Mailer) SendPasswordReset(user *models.User, uid, token string) {
	url := fmt.Sprintf("http://%s/password-reset/%s/%s", m.domain, uid, token)
	m.send(user.Email, "Password Reset Request", resetTmpl, map[string]any{
		"Name": displayName(user),
		"URL":  url,
	})
}

// SendWelcome greets a freshly activated account.
func (m *Mailer) SendWelcome(user *models.User) {
	m.send(user.Email, "Welcome to Shopora!", welcomeTmpl, map[string]any{
		"Name": displayName(user),
	})
}

// SendOrderConfirmation summarizes a placed order. The recipient may be a
// guest email, so it is passed explicitly.
func (m *Mailer) SendOrderConfirmation(to string, order *models.Order) {
	if to == "" {
		return
	}
	m.send(to, fmt.Sprintf("Order Confirmation #%d", order.ID), orderTmpl, map[string]any{
		"OrderID":       order.ID,
		"Total":         order.Total.StringFixed(2),
		"Address":       order.ShippingAddress,
		"PaymentMethod": string(order.PaymentMethod),
	})
}

func (m *Mailer) send(to, subject string, tmpl *template.Template, data map[string]any) {
	if !m.Enabled() {
		log.Debug().Str("to", to).Str("subject", subject).Msg("smtp not configured, skipping email")
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("failed to render email template")
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		return
	}
	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
}

func displayName(user *models.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}
