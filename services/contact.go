package services

import (
	"fmt"
	"net/url"
	"strings"
)

// ContactMessage is a validated contact form submission.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=120"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// MailtoLink builds a mailto URL addressed to the recipient with the
// subject and a formatted body URL-encoded. There is no server-side
// delivery; the browser is redirected to this link.
func MailtoLink(recipient string, m ContactMessage) string {
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", m.Name, m.Email, m.Message)
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		recipient, encodeMailtoComponent(m.Subject), encodeMailtoComponent(body))
}

// encodeMailtoComponent percent-encodes a mailto query component, using
// %20 for spaces rather than '+'.
func encodeMailtoComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
