package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPNotifier sends transactional mail over plain SMTP with optional
// AUTH. Bodies are plain text; templating belongs to a mail provider once
// the product outgrows this.
type SMTPNotifier struct {
	host            string
	port            string
	username        string
	password        string
	from            string
	fromName        string
	frontendBaseURL string
}

var (
	_ EmailVerificationNotifier = (*SMTPNotifier)(nil)
	_ PasswordResetNotifier     = (*SMTPNotifier)(nil)
)

func NewSMTPNotifier(host, port, username, password, from, fromName, frontendBaseURL string) *SMTPNotifier {
	return &SMTPNotifier{
		host:            host,
		port:            port,
		username:        username,
		password:        password,
		from:            from,
		fromName:        fromName,
		frontendBaseURL: frontendBaseURL,
	}
}

func (n *SMTPNotifier) SendVerificationEmail(ctx context.Context, email, rawToken string) error {
	body := fmt.Sprintf(
		"Welcome to FitWise!\r\n\r\nPlease verify your email address by opening the link below:\r\n\r\n%s\r\n\r\nThe link expires in 24 hours. If you did not create an account, you can ignore this email.\r\n",
		verificationLink(n.frontendBaseURL, email, rawToken),
	)
	return n.send(ctx, email, "Verify your FitWise account", body)
}

func (n *SMTPNotifier) SendPasswordResetEmail(ctx context.Context, email, rawToken string) error {
	body := fmt.Sprintf(
		"We received a request to reset your FitWise password.\r\n\r\nOpen the link below to choose a new password:\r\n\r\n%s\r\n\r\nThe link expires in 1 hour. If you did not request this, you can ignore this email.\r\n",
		passwordResetLink(n.frontendBaseURL, email, rawToken),
	)
	return n.send(ctx, email, "Reset your FitWise password", body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", n.fromName, n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := n.host + ":" + n.port
	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}
	if err := smtp.SendMail(addr, auth, n.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
