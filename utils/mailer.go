package utils

import (
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"os"
	"strings"
	"time"

	"bizdesk-backend/models"
)

const smtpTimeout = 15 * time.Second

// Mailer sends notification email over SMTP. With incomplete SMTP
// configuration every send is logged instead of delivered, so local
// development works without a mail server. All sends are best-effort;
// failures are logged and reported as false, never raised.
type Mailer struct {
	host          string
	port          string
	username      string
	password      string
	fromName      string
	operatorEmail string

	// timeout bounds the dial and the whole SMTP conversation so a
	// stalled mail server cannot hold up a synchronous caller.
	timeout time.Duration
}

func NewMailerFromEnv() *Mailer {
	return &Mailer{
		host:          os.Getenv("SMTP_HOST"),
		port:          os.Getenv("SMTP_PORT"),
		username:      os.Getenv("SMTP_USERNAME"),
		password:      os.Getenv("SMTP_PASSWORD"),
		fromName:      EnvOrDefault("SMTP_FROM_NAME", "BizDesk Advisory"),
		operatorEmail: os.Getenv("NOTIFY_EMAIL"),
		timeout:       smtpTimeout,
	}
}

func (m *Mailer) configured() bool {
	return m.host != "" && m.port != "" && m.username != "" && m.password != ""
}

// Send delivers one message and reports success.
func (m *Mailer) Send(to, subject, body string, isHTML bool) bool {
	if to == "" {
		return false
	}
	if !m.configured() {
		log.Printf("[MOCK EMAIL] to:%s subject:%s", to, subject)
		return true
	}

	contentType := "text/plain; charset=utf-8"
	if isHTML {
		contentType = "text/html; charset=utf-8"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.fromName, m.username))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: %s\r\n\r\n", contentType))
	sb.WriteString(body + "\r\n")

	if err := m.sendSMTP(to, []byte(sb.String())); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return false
	}
	log.Printf("Email sent to %s", to)
	return true
}

// sendSMTP is smtp.SendMail with the dial and every subsequent read and
// write bounded by the mailer timeout.
func (m *Mailer) sendSMTP(to string, msg []byte) error {
	timeout := m.timeout
	if timeout <= 0 {
		timeout = smtpTimeout
	}
	addr := net.JoinHostPort(m.host, m.port)
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()
		return err
	}
	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return err
		}
	}
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(m.username); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// BookingConfirmation notifies the customer and the site operator about a
// confirmed booking. True when at least one message went out.
func (m *Mailer) BookingConfirmation(booking *models.ConsultationBooking) bool {
	customerBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Confirmed</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Your consultation is confirmed</h2>
    <p>Hi %s,</p>
    <p>Your consultation with BizDesk Advisory is confirmed.</p>
    <p><strong>Date:</strong> %s<br><strong>Time:</strong> %s<br><strong>Service:</strong> %s</p>
    <p>We look forward to speaking with you.</p>
  </div>
</div>
</body>
</html>`,
		booking.FullName, booking.Date, booking.Time, booking.ServiceInterest,
	)
	sent := m.Send(booking.Email, "Your consultation is confirmed", customerBody, true)

	opSubject := fmt.Sprintf("New consultation booking: %s on %s %s", booking.FullName, booking.Date, booking.Time)
	opBody := fmt.Sprintf(
		"New consultation booking.\n\n"+
			"Name: %s\nEmail: %s\nPhone: %s\nCompany: %s\n"+
			"Date: %s\nTime: %s\nService: %s\n\nMessage:\n%s\n",
		booking.FullName, booking.Email, booking.Phone, booking.Company,
		booking.Date, booking.Time, booking.ServiceInterest, booking.Message,
	)
	if m.Send(m.operatorEmail, opSubject, opBody, false) {
		sent = true
	}
	return sent
}

// InquiryAlert notifies the site operator about a new contact inquiry
// and sends the customer a thank-you. True when at least one message
// went out.
func (m *Mailer) InquiryAlert(inquiry *models.ContactInquiry) bool {
	opSubject := fmt.Sprintf("New contact inquiry from %s", inquiry.FullName)
	opBody := fmt.Sprintf(
		"New contact inquiry.\n\n"+
			"Name: %s\nEmail: %s\nPhone: %s\nCompany: %s\nService: %s\n\nMessage:\n%s\n",
		inquiry.FullName, inquiry.Email, inquiry.Phone, inquiry.Company,
		inquiry.ServiceInterest, inquiry.Message,
	)
	sent := m.Send(m.operatorEmail, opSubject, opBody, false)

	customerBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>We received your message</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Thanks for reaching out</h2>
    <p>Hi %s,</p>
    <p>We received your message and will get back to you within one business day.</p>
    <p>BizDesk Advisory</p>
  </div>
</div>
</body>
</html>`,
		inquiry.FullName,
	)
	if m.Send(inquiry.Email, "We received your message", customerBody, true) {
		sent = true
	}
	return sent
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
