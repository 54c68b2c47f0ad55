package utils

import (
	"bytes"
	"log"
	"net"
	"os"
	"testing"
	"time"

	"bizdesk-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog redirects the standard logger so tests can inspect the mock
// send lines an unconfigured mailer writes.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestInquiryAlertReachesOperatorAndCustomer(t *testing.T) {
	buf := captureLog(t)
	m := &Mailer{operatorEmail: "ops@bizdesk.example"}
	inquiry := &models.ContactInquiry{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Message:  "Need help with GST registration",
	}

	assert.True(t, m.InquiryAlert(inquiry))

	out := buf.String()
	assert.Contains(t, out, "to:ops@bizdesk.example")
	assert.Contains(t, out, "to:asha@example.com")
}

func TestInquiryAlertWithoutOperatorStillThanksCustomer(t *testing.T) {
	buf := captureLog(t)
	m := &Mailer{}
	inquiry := &models.ContactInquiry{FullName: "Asha Rao", Email: "asha@example.com"}

	assert.True(t, m.InquiryAlert(inquiry))
	assert.Contains(t, buf.String(), "to:asha@example.com")
}

func TestBookingConfirmationReachesCustomerAndOperator(t *testing.T) {
	buf := captureLog(t)
	m := &Mailer{operatorEmail: "ops@bizdesk.example"}
	booking := &models.ConsultationBooking{
		FullName:        "Asha Rao",
		Email:           "asha@example.com",
		Date:            "2026-09-07",
		Time:            "10:00",
		ServiceInterest: "company-registration",
	}

	assert.True(t, m.BookingConfirmation(booking))

	out := buf.String()
	assert.Contains(t, out, "to:asha@example.com")
	assert.Contains(t, out, "to:ops@bizdesk.example")
}

// A mail server that accepts the connection and then goes silent must not
// hold the caller past the mailer timeout.
func TestSendGivesUpOnStalledServer(t *testing.T) {
	buf := captureLog(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		// hold the connection open without ever sending a greeting
		<-done
		conn.Close()
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	m := &Mailer{
		host:     host,
		port:     port,
		username: "user",
		password: "pass",
		fromName: "Test",
		timeout:  200 * time.Millisecond,
	}

	start := time.Now()
	ok := m.Send("someone@example.com", "Subject", "body", false)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Contains(t, buf.String(), "Failed to send email")
}
