// Package notification carries outbound event descriptors from the lifecycle
// core to whatever delivers them. The core only decides that a notification
// is due and what data it carries; delivery failure never rolls back the
// transition that triggered it.
package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Event kinds emitted after successful transitions
const (
	EventRequestSubmitted = "REQUEST_SUBMITTED"
	EventRequestApproved  = "REQUEST_APPROVED"
	EventRequestRejected  = "REQUEST_REJECTED"
	EventPickupAssigned   = "PICKUP_ASSIGNED"
	EventPickupConfirmed  = "PICKUP_CONFIRMED"
	EventCompletionCode   = "COMPLETION_CODE"
	EventRequestCompleted = "REQUEST_COMPLETED"
)

// Event is the descriptor handed to a Dispatcher after a transition commits.
type Event struct {
	Kind      string
	RequestID uuid.UUID
	Recipient string
	Data      map[string]string
}

// Dispatcher delivers one event. Implementations own transport and failure
// handling; callers fire and forget.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) error
}

var subjects = map[string]string{
	EventRequestSubmitted: "Request Confirmation",
	EventRequestApproved:  "Request Approved",
	EventRequestRejected:  "Request Rejected",
	EventPickupAssigned:   "New Pickup Assigned",
	EventPickupConfirmed:  "Pickup Scheduled",
	EventCompletionCode:   "Code for Pickup Completion",
	EventRequestCompleted: "Pickup Completed & Payment Credited",
}

// Subject returns the mail subject line for an event kind.
func Subject(kind string) string {
	if s, ok := subjects[kind]; ok {
		return s
	}
	return kind
}

// Body renders a plain-text body from the event data, keys sorted for a
// stable layout.
func Body(ev Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nRequest: %s\n", Subject(ev.Kind), ev.RequestID)

	keys := make([]string, 0, len(ev.Data))
	for k := range ev.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, ev.Data[k])
	}
	return b.String()
}

// SMTPDispatcher sends events as plain-text email over SMTP.
type SMTPDispatcher struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

func NewSMTPDispatcher(host, port, from, username, password string) *SMTPDispatcher {
	return &SMTPDispatcher{Host: host, Port: port, From: from, Username: username, Password: password}
}

func (d *SMTPDispatcher) Dispatch(_ context.Context, ev Event) error {
	if ev.Recipient == "" {
		return fmt.Errorf("event %s for request %s has no recipient", ev.Kind, ev.RequestID)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		d.From, ev.Recipient, Subject(ev.Kind), Body(ev))

	var auth smtp.Auth
	if d.Username != "" {
		auth = smtp.PlainAuth("", d.Username, d.Password, d.Host)
	}

	addr := d.Host + ":" + d.Port
	if err := smtp.SendMail(addr, auth, d.From, []string{ev.Recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", ev.Recipient, err)
	}
	return nil
}
