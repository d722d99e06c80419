package mailer

import (
	"context"
	"log"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/maillog"
)

type Provider interface {
	Send(ctx context.Context, from, to, subject, html string) error
}

type AttemptLog interface {
	Insert(ctx context.Context, e maillog.Entry) error
}

// Dispatcher renders and sends one email per call and records exactly one
// email_logs row per attempt, success or failure. There is no automatic
// re-send; a failed row is the retry signal for an operator.
type Dispatcher struct {
	Provider Provider
	Log      AttemptLog
	From     string
}

// Send returns the provider error for the caller's information, but the
// outcome is already fully recorded by then. Callers in the order pipeline
// only log it.
func (d *Dispatcher) Send(ctx context.Context, t maillog.Type, to string, data map[string]any) error {
	subject, html, err := Render(t, data)
	if err == nil {
		err = d.Provider.Send(ctx, d.From, to, subject, html)
	}

	entry := maillog.Entry{EmailType: t, Recipient: to, Status: maillog.StatusSent}
	if err != nil {
		entry.Status = maillog.StatusFailed
		entry.ErrorMessage = err.Error()
	}
	// A log-write failure must not escalate: the email outcome stands on
	// its own and the order flow never depends on it.
	if logErr := d.Log.Insert(ctx, entry); logErr != nil {
		log.Printf("mailer: record %s attempt to %s: %v", t, to, logErr)
	}
	return err
}
