package worker

// Processes email jobs from QueueEmail: welcome emails after
// registration and purchase confirmations after checkout.

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Pili-73/Libreria-Pier/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailWorker sends queued emails via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email job. A returned error sends the job to the DLQ.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return err
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return errors.New("empty to_email")
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent")
	return nil
}
