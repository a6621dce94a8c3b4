package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
)

const resendEndpoint = "https://api.resend.com/emails"

// Notifier delivers operator alerts over transactional email and mirrors them
// to Sentry. Both channels degrade to a log line when unconfigured so
// maintenance jobs keep working on a bare host.
type Notifier struct {
	apiKey     string
	from       string
	recipients []string
	client     *http.Client
}

func NewNotifier(conf *appconfig.Config) *Notifier {
	return &Notifier{
		apiKey:     conf.ResendAPIKey,
		from:       conf.DefaultFromEmail,
		recipients: conf.AlertRecipients,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// SendAlert emails the operators and records the event in Sentry. The email
// error is returned; Sentry capture is fire-and-forget.
func (n *Notifier) SendAlert(ctx context.Context, subject, body string) error {
	sentry.CaptureMessage(subject + ": " + body)

	if n.apiKey == "" || len(n.recipients) == 0 {
		log.Warn().Str("subject", subject).Msg("alert email skipped: notifier not configured")
		return nil
	}

	payload, err := json.Marshal(resendPayload{
		From:    n.from,
		To:      n.recipients,
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal alert email")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build alert email request")
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to deliver alert email")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errors.Errorf("alert email rejected: %s", resp.Status)
	}

	log.Info().Str("subject", subject).Int("recipients", len(n.recipients)).Msg("alert email sent")
	return nil
}

// NotifyFailure is the common path for failed maintenance actions.
func (n *Notifier) NotifyFailure(ctx context.Context, action string, cause error) {
	subject := fmt.Sprintf("[tracker] %s failed", action)
	if err := n.SendAlert(ctx, subject, cause.Error()); err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to send failure alert")
	}
}
