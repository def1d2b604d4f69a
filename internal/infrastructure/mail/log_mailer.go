// Package mail holds the outbound mail collaborator. Real delivery sits
// behind ports.Mailer; LogMailer is the development implementation that
// writes the message to the log instead of a mailbox.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/barcrafted/bar-system/internal/core/ports"
)

// LogMailer logs outbound mail. The raw secret appears in the invite link
// exactly once and is never stored.
type LogMailer struct {
	baseURL string
	log     zerolog.Logger
}

// NewLogMailer creates a LogMailer building invite links on baseURL.
func NewLogMailer(baseURL string, log zerolog.Logger) *LogMailer {
	return &LogMailer{baseURL: baseURL, log: log}
}

func (m *LogMailer) SendInvite(_ context.Context, to, name, rawToken string) error {
	m.log.Info().
		Str("to", to).
		Str("name", name).
		Str("link", fmt.Sprintf("%s/invite/%s", m.baseURL, rawToken)).
		Msg("invite mail")
	return nil
}

func (m *LogMailer) SendResetCode(_ context.Context, to, name, code string) error {
	m.log.Info().
		Str("to", to).
		Str("name", name).
		Str("code", code).
		Msg("password reset mail")
	return nil
}

var _ ports.Mailer = (*LogMailer)(nil)
