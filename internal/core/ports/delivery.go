package ports

import "context"

// Mailer delivers one-time secrets out-of-band. Implementations must never
// persist the raw values they are handed.
type Mailer interface {
	SendInvite(ctx context.Context, to, name, rawToken string) error
	SendResetCode(ctx context.Context, to, name, code string) error
}

// Notifier posts events to the staff chat channel.
type Notifier interface {
	StaffJoined(ctx context.Context, barID *int64, name string) error
}
