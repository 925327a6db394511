package messenger

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Mock is the transport variant used when Twilio credentials are absent.
// Sends are logged instead of delivered and every webhook validates.
type Mock struct {
	log zerolog.Logger
}

// NewMock creates the mock transport variant.
func NewMock(log zerolog.Logger) *Mock {
	return &Mock{log: log}
}

// Send implements the Messenger interface.
func (m *Mock) Send(_ context.Context, to, body string) Receipt {
	m.log.Info().Str("to", to).Str("body", body).Msg("Mock message sent")
	return Receipt{
		SID:    "MOCK-" + uuid.New().String(),
		Status: "sent",
		To:     to,
		Body:   body,
	}
}

// Validate implements the Validator interface.
func (m *Mock) Validate(_, _ string, _ url.Values) bool {
	return true
}
