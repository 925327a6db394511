// Package messenger delivers outbound text to a conversation partner over
// the WhatsApp transport and authenticates inbound webhooks.
package messenger

import (
	"context"
	"net/url"
)

// Receipt is the outcome of one delivery attempt. Failed deliveries carry
// a synthetic receipt with Status "error"; they are never surfaced as
// errors to the caller.
type Receipt struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
	Body   string `json:"body"`
	Error  string `json:"error,omitempty"`
}

// Messenger sends one message to one recipient. Implementations log
// failures and return a synthetic error receipt; a confirmed transaction
// is never rolled back because its receipt could not be delivered.
type Messenger interface {
	Send(ctx context.Context, to, body string) Receipt
}

// Validator authenticates an inbound webhook request against the raw
// request parameters before any state-machine logic runs.
type Validator interface {
	Validate(signature, requestURL string, params url.Values) bool
}
