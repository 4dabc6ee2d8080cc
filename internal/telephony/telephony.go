// Package telephony talks to the external provider that places calls,
// performs speech-to-text, and drives this service's webhooks.
package telephony

import "context"

// CallRequest describes an outbound call to place.
type CallRequest struct {
	To                string
	From              string
	VoiceURL          string
	StatusCallbackURL string
	StatusEvents      []string
}

// Call is the provider's record of a placed call.
type Call struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Dialer places outbound calls.
type Dialer interface {
	CreateCall(ctx context.Context, req CallRequest) (*Call, error)
}
