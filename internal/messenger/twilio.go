package messenger

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// Twilio sends WhatsApp messages through the Twilio REST API and validates
// inbound webhook signatures.
type Twilio struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	apiBase    string
	log        zerolog.Logger
}

// NewTwilio creates the live transport variant.
func NewTwilio(accountSID, authToken, whatsappNumber string, log zerolog.Logger) *Twilio {
	return &Twilio{
		accountSID: accountSID,
		authToken:  authToken,
		from:       whatsappNumber,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBase:    twilioAPIBase,
		log:        log,
	}
}

// Send implements the Messenger interface.
func (t *Twilio) Send(ctx context.Context, to, body string) Receipt {
	form := url.Values{}
	form.Set("From", "whatsapp:"+t.from)
	form.Set("To", "whatsapp:"+strings.TrimPrefix(to, "whatsapp:"))
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.apiBase, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return t.errorReceipt(to, body, err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return t.errorReceipt(to, body, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return t.errorReceipt(to, body, fmt.Errorf("twilio responded %s", resp.Status))
	}

	var payload struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return t.errorReceipt(to, body, fmt.Errorf("decode response: %w", err))
	}

	t.log.Info().Str("sid", payload.SID).Str("to", to).Msg("Message sent")
	return Receipt{SID: payload.SID, Status: payload.Status, To: to, Body: body}
}

func (t *Twilio) errorReceipt(to, body string, err error) Receipt {
	t.log.Error().Err(err).Str("to", to).Msg("Failed to send message")
	return Receipt{
		SID:    "ERROR-" + uuid.New().String(),
		Status: "error",
		To:     to,
		Body:   body,
		Error:  err.Error(),
	}
}

// Validate implements the Validator interface. Twilio signs the request
// URL concatenated with every POST parameter, keys sorted, HMAC-SHA1 with
// the auth token, base64 encoded.
func (t *Twilio) Validate(signature, requestURL string, params url.Values) bool {
	expected := signPayload(t.authToken, requestURL, params)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func signPayload(authToken, requestURL string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(requestURL)
	for _, k := range keys {
		for _, v := range params[k] {
			b.WriteString(k)
			b.WriteString(v)
		}
	}

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
