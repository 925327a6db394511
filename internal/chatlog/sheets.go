package chatlog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Row layout of the chat log sheet:
// A timestamp (RFC3339), B sender, C message, D bot response.
const (
	chatLogRange = "ChatLog!A:D"
	chatLogRows  = "ChatLog!A2:D"
)

// Sheets appends chat exchanges to a spreadsheet tab.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

// NewSheets creates a spreadsheet-backed chat log.
func NewSheets(ctx context.Context, spreadsheetID, clientEmail, privateKey string, log zerolog.Logger) (*Sheets, error) {
	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("chatlog: create sheets service: %w", err)
	}

	return &Sheets{svc: svc, spreadsheetID: spreadsheetID, log: log}, nil
}

// Record implements the Log interface.
func (s *Sheets) Record(ctx context.Context, entry Entry) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			entry.Timestamp.Format(time.RFC3339),
			entry.Sender,
			entry.Message,
			entry.Response,
		}},
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, chatLogRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("chatlog: append row: %w", err)
	}
	return nil
}

// Recent implements the Log interface.
func (s *Sheets) Recent(ctx context.Context, limit int) ([]Entry, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, chatLogRows).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("chatlog: read rows: %w", err)
	}

	var entries []Entry
	for _, row := range resp.Values {
		if len(row) < 4 {
			continue
		}
		ts, err := time.Parse(time.RFC3339, fmt.Sprintf("%v", row[0]))
		if err != nil {
			s.log.Warn().Err(err).Msg("Skipping chat log row with bad timestamp")
			continue
		}
		entries = append(entries, Entry{
			Timestamp: ts,
			Sender:    fmt.Sprintf("%v", row[1]),
			Message:   fmt.Sprintf("%v", row[2]),
			Response:  fmt.Sprintf("%v", row[3]),
		})
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

var _ Log = (*Sheets)(nil)
