package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/hprasetyo/finbot/internal/domain"
)

// Row layout of the transactions sheet:
// A timestamp (RFC3339), B kind, C amount, D category, E description, F balance.
const (
	transactionsRange = "Transactions!A:F"
	transactionsRows  = "Transactions!A2:F"
	balanceColumn     = "Transactions!F2:F"
)

// Sheets is the spreadsheet-backed ledger, authenticated with a
// service-account JWT.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	log           zerolog.Logger

	now func() time.Time
}

// NewSheets creates a Sheets ledger for the given spreadsheet.
func NewSheets(ctx context.Context, spreadsheetID, clientEmail, privateKey string, log zerolog.Logger) (*Sheets, error) {
	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("ledger: create sheets service: %w", err)
	}

	return &Sheets{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		log:           log,
		now:           time.Now,
	}, nil
}

// Append implements the Ledger interface. The new running balance is
// previous balance plus or minus the amount, computed here at append time.
func (s *Sheets) Append(ctx context.Context, proposal domain.Proposal) (domain.Record, error) {
	balance, err := s.CurrentBalance(ctx)
	if err != nil {
		return domain.Record{}, err
	}

	record := domain.Record{
		Timestamp:   s.now(),
		Kind:        proposal.Kind,
		Amount:      proposal.Amount,
		Category:    proposal.Category,
		Description: proposal.Description,
	}
	record.Balance = balance.Add(record.Signed())

	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			record.Timestamp.Format(time.RFC3339),
			string(record.Kind),
			record.Amount.String(),
			record.Category,
			record.Description,
			record.Balance.String(),
		}},
	}

	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, transactionsRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return domain.Record{}, fmt.Errorf("ledger: append row: %w", err)
	}

	return record, nil
}

// CurrentBalance implements the Ledger interface. It reads only the
// balance column and takes the last value, so the query cost does not grow
// with ledger size on our side.
func (s *Sheets) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, balanceColumn).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("ledger: read balance column: %w", err)
	}

	for i := len(resp.Values) - 1; i >= 0; i-- {
		row := resp.Values[i]
		if len(row) == 0 {
			continue
		}
		balance, err := decimal.NewFromString(fmt.Sprintf("%v", row[0]))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("ledger: parse balance %q: %w", row[0], err)
		}
		return balance, nil
	}

	// Empty ledger.
	return decimal.Zero, nil
}

// MonthlyReport implements the Ledger interface.
func (s *Sheets) MonthlyReport(ctx context.Context, month time.Month, year int) ([]domain.Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, transactionsRows).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("ledger: read transactions: %w", err)
	}

	var records []domain.Record
	for _, row := range resp.Values {
		record, err := parseRow(row)
		if err != nil {
			s.log.Warn().Err(err).Msg("Skipping malformed ledger row")
			continue
		}
		if inMonth(record.Timestamp, month, year) {
			records = append(records, record)
		}
	}
	return records, nil
}

// CategoryTotals implements the Ledger interface.
func (s *Sheets) CategoryTotals(ctx context.Context, month time.Month, year int) (domain.CategoryTotals, error) {
	records, err := s.MonthlyReport(ctx, month, year)
	if err != nil {
		return domain.CategoryTotals{}, err
	}
	return totalsFromRecords(records), nil
}

func parseRow(row []interface{}) (domain.Record, error) {
	if len(row) < 6 {
		return domain.Record{}, fmt.Errorf("row has %d cells, want 6", len(row))
	}

	cell := func(i int) string { return fmt.Sprintf("%v", row[i]) }

	ts, err := time.Parse(time.RFC3339, cell(0))
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse timestamp: %w", err)
	}

	kind := domain.TransactionKind(cell(1))
	if !kind.Valid() {
		return domain.Record{}, fmt.Errorf("unknown kind %q", cell(1))
	}

	amount, err := decimal.NewFromString(cell(2))
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse amount: %w", err)
	}

	balance, err := decimal.NewFromString(cell(5))
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse balance: %w", err)
	}

	return domain.Record{
		Timestamp:   ts,
		Kind:        kind,
		Amount:      amount,
		Category:    cell(3),
		Description: cell(4),
		Balance:     balance,
	}, nil
}

var _ Ledger = (*Sheets)(nil)
