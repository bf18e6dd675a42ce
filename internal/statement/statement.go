// Package statement parses credit-card statement CSV exports into canonical
// transactions on the card channel.
package statement

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/normalize"
	"finsignal/txengine/internal/txerrors"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// StatementRow represents a single row in a statement CSV export.
type StatementRow struct {
	Date       string `csv:"Date"`
	Merchant   string `csv:"Merchant"`
	Amount     string `csv:"Amount"`
	Currency   string `csv:"Currency"`
	CardEnding string `csv:"Card"`
	Notes      string `csv:"Notes"`
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
	"02-01-2006",
}

// Parse reads statement rows from a reader and converts them to
// transactions. Rows that cannot be converted are logged and skipped; the
// rest of the file still imports.
func Parse(r io.Reader, householdID, localCurrency string, logger logging.Logger) ([]models.CanonicalTransaction, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	var rows []*StatementRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("error reading statement CSV: %w", err)
	}

	var transactions []models.CanonicalTransaction
	for _, row := range rows {
		if row.Date == "" {
			continue
		}
		tx, err := convertRow(*row, householdID, localCurrency)
		if err != nil {
			logger.WithError(err).Warn("Failed to convert statement row, skipping")
			continue
		}
		transactions = append(transactions, tx)
	}

	logger.Info("Parsed statement CSV",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldHousehold, Value: householdID})
	return transactions, nil
}

// ParseFile parses a statement CSV file.
func ParseFile(filePath, householdID, localCurrency string, logger logging.Logger) ([]models.CanonicalTransaction, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f, householdID, localCurrency, logger)
}

func convertRow(row StatementRow, householdID, localCurrency string) (models.CanonicalTransaction, error) {
	date, err := parseDate(row.Date)
	if err != nil {
		return models.CanonicalTransaction{}, &txerrors.ExtractionError{
			Provider: "statement", Field: "date", Value: row.Date, Err: err,
		}
	}

	raw := strings.ReplaceAll(strings.TrimSpace(row.Amount), ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return models.CanonicalTransaction{}, &txerrors.ExtractionError{
			Provider: "statement", Field: "amount", Value: row.Amount, Err: err,
		}
	}

	txType := models.TypeExpense
	if amount.IsNegative() {
		// Statement credits (refunds, cash-back) come through negative.
		txType = models.TypeIncome
	}

	currency := strings.ToUpper(strings.TrimSpace(row.Currency))
	if currency == "" {
		currency = localCurrency
	}

	merchant := strings.TrimSpace(row.Merchant)
	return models.CanonicalTransaction{
		HouseholdID:        householdID,
		Date:               date,
		Merchant:           merchant,
		NormalizedMerchant: normalize.Merchant(merchant),
		Amount:             models.NewMoney(amount.Abs(), currency),
		Type:               txType,
		Channel:            models.ChannelCard,
		CardEnding:         strings.TrimSpace(row.CardEnding),
		Status:             models.StatusProvisional,
		Notes:              strings.TrimSpace(row.Notes),
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}
