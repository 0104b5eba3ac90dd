// Package csvrecords parses CSV files in the flat record shapes used by the
// import and export endpoints. Files exported by other tools are accepted
// too: the delimiter is sniffed, headers match case-insensitively including
// French aliases, and decimal commas are normalized.
package csvrecords

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletwise/backend/internal/importer"
)

// dateLayouts are tried in order when parsing dates.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02/01/2006",
}

var errNoHeader = errors.New("the file does not contain a header line")

// Transactions parses a transaction CSV. Expected columns: Date,
// Description, Amount (or Montant), Type, Category (or Catégorie); column
// order does not matter and unknown columns are ignored.
func Transactions(f io.Reader) ([]importer.TransactionRecord, error) {
	doc, err := read(f)
	if err != nil {
		return nil, err
	}

	records := make([]importer.TransactionRecord, 0, len(doc.rows))
	for i, row := range doc.rows {
		record := importer.TransactionRecord{
			Description: doc.field(row, "description"),
			Type:        doc.field(row, "type"),
			Category:    doc.fields(row, "category", "catégorie", "categorie"),
		}

		record.Date, err = parseDate(doc.field(row, "date"))
		if err != nil {
			return nil, rowError(i, err)
		}

		amount := doc.fields(row, "amount", "montant")
		if amount == "" {
			return nil, rowError(i, errors.New("no amount is set for the transaction"))
		}

		record.Amount, err = parseDecimal(amount)
		if err != nil {
			return nil, rowError(i, err)
		}

		records = append(records, record)
	}

	return records, nil
}

// Categories parses a category CSV with a Name (or Nom) column.
func Categories(f io.Reader) ([]importer.CategoryRecord, error) {
	doc, err := read(f)
	if err != nil {
		return nil, err
	}

	records := make([]importer.CategoryRecord, 0, len(doc.rows))
	for _, row := range doc.rows {
		records = append(records, importer.CategoryRecord{
			Name: doc.fields(row, "name", "nom"),
		})
	}

	return records, nil
}

// Wallets parses a wallet CSV with a Balance column.
func Wallets(f io.Reader) ([]importer.WalletRecord, error) {
	doc, err := read(f)
	if err != nil {
		return nil, err
	}

	records := make([]importer.WalletRecord, 0, len(doc.rows))
	for i, row := range doc.rows {
		var record importer.WalletRecord

		balance := doc.field(row, "balance")
		if balance != "" {
			value, err := parseDecimal(balance)
			if err != nil {
				return nil, rowError(i, err)
			}
			record.Balance = decimal.NewNullDecimal(value)
		}

		records = append(records, record)
	}

	return records, nil
}

// Goals parses a goal CSV with Title, TargetAmount, CurrentSaved and
// Deadline columns.
func Goals(f io.Reader) ([]importer.GoalRecord, error) {
	doc, err := read(f)
	if err != nil {
		return nil, err
	}

	records := make([]importer.GoalRecord, 0, len(doc.rows))
	for i, row := range doc.rows {
		record := importer.GoalRecord{
			Title: doc.fields(row, "title", "titre"),
		}

		target := doc.field(row, "targetamount")
		if target != "" {
			record.TargetAmount, err = parseDecimal(target)
			if err != nil {
				return nil, rowError(i, err)
			}
		}

		saved := doc.field(row, "currentsaved")
		if saved != "" {
			value, err := parseDecimal(saved)
			if err != nil {
				return nil, rowError(i, err)
			}
			record.CurrentSaved = decimal.NewNullDecimal(value)
		}

		record.Deadline, err = parseDate(doc.field(row, "deadline"))
		if err != nil {
			return nil, rowError(i, err)
		}

		records = append(records, record)
	}

	return records, nil
}

// document is a parsed CSV file with a column index by lowercased header.
type document struct {
	columns map[string]int
	rows    [][]string
}

// field returns the trimmed value of the named column, or "" when the
// column does not exist.
func (d document) field(row []string, name string) string {
	i, ok := d.columns[name]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

// fields returns the first non-empty value among several header aliases.
func (d document) fields(row []string, names ...string) string {
	for _, name := range names {
		value := d.field(row, name)
		if value != "" {
			return value
		}
	}

	return ""
}

// read loads the whole file, sniffs the delimiter from the header line and
// indexes the columns.
func read(f io.Reader) (document, error) {
	raw, err := io.ReadAll(f)
	if err != nil {
		return document{}, err
	}

	// Strip a BOM if present
	raw = bytes.TrimPrefix(raw, []byte("\uFEFF"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return document{}, errNoHeader
	}
	if err != nil {
		return document{}, fmt.Errorf("could not read the header line: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return document{}, fmt.Errorf("could not read line in CSV: %w", err)
		}

		if blank(row) {
			continue
		}

		rows = append(rows, append([]string(nil), row...))
	}

	return document{columns: columns, rows: rows}, nil
}

// sniffDelimiter picks the delimiter that splits the header line into more
// fields. Semicolon-delimited files are common for spreadsheet exports in
// locales that use the decimal comma. A header without any candidate
// delimiter is a single-column file; semicolon is used then so that decimal
// commas in the data rows do not split the column.
func sniffDelimiter(raw []byte) rune {
	header := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		header = raw[:i]
	}

	commas := bytes.Count(header, []byte(","))
	semicolons := bytes.Count(header, []byte(";"))

	if commas > semicolons {
		return ','
	}

	return ';'
}

func blank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}

// parseDecimal parses a decimal, accepting "12,50" as well as "12.50".
func parseDecimal(s string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q could not be parsed to a decimal", s)
	}

	return value, nil
}

// parseDate parses a date in one of the accepted layouts. An empty value
// parses to nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			t = t.In(time.UTC)
			return &t, nil
		}
	}

	return nil, fmt.Errorf("%q could not be parsed to a date", s)
}

// rowError adds the data row number to a parse error. The header is line 1,
// data rows start at line 2.
func rowError(i int, err error) error {
	return fmt.Errorf("error in line %d of the CSV: %w", i+2, err)
}
