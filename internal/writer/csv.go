// Package writer serializes parsed statements to delimited output.
package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/metwallusion/BankStatement/internal/models"
)

// csvRow maps one transaction to the output columns.
type csvRow struct {
	Row    int    `csv:"Row #"`
	Date   string `csv:"Date"`
	Amount string `csv:"Amount"`
	Memo   string `csv:"Memo"`
}

// CSVWriter writes statements as CSV: row number, date as M/D/YYYY with no
// zero padding, signed two-decimal amount with no currency symbol, memo.
type CSVWriter struct{}

// Write writes the statement's transactions to out.
func (w *CSVWriter) Write(out io.Writer, stmt *models.Statement) error {
	rows := make([]csvRow, 0, len(stmt.Transactions))
	for i, tx := range stmt.Transactions {
		rows = append(rows, csvRow{
			Row:    i + 1,
			Date:   tx.DateString(),
			Amount: formatAmount(tx.Amount),
			Memo:   tx.Memo,
		})
	}
	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("csv marshal: %w", err)
	}
	return nil
}

// WriteToFile writes the statement as CSV at path.
func (w *CSVWriter) WriteToFile(path string, stmt *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()
	return w.Write(f, stmt)
}

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
