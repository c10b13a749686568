// Package export renders a user's transactions as downloadable documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Dan9191/money-service/internal/models"
	"github.com/beevik/etree"
)

const (
	FormatCSV = "csv"
	FormatXML = "xml"
)

// Columns is the fixed CSV column order.
var Columns = []string{"id", "type", "category", "amount", "merchant", "date", "time"}

func record(t models.Transaction) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Type,
		t.Category,
		strconv.FormatFloat(t.Amount, 'f', -1, 64),
		t.Merchant,
		t.Date,
		t.Time,
	}
}

// WriteCSV writes a header row followed by one row per transaction.
func WriteCSV(w io.Writer, txs []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range txs {
		if err := cw.Write(record(t)); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildXML renders <transactions><transaction id="..">..</transaction></transactions>.
func BuildXML(txs []models.Transaction) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("transactions")
	for _, t := range txs {
		el := root.CreateElement("transaction")
		values := record(t)
		el.CreateAttr(Columns[0], values[0])
		for i := 1; i < len(Columns); i++ {
			el.CreateElement(Columns[i]).SetText(values[i])
		}
	}
	doc.Indent(2)
	return doc
}

// WriteXML writes the XML rendering of txs.
func WriteXML(w io.Writer, txs []models.Transaction) error {
	if _, err := BuildXML(txs).WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xml: %w", err)
	}
	return nil
}

// ContentType returns the MIME type and download filename for a format.
func ContentType(format string) (mime, filename string, err error) {
	switch format {
	case "", FormatCSV:
		return "text/csv", "transactions.csv", nil
	case FormatXML:
		return "application/xml", "transactions.xml", nil
	default:
		return "", "", fmt.Errorf("unsupported export format %q", format)
	}
}

// Write renders txs in the given format.
func Write(w io.Writer, format string, txs []models.Transaction) error {
	switch format {
	case "", FormatCSV:
		return WriteCSV(w, txs)
	case FormatXML:
		return WriteXML(w, txs)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
