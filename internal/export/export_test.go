package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Dan9191/money-service/internal/models"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []models.Transaction{
	{ID: 2, Type: models.TypeExpense, Category: "Food", Amount: 12.5, Merchant: "Cafe, Downtown", Date: "2024-03-02", Time: "09:15"},
	{ID: 1, Type: models.TypeIncome, Category: "Salary", Amount: 1000, Merchant: "ACME", Date: "2024-03-01"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,type,category,amount,merchant,date,time", lines[0])
	assert.Equal(t, `2,expense,Food,12.5,"Cafe, Downtown",2024-03-02,09:15`, lines[1])
	assert.Equal(t, "1,income,Salary,1000,ACME,2024-03-01,", lines[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "id,type,category,amount,merchant,date,time\n", buf.String())
}

func TestBuildXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXML, sample))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	items := doc.FindElements("//transactions/transaction")
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].SelectAttrValue("id", ""))
	assert.Equal(t, "Cafe, Downtown", items[0].FindElement("./merchant").Text())
	assert.Equal(t, "1000", items[1].FindElement("./amount").Text())
}

func TestContentType(t *testing.T) {
	mime, name, err := ContentType("")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", mime)
	assert.Equal(t, "transactions.csv", name)

	mime, _, err = ContentType(FormatXML)
	require.NoError(t, err)
	assert.Equal(t, "application/xml", mime)

	_, _, err = ContentType("pdf")
	assert.Error(t, err)
	assert.Error(t, Write(&bytes.Buffer{}, "pdf", nil))
}
