package sales

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedbike/speedbike/internal/payments"
)

func TestWriteCSV(t *testing.T) {
	view := SaleView{
		Sale: Sale{
			InvoiceNumber:   "12/2025",
			Date:            "2025-07-10",
			Designation:     "CG 125",
			TypeClient:      "Particulier",
			NomPrenom:       "Haddad Yacine",
			NumeroChassis:   "CH123",
			Immatriculation: "1234-125-16",
			CarteGrise:      CarteGriseEnCours,
			TotalToPay:      250000,
			Advance:         100000,
			Payments: map[string]payments.Obligation{
				"juillet_2025": {Amount: 50000, IsPaid: true},
				"aout_2025":    {Amount: 50000},
			},
		},
		Credit: 150000,
		Totals: payments.Totals{Paid: 50000, DueCredit: 100000, PastDue: 50000},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []SaleView{view}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeff"))

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	require.Len(t, header, len(exportHeaders)+31)
	assert.Equal(t, "N° Facture", header[0])
	assert.Equal(t, "Echu", header[11])
	assert.Equal(t, "juillet 2025", header[12])
	assert.Equal(t, "janvier 2028", header[len(header)-1])

	row := records[1]
	assert.Equal(t, "12/2025", row[0])
	assert.Equal(t, "250000", row[8])
	// the Crédit column carries the ledger residual, net of paid installments
	assert.Equal(t, "100000", row[10])
	assert.Equal(t, "50000", row[11])
	assert.Equal(t, "50000 (PAYÉ)", row[12])
	assert.Equal(t, "50000 (NON PAYÉ)", row[13])
	assert.Equal(t, "0 (NON PAYÉ)", row[14])
	assert.Equal(t, "0 (NON PAYÉ)", row[len(row)-1])
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "0 (NON PAYÉ)", formatCell(payments.Obligation{}))
	assert.Equal(t, "0 (PAYÉ)", formatCell(payments.Obligation{IsPaid: true}))
	assert.Equal(t, "1200.5 (NON PAYÉ)", formatCell(payments.Obligation{Amount: 1200.5}))
}
