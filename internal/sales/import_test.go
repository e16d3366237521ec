package sales

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Legacy spreadsheet shape: a title row, the fixed column header row, then
// a separate month header row naming the advance and schedule columns.
const importFixture = `Registre des ventes,,,,,,,,,
N° Facture,Date,Désignation,Type Client,Nom/Prénom,N° Chassis,Immatriculation,Carte Grise,,,,
,,,,,,,,AVANCE,juillet 2025,Aout 2025,Dècembre 2025
12/2025,10/07/2025,CG 125,Particulier,Haddad Yacine,CH123,1234-125-16,RECUPEREE,100000,25000,25 000,"12500,50"
13/2025,2/8/2025,CG 150,,Benali Karim,,,IMPOT,50000,10000+5000,,
FAC-99,01/07/2025,Invalide,,X,,,,1,,,
junk
14/2025,15/07/2025,HJ 200,,Saidi Omar,,,,0,,,
`

func TestImportCSV(t *testing.T) {
	repo := newMemorySalesRepo()
	notifier := &memoryNotifier{}
	svc := NewService(repo, notifier)

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(importFixture))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Added)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "FAC-99")
	assert.Contains(t, result.Errors[1], "colonnes insuffisantes")

	sales, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 3)

	byInvoice := make(map[string]Sale)
	for _, s := range sales {
		byInvoice[s.InvoiceNumber] = s
	}

	first := byInvoice["12/2025"]
	assert.Equal(t, "2025-07-10", first.Date)
	assert.Equal(t, CarteGriseRecuperee, first.CarteGrise)
	assert.Equal(t, "Particulier", first.TypeClient)
	assert.Equal(t, float64(100000), first.Advance)
	// advance + 25000 + 25000 + 12501 (comma decimal rounded)
	assert.Equal(t, float64(162501), first.TotalToPay)
	assert.Equal(t, 1, first.PaymentDay)
	require.Len(t, first.Payments, 3)
	assert.True(t, first.Payments["juillet_2025"].IsPaid)
	// the accented "Dècembre 2025" header still resolves to its grid key
	assert.Equal(t, float64(12501), first.Payments["decembre_2025"].Amount)

	second := byInvoice["13/2025"]
	assert.Equal(t, "2025-08-02", second.Date)
	assert.Equal(t, CarteGriseImpot, second.CarteGrise)
	assert.Equal(t, "B2C", second.TypeClient)
	// "10000+5000" sums to one obligation
	assert.Equal(t, float64(15000), second.Payments["juillet_2025"].Amount)
	assert.Equal(t, float64(65000), second.TotalToPay)

	third := byInvoice["14/2025"]
	assert.Equal(t, "2025-07-15", third.Date)
	assert.Equal(t, CarteGriseEnCours, third.CarteGrise)
	assert.Empty(t, third.Payments)

	require.Len(t, notifier.records, 1)
	assert.Equal(t, "IMPORT CSV", notifier.records[0].action)
	assert.Equal(t, "3 ventes", notifier.records[0].target)
}

func TestImportCSVSkipsDuplicates(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo, nil)

	in := validInput() // 12/2025
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(importFixture))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 3, result.Skipped)
}

func TestImportCSVMissingHeaders(t *testing.T) {
	svc := NewService(newMemorySalesRepo(), nil)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("a,b,c\n1,2,3\n"))
	require.Error(t, err)

	// column header present, month header missing
	_, err = svc.ImportCSV(context.Background(), strings.NewReader("N° Facture,Date\n12/2025,10/07/2025\n"))
	require.Error(t, err)
}

func TestParseImportNumber(t *testing.T) {
	assert.Equal(t, float64(0), parseImportNumber(""))
	assert.Equal(t, float64(25000), parseImportNumber("25 000"))
	assert.Equal(t, 12500.5, parseImportNumber("12500,50"))
	assert.Equal(t, float64(15000), parseImportNumber("10000+5000"))
	assert.Equal(t, float64(0), parseImportNumber("n/a"))
}

func TestParseImportDate(t *testing.T) {
	assert.Equal(t, "2025-07-10", parseImportDate("10/07/2025"))
	assert.Equal(t, "2025-08-02", parseImportDate("2/8/2025"))
	assert.Equal(t, "2025-07-10", parseImportDate("2025-07-10"))
	assert.Equal(t, "", parseImportDate(""))
}

func TestParseImportStatusDefaults(t *testing.T) {
	assert.Equal(t, CarteGriseEnCours, parseImportStatus(""))
	assert.Equal(t, CarteGriseEnCours, parseImportStatus("CARTE GRISE"))
	assert.Equal(t, CarteGriseRecuperee, parseImportStatus("RECUPEREE"))
	assert.Equal(t, CarteGriseADeposer, parseImportStatus("DEPOSEE"))
	assert.Equal(t, CarteGriseImpot, parseImportStatus("IMPOT"))
}
