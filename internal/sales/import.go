package sales

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/speedbike/speedbike/internal/payments"
	"github.com/speedbike/speedbike/internal/shared"
)

const importBatchSize = 50

// Fixed column positions of the legacy spreadsheet. Month columns follow
// the advance and are resolved by name from the month header row.
const (
	colInvoice = iota
	colDate
	colDesignation
	colTypeClient
	colNomPrenom
	colChassis
	colImmatriculation
	colCarteGrise
	colAdvance
)

const importMinColumns = 8

// ImportCSV loads the legacy comma separated spreadsheet into the sales
// table. The file carries two header rows: one naming the fixed columns
// ("N° Facture", "Date", ...) and one naming the advance and month columns
// ("AVANCE", "juillet 2025", ...). Rows whose invoice number is malformed
// or already present are skipped and reported, never fatal.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sales: read csv: %w", err)
	}

	layout, err := findImportLayout(records)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ExistingInvoices(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	var batch []*Sale
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			return err
		}
		result.Added += len(batch)
		batch = nil
		return nil
	}

	for i := layout.dataStart; i < len(records); i++ {
		if i == layout.monthRow {
			continue
		}
		row := records[i]
		if rowBlank(row) {
			continue
		}
		result.Total++

		if len(row) < importMinColumns {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("ligne %d: colonnes insuffisantes (%d)", i+1, len(row)))
			continue
		}
		invoice := strings.TrimSpace(row[colInvoice])
		date := strings.TrimSpace(cell(row, colDate))
		if invoice == "" || date == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("ligne %d: numéro de facture ou date manquant", i+1))
			continue
		}
		if !ValidInvoiceNumber(invoice) {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("ligne %d: numéro de facture invalide %q", i+1, invoice))
			continue
		}
		if existing[invoice] {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("ligne %d: facture %s déjà présente", i+1, invoice))
			continue
		}
		existing[invoice] = true

		batch = append(batch, layout.buildSale(row, invoice))
		if len(batch) >= importBatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if result.Added > 0 && s.notifier != nil {
		s.notifier.Record(ctx, "IMPORT CSV", fmt.Sprintf("%d ventes", result.Added), "Import de fichier CSV")
	}
	return result, nil
}

type importLayout struct {
	dataStart int
	monthRow  int
	months    map[int]string // column index -> grid key
}

// findImportLayout locates the column header row and the month header row.
// Header text is folded before matching so accent variants like
// "Dècembre 2025" still resolve to their grid key.
func findImportLayout(records [][]string) (importLayout, error) {
	headerRow, monthRow := -1, -1
	for i, row := range records {
		joined := shared.Fold(strings.Join(row, ","))
		if strings.Contains(joined, "facture") && strings.Contains(joined, "date") {
			headerRow = i
		}
		if strings.Contains(joined, "avance") && strings.Contains(joined, "juillet 2025") {
			monthRow = i
		}
	}
	if headerRow < 0 {
		return importLayout{}, fmt.Errorf("sales: no header row with invoice and date columns found")
	}
	if monthRow < 0 {
		return importLayout{}, fmt.Errorf("sales: no month header row found")
	}

	monthByHeader := make(map[string]string)
	for _, key := range payments.MonthKeys() {
		monthByHeader[strings.ReplaceAll(key, "_", " ")] = key
	}
	months := make(map[int]string)
	for col, raw := range records[monthRow] {
		if key, ok := monthByHeader[shared.Fold(strings.TrimSpace(raw))]; ok {
			months[col] = key
		}
	}
	return importLayout{dataStart: headerRow + 1, monthRow: monthRow, months: months}, nil
}

func (l importLayout) buildSale(row []string, invoice string) *Sale {
	advance := math.Round(parseImportNumber(cell(row, colAdvance)))

	monthAmounts := make(map[string]payments.Obligation)
	var monthTotal float64
	for col, key := range l.months {
		amount := math.Round(parseImportNumber(cell(row, col)))
		if amount <= 0 {
			continue
		}
		// an amount in a past export means the installment was collected
		monthAmounts[key] = payments.Obligation{Amount: amount, IsPaid: true}
		monthTotal += amount
	}

	typeClient := strings.TrimSpace(cell(row, colTypeClient))
	if typeClient == "" {
		typeClient = "B2C"
	}

	return &Sale{
		InvoiceNumber:   invoice,
		Date:            parseImportDate(cell(row, colDate)),
		Designation:     strings.TrimSpace(cell(row, colDesignation)),
		TypeClient:      typeClient,
		NomPrenom:       strings.TrimSpace(cell(row, colNomPrenom)),
		NumeroChassis:   strings.TrimSpace(cell(row, colChassis)),
		Immatriculation: strings.TrimSpace(cell(row, colImmatriculation)),
		CarteGrise:      parseImportStatus(cell(row, colCarteGrise)),
		TotalToPay:      math.Round(advance + monthTotal),
		Advance:         advance,
		PaymentDay:      1,
		Payments:        monthAmounts,
	}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func rowBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseImportNumber copes with comma decimals, stray spaces and "a+b" sums
// that show up in hand-maintained spreadsheets.
func parseImportNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if strings.Contains(raw, "+") {
		var sum float64
		for _, part := range strings.Split(raw, "+") {
			sum += parseImportNumber(part)
		}
		return sum
	}
	cleaned := strings.ReplaceAll(raw, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	var b strings.Builder
	for _, r := range cleaned {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseImportDate converts DD/MM/YYYY to ISO, passing through anything
// already ISO shaped.
func parseImportDate(raw string) string {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, "/")
	if len(parts) == 3 {
		day, month, year := parts[0], parts[1], parts[2]
		if len(day) == 1 {
			day = "0" + day
		}
		if len(month) == 1 {
			month = "0" + month
		}
		return year + "-" + month + "-" + day
	}
	return raw
}

// parseImportStatus maps the spreadsheet's uppercase status vocabulary onto
// the stored statuses. Blank cells mean the paperwork is still in flight.
func parseImportStatus(raw string) string {
	folded := shared.Fold(strings.TrimSpace(raw))
	switch {
	case folded == "":
		return CarteGriseEnCours
	case strings.Contains(folded, "recuper"):
		return CarteGriseRecuperee
	case strings.Contains(folded, "impot"):
		return CarteGriseImpot
	case strings.Contains(folded, "depos"):
		return CarteGriseADeposer
	default:
		return CarteGriseEnCours
	}
}
