package sales

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/speedbike/speedbike/internal/payments"
)

var exportHeaders = []string{
	"N° Facture", "Date", "Désignation", "Type Client", "Nom/Prénom",
	"N° Chassis", "Immatriculation", "Carte Grise",
	"Total à Payer", "Avance", "Crédit", "Echu",
}

// WriteCSV renders the sales table as a semicolon separated CSV. A UTF-8
// BOM leads the stream so Excel detects the encoding.
func WriteCSV(w io.Writer, sales []SaleView) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := append([]string{}, exportHeaders...)
	for _, key := range payments.MonthKeys() {
		header = append(header, strings.ReplaceAll(key, "_", " "))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range sales {
		row := []string{
			s.InvoiceNumber,
			s.Date,
			s.Designation,
			s.TypeClient,
			s.NomPrenom,
			s.NumeroChassis,
			s.Immatriculation,
			s.CarteGrise,
			formatAmount(s.TotalToPay),
			formatAmount(s.Advance),
			formatAmount(s.Totals.DueCredit),
			formatAmount(s.Totals.PastDue),
		}
		for _, key := range payments.MonthKeys() {
			row = append(row, formatCell(s.Payments[key]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Every grid month yields a cell; months the schedule never touched come
// out as "0 (NON PAYÉ)", mirroring the on-screen table.
func formatCell(ob payments.Obligation) string {
	status := "NON PAYÉ"
	if ob.IsPaid {
		status = "PAYÉ"
	}
	return formatAmount(ob.Amount) + " (" + status + ")"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
