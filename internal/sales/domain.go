package sales

import (
	"errors"
	"regexp"
	"time"

	"github.com/speedbike/speedbike/internal/payments"
)

// Gray card processing statuses. User-facing values stay in French because
// the whole paper trail is French.
const (
	CarteGriseADeposer  = "A Déposer"
	CarteGriseRecuperee = "Récupérée"
	CarteGriseImpot     = "Impôt"
	CarteGriseEnCours   = "En cours"
	CarteGrisePrete     = "Prête"
	CarteGriseNone      = "None"
)

// CarteGriseStatuses lists the accepted gray card statuses in display order.
var CarteGriseStatuses = []string{
	CarteGriseADeposer,
	CarteGriseRecuperee,
	CarteGriseImpot,
	CarteGriseEnCours,
	CarteGrisePrete,
	CarteGriseNone,
}

// ValidCarteGrise reports whether s is a known gray card status.
func ValidCarteGrise(s string) bool {
	for _, v := range CarteGriseStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// invoicePattern matches "<seq>/<year>" invoice numbers.
var invoicePattern = regexp.MustCompile(`^\d+/\d+$`)

// ValidInvoiceNumber reports whether n has the sequence/year shape.
func ValidInvoiceNumber(n string) bool {
	return invoicePattern.MatchString(n)
}

var (
	// ErrNotFound indicates the sale does not exist.
	ErrNotFound = errors.New("sales: not found")
	// ErrDuplicateInvoice indicates the invoice number is already taken.
	ErrDuplicateInvoice = errors.New("sales: duplicate invoice number")
	// ErrUnknownMonth indicates a payment cell update outside the grid.
	ErrUnknownMonth = errors.New("sales: unknown payment month")
)

// Sale is one motorcycle sale with its installment schedule.
type Sale struct {
	ID              int64                           `json:"id"`
	InvoiceNumber   string                          `json:"invoiceNumber"`
	Date            string                          `json:"date"`
	Designation     string                          `json:"designation"`
	TypeClient      string                          `json:"typeClient"`
	NomPrenom       string                          `json:"nomPrenom"`
	ConventionName  string                          `json:"conventionName"`
	NumeroChassis   string                          `json:"numeroChassis"`
	Immatriculation string                          `json:"immatriculation"`
	CarteGrise      string                          `json:"carteGrise"`
	TotalToPay      float64                         `json:"totalToPay"`
	Advance         float64                         `json:"advance"`
	PaymentDay      int                             `json:"paymentDay"`
	Payments        map[string]payments.Obligation  `json:"payments"`
	CreatedAt       time.Time                       `json:"createdAt"`
	UpdatedAt       time.Time                       `json:"updatedAt"`
}

// Credit is the amount remaining after the down payment.
func (s *Sale) Credit() float64 {
	return s.TotalToPay - s.Advance
}

// Figures projects the sale onto the ledger input shape.
func (s *Sale) Figures() payments.SaleFigures {
	return payments.SaleFigures{
		TotalToPay: s.TotalToPay,
		Advance:    s.Advance,
		PaymentDay: s.PaymentDay,
		Payments:   s.Payments,
	}
}
