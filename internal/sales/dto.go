package sales

import "github.com/speedbike/speedbike/internal/payments"

// SaleInput carries a sale create or update payload.
type SaleInput struct {
	InvoiceNumber   string  `json:"invoiceNumber" validate:"required"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	Designation     string  `json:"designation" validate:"required"`
	TypeClient      string  `json:"typeClient"`
	NomPrenom       string  `json:"nomPrenom" validate:"required"`
	ConventionName  string  `json:"conventionName"`
	NumeroChassis   string  `json:"numeroChassis"`
	Immatriculation string  `json:"immatriculation"`
	CarteGrise      string  `json:"carteGrise"`
	TotalToPay      float64 `json:"totalToPay" validate:"gte=0"`
	Advance         float64 `json:"advance" validate:"gte=0"`
	PaymentDay      int     `json:"paymentDay" validate:"min=1,max=31"`

	// Optional scheduling block. When PaymentMonths > 0 and StartMonth is a
	// grid key, a fresh schedule replaces the whole payments map.
	PaymentMonths int    `json:"paymentMonths" validate:"gte=0"`
	StartMonth    string `json:"startMonth"`
	AmountPolicy  string `json:"amountPolicy" validate:"omitempty,oneof=decimal rounded"`
}

// PaymentCellInput updates a single month of a sale's schedule.
type PaymentCellInput struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	IsPaid bool    `json:"isPaid"`
}

// ListQuery filters the sales list.
type ListQuery struct {
	Search     string
	CarteGrise string
}

// SaleView is a sale enriched with its derived ledger figures.
type SaleView struct {
	Sale
	Credit   float64              `json:"credit"`
	Totals   payments.Totals      `json:"totals"`
	Percents payments.Percentages `json:"percents"`
}

// ListResult is the sales list plus the footer aggregation.
type ListResult struct {
	Sales  []SaleView           `json:"sales"`
	Totals payments.TableTotals `json:"totals"`
}

// ImportResult summarises a CSV import run.
type ImportResult struct {
	Total   int      `json:"total"`
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}
