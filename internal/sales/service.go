package sales

import (
	"context"
	"errors"
	"time"

	"github.com/speedbike/speedbike/internal/payments"
	"github.com/speedbike/speedbike/internal/shared"
)

// RepositoryPort defines data access methods for sales.
type RepositoryPort interface {
	List(ctx context.Context) ([]Sale, error)
	Get(ctx context.Context, id int64) (*Sale, error)
	ExistingInvoices(ctx context.Context) (map[string]bool, error)
	Create(ctx context.Context, s *Sale) (*Sale, error)
	CreateBatch(ctx context.Context, sales []*Sale) error
	Update(ctx context.Context, s *Sale) (*Sale, error)
	UpdatePayments(ctx context.Context, id int64, p map[string]payments.Obligation) error
	Delete(ctx context.Context, id int64) error
}

// Notifier records activity entries for the notification feed.
type Notifier interface {
	Record(ctx context.Context, action, target, details string)
}

// Service handles sales business logic.
type Service struct {
	repo     RepositoryPort
	notifier Notifier
	now      func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// List returns the filtered sales with their ledger figures and the footer
// totals computed over the unfiltered table.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	figures := make([]payments.SaleFigures, 0, len(all))
	views := make([]SaleView, 0, len(all))
	for i := range all {
		sale := all[i]
		figures = append(figures, sale.Figures())
		if q.CarteGrise != "" && sale.CarteGrise != q.CarteGrise {
			continue
		}
		if q.Search != "" && !matchesSearch(&sale, q.Search) {
			continue
		}
		t := payments.Aggregate(sale.Figures(), now)
		views = append(views, SaleView{
			Sale:     sale,
			Credit:   sale.Credit(),
			Totals:   t,
			Percents: payments.Percent(sale.Figures(), t),
		})
	}
	return &ListResult{
		Sales:  views,
		Totals: payments.AggregateTable(figures, now),
	}, nil
}

// matchesSearch folds both sides and matches the term against every text
// column the table displays.
func matchesSearch(sale *Sale, term string) bool {
	return shared.MatchesFold(sale.NomPrenom, term) ||
		shared.MatchesFold(sale.InvoiceNumber, term) ||
		shared.MatchesFold(sale.Designation, term) ||
		shared.MatchesFold(sale.NumeroChassis, term) ||
		shared.MatchesFold(sale.CarteGrise, term) ||
		shared.MatchesFold(sale.TypeClient, term) ||
		shared.MatchesFold(sale.ConventionName, term)
}

// Get returns one sale with its ledger figures.
func (s *Service) Get(ctx context.Context, id int64) (*SaleView, error) {
	sale, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t := payments.Aggregate(sale.Figures(), s.now())
	return &SaleView{
		Sale:     *sale,
		Credit:   sale.Credit(),
		Totals:   t,
		Percents: payments.Percent(sale.Figures(), t),
	}, nil
}

// Create stores a new sale, generating its schedule when the input carries
// scheduling parameters.
func (s *Service) Create(ctx context.Context, in SaleInput) (*Sale, error) {
	sale, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	if sale.Payments == nil {
		sale.Payments = map[string]payments.Obligation{}
	}
	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "CRÉATION", created)
	return created, nil
}

// BulkCreate stores several sales in one transaction. The whole batch is
// validated up front; one bad row rejects the call and nothing lands.
func (s *Service) BulkCreate(ctx context.Context, ins []SaleInput) ([]*Sale, error) {
	batch := make([]*Sale, 0, len(ins))
	seen := make(map[string]bool, len(ins))
	for _, in := range ins {
		sale, err := s.fromInput(in)
		if err != nil {
			return nil, err
		}
		if seen[sale.InvoiceNumber] {
			return nil, ErrDuplicateInvoice
		}
		seen[sale.InvoiceNumber] = true
		if sale.Payments == nil {
			sale.Payments = map[string]payments.Obligation{}
		}
		batch = append(batch, sale)
	}
	if len(batch) == 0 {
		return batch, nil
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Update rewrites a sale. A scheduling block in the input replaces the
// whole payments map; without one the stored map is preserved.
func (s *Service) Update(ctx context.Context, id int64, in SaleInput) (*Sale, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sale, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	sale.ID = id
	sale.CreatedAt = current.CreatedAt
	if sale.Payments == nil {
		sale.Payments = current.Payments
	}
	updated, err := s.repo.Update(ctx, sale)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "MODIFICATION", updated)
	return updated, nil
}

// UpdatePaymentCell sets the amount and paid flag of one schedule month.
func (s *Service) UpdatePaymentCell(ctx context.Context, id int64, monthKey string, in PaymentCellInput) (*Sale, error) {
	if payments.SlotIndex(monthKey) < 0 {
		return nil, ErrUnknownMonth
	}
	sale, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Payments == nil {
		sale.Payments = map[string]payments.Obligation{}
	}
	sale.Payments[monthKey] = payments.Obligation{Amount: in.Amount, IsPaid: in.IsPaid}
	if err := s.repo.UpdatePayments(ctx, id, sale.Payments); err != nil {
		return nil, err
	}
	s.notify(ctx, "MODIFICATION", sale)
	return sale, nil
}

// Delete removes a sale.
func (s *Service) Delete(ctx context.Context, id int64) error {
	sale, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, "SUPPRESSION", sale)
	return nil
}

func (s *Service) fromInput(in SaleInput) (*Sale, error) {
	if !ValidInvoiceNumber(in.InvoiceNumber) {
		return nil, errors.New("sales: invoice number must look like 123/2025")
	}
	if in.CarteGrise == "" {
		in.CarteGrise = CarteGriseADeposer
	}
	if !ValidCarteGrise(in.CarteGrise) {
		return nil, errors.New("sales: unknown carte grise status")
	}
	if in.Advance > in.TotalToPay {
		return nil, errors.New("sales: advance exceeds total")
	}

	sale := &Sale{
		InvoiceNumber:   in.InvoiceNumber,
		Date:            in.Date,
		Designation:     in.Designation,
		TypeClient:      in.TypeClient,
		NomPrenom:       in.NomPrenom,
		ConventionName:  in.ConventionName,
		NumeroChassis:   in.NumeroChassis,
		Immatriculation: in.Immatriculation,
		CarteGrise:      in.CarteGrise,
		TotalToPay:      in.TotalToPay,
		Advance:         in.Advance,
		PaymentDay:      in.PaymentDay,
	}

	if in.PaymentMonths > 0 && in.StartMonth != "" {
		start, err := payments.ParseSlot(in.StartMonth)
		if err != nil {
			return nil, err
		}
		policy := payments.PolicyRounded
		if in.AmountPolicy == string(payments.PolicyDecimal) {
			policy = payments.PolicyDecimal
		}
		sale.Payments = payments.Schedule(sale.Credit(), in.PaymentMonths, start, policy)
	}
	return sale, nil
}

func (s *Service) notify(ctx context.Context, action string, sale *Sale) {
	if s.notifier == nil {
		return
	}
	s.notifier.Record(ctx, action, "Facture "+sale.InvoiceNumber, "Client: "+sale.NomPrenom)
}
