package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedbike/speedbike/internal/payments"
)

type memorySalesRepo struct {
	sales  map[int64]*Sale
	nextID int64
}

func newMemorySalesRepo() *memorySalesRepo {
	return &memorySalesRepo{sales: make(map[int64]*Sale)}
}

func (r *memorySalesRepo) List(ctx context.Context) ([]Sale, error) {
	var out []Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memorySalesRepo) Get(ctx context.Context, id int64) (*Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memorySalesRepo) ExistingInvoices(ctx context.Context) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, s := range r.sales {
		out[s.InvoiceNumber] = true
	}
	return out, nil
}

func (r *memorySalesRepo) Create(ctx context.Context, s *Sale) (*Sale, error) {
	for _, existing := range r.sales {
		if existing.InvoiceNumber == s.InvoiceNumber {
			return nil, ErrDuplicateInvoice
		}
	}
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.sales[s.ID] = s
	return s, nil
}

func (r *memorySalesRepo) CreateBatch(ctx context.Context, sales []*Sale) error {
	for _, s := range sales {
		if _, err := r.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *memorySalesRepo) Update(ctx context.Context, s *Sale) (*Sale, error) {
	if _, ok := r.sales[s.ID]; !ok {
		return nil, ErrNotFound
	}
	s.UpdatedAt = time.Now()
	r.sales[s.ID] = s
	return s, nil
}

func (r *memorySalesRepo) UpdatePayments(ctx context.Context, id int64, p map[string]payments.Obligation) error {
	s, ok := r.sales[id]
	if !ok {
		return ErrNotFound
	}
	s.Payments = p
	return nil
}

func (r *memorySalesRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.sales[id]; !ok {
		return ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

type recordedNotification struct {
	action, target, details string
}

type memoryNotifier struct {
	records []recordedNotification
}

func (n *memoryNotifier) Record(ctx context.Context, action, target, details string) {
	n.records = append(n.records, recordedNotification{action, target, details})
}

func validInput() SaleInput {
	return SaleInput{
		InvoiceNumber: "12/2025",
		Date:          "2025-07-10",
		Designation:   "CG 125",
		NomPrenom:     "Haddad Yacine",
		CarteGrise:    CarteGriseEnCours,
		TotalToPay:    250000,
		Advance:       100000,
		PaymentDay:    15,
	}
}

func TestCreateWithSchedule(t *testing.T) {
	repo := newMemorySalesRepo()
	notifier := &memoryNotifier{}
	svc := NewService(repo, notifier)

	in := validInput()
	in.PaymentMonths = 3
	in.StartMonth = "aout_2025"
	in.AmountPolicy = "rounded"

	sale, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, sale.Payments, 3)
	assert.Equal(t, float64(50000), sale.Payments["aout_2025"].Amount)
	assert.False(t, sale.Payments["aout_2025"].IsPaid)

	require.Len(t, notifier.records, 1)
	assert.Equal(t, "CRÉATION", notifier.records[0].action)
	assert.Equal(t, "Facture 12/2025", notifier.records[0].target)
	assert.Equal(t, "Client: Haddad Yacine", notifier.records[0].details)
}

func TestCreateWithoutScheduleHasEmptyPayments(t *testing.T) {
	svc := NewService(newMemorySalesRepo(), nil)
	sale, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, sale.Payments)
	assert.Empty(t, sale.Payments)
}

func TestCreateRejectsBadInvoiceNumber(t *testing.T) {
	svc := NewService(newMemorySalesRepo(), nil)
	in := validInput()
	in.InvoiceNumber = "FAC-12"
	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
}

func TestCreateRejectsAdvanceOverTotal(t *testing.T) {
	svc := NewService(newMemorySalesRepo(), nil)
	in := validInput()
	in.Advance = in.TotalToPay + 1
	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
}

func TestCreateDuplicateInvoice(t *testing.T) {
	svc := NewService(newMemorySalesRepo(), nil)
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrDuplicateInvoice)
}

func TestBulkCreate(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo, nil)

	second := validInput()
	second.InvoiceNumber = "13/2025"
	created, err := svc.BulkCreate(context.Background(), []SaleInput{validInput(), second})
	require.NoError(t, err)
	require.Len(t, created, 2)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBulkCreateRejectsBatchDuplicates(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo, nil)

	_, err := svc.BulkCreate(context.Background(), []SaleInput{validInput(), validInput()})
	assert.ErrorIs(t, err, ErrDuplicateInvoice)

	// a failed batch leaves nothing behind
	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdatePreservesPaymentsWithoutScheduleBlock(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo, nil)

	in := validInput()
	in.PaymentMonths = 2
	in.StartMonth = "juillet_2025"
	sale, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, sale.Payments, 2)

	upd := validInput()
	upd.Designation = "CG 150"
	updated, err := svc.Update(context.Background(), sale.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "CG 150", updated.Designation)
	assert.Len(t, updated.Payments, 2)
}

func TestUpdateWithScheduleReplacesPayments(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo, nil)

	in := validInput()
	in.PaymentMonths = 2
	in.StartMonth = "juillet_2025"
	sale, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	upd := validInput()
	upd.PaymentMonths = 4
	upd.StartMonth = "octobre_2025"
	updated, err := svc.Update(context.Background(), sale.ID, upd)
	require.NoError(t, err)
	require.Len(t, updated.Payments, 4)
	_, stale := updated.Payments["juillet_2025"]
	assert.False(t, stale)
}

func TestUpdatePaymentCell(t *testing.T) {
	repo := newMemorySalesRepo()
	notifier := &memoryNotifier{}
	svc := NewService(repo, notifier)

	sale, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	got, err := svc.UpdatePaymentCell(context.Background(), sale.ID, "septembre_2025", PaymentCellInput{Amount: 50000, IsPaid: true})
	require.NoError(t, err)
	assert.Equal(t, payments.Obligation{Amount: 50000, IsPaid: true}, got.Payments["septembre_2025"])

	_, err = svc.UpdatePaymentCell(context.Background(), sale.ID, "nivose_2025", PaymentCellInput{Amount: 1})
	assert.ErrorIs(t, err, ErrUnknownMonth)
}

func TestDeleteNotifies(t *testing.T) {
	repo := newMemorySalesRepo()
	notifier := &memoryNotifier{}
	svc := NewService(repo, notifier)

	sale, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), sale.ID))
	require.Len(t, notifier.records, 2)
	assert.Equal(t, "SUPPRESSION", notifier.records[1].action)

	assert.ErrorIs(t, svc.Delete(context.Background(), sale.ID), ErrNotFound)
}

func TestListFiltersAndTotals(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo, nil)

	first := validInput()
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.InvoiceNumber = "13/2025"
	second.NomPrenom = "Benali Karim"
	second.CarteGrise = CarteGrisePrete
	second.TotalToPay = 100000
	second.Advance = 100000
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	all, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Sales, 2)
	assert.Equal(t, float64(350000), all.Totals.TotalToPay)

	// accent-insensitive name filter
	filtered, err := svc.List(context.Background(), ListQuery{Search: "bénali"})
	require.NoError(t, err)
	require.Len(t, filtered.Sales, 1)
	assert.Equal(t, "13/2025", filtered.Sales[0].InvoiceNumber)

	// footer totals still cover the whole table when filtering
	assert.Equal(t, float64(350000), filtered.Totals.TotalToPay)

	byStatus, err := svc.List(context.Background(), ListQuery{CarteGrise: CarteGrisePrete})
	require.NoError(t, err)
	require.Len(t, byStatus.Sales, 1)
}

func TestListSearchCoversAllTextColumns(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo, nil)

	in := validInput()
	in.NumeroChassis = "WF1234"
	in.TypeClient = "Convention"
	in.ConventionName = "Convention STEG"
	in.CarteGrise = CarteGriseADeposer
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	other := validInput()
	other.InvoiceNumber = "13/2025"
	other.NomPrenom = "Benali Karim"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	for _, term := range []string{"wf12", "stég", "convention", "a deposer"} {
		got, err := svc.List(context.Background(), ListQuery{Search: term})
		require.NoError(t, err)
		require.Len(t, got.Sales, 1, "term %q", term)
		assert.Equal(t, "12/2025", got.Sales[0].InvoiceNumber)
	}
}
