package oil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedbike/speedbike/internal/stock"
)

type memoryOilRepo struct {
	purchases []Purchase
	sales     []Sale
	nextID    int64
}

func (r *memoryOilRepo) ListPurchases(ctx context.Context) ([]Purchase, error) {
	return r.purchases, nil
}

func (r *memoryOilRepo) ListSales(ctx context.Context) ([]Sale, error) {
	return r.sales, nil
}

func (r *memoryOilRepo) CreatePurchase(ctx context.Context, in PurchaseInput) (*Purchase, error) {
	r.nextID++
	p := Purchase{ID: r.nextID, Date: in.Date, Huile10W40: in.Huile10W40, Huile20W50: in.Huile20W50,
		Fournisseur: in.Fournisseur, Prix: in.Prix}
	r.purchases = append(r.purchases, p)
	return &p, nil
}

func (r *memoryOilRepo) CreateSale(ctx context.Context, in SaleInput) (*Sale, error) {
	r.nextID++
	s := Sale{ID: r.nextID, Date: in.Date, Huile10W40: in.Huile10W40, Huile20W50: in.Huile20W50,
		Prix: in.Prix, Encaissement: in.Encaissement, Client: in.Client}
	r.sales = append(r.sales, s)
	return &s, nil
}

func (r *memoryOilRepo) DeletePurchase(ctx context.Context, id int64) error {
	for i, p := range r.purchases {
		if p.ID == id {
			r.purchases = append(r.purchases[:i], r.purchases[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryOilRepo) DeleteSale(ctx context.Context, id int64) error {
	for i, s := range r.sales {
		if s.ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryOilRepo) PurchaseTotals(ctx context.Context) (Stock, error) {
	var t Stock
	for _, p := range r.purchases {
		t.Huile10W40 += p.Huile10W40
		t.Huile20W50 += p.Huile20W50
	}
	return t, nil
}

func (r *memoryOilRepo) SaleTotals(ctx context.Context) (Stock, error) {
	var t Stock
	for _, s := range r.sales {
		t.Huile10W40 += s.Huile10W40
		t.Huile20W50 += s.Huile20W50
	}
	return t, nil
}

func TestStockLevels(t *testing.T) {
	repo := &memoryOilRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.CreatePurchase(ctx, PurchaseInput{Date: "2025-07-01", Huile10W40: 20, Huile20W50: 10, Fournisseur: "Total"})
	require.NoError(t, err)
	_, err = svc.CreateSale(ctx, SaleInput{Date: "2025-07-02", Huile10W40: 5, Prix: 2500, Encaissement: "Espèces"})
	require.NoError(t, err)

	levels, err := svc.StockLevels(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stock{Huile10W40: 15, Huile20W50: 10}, levels)
}

func TestCreateSaleKeepsCommercialFields(t *testing.T) {
	repo := &memoryOilRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.CreatePurchase(ctx, PurchaseInput{Date: "2025-07-01", Huile10W40: 5, Fournisseur: "Naftal", Prix: 50000})
	require.NoError(t, err)

	sale, err := svc.CreateSale(ctx, SaleInput{Date: "2025-07-02", Huile10W40: 2, Prix: 4800, Encaissement: "Chèque", Client: "Garage Amine"})
	require.NoError(t, err)
	assert.Equal(t, "Chèque", sale.Encaissement)
	assert.Equal(t, "Garage Amine", sale.Client)
	assert.Equal(t, float64(4800), sale.Prix)

	purchases, err := svc.ListPurchases(ctx)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Naftal", purchases[0].Fournisseur)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	repo := &memoryOilRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.CreatePurchase(ctx, PurchaseInput{Date: "2025-07-01", Huile10W40: 3})
	require.NoError(t, err)

	_, err = svc.CreateSale(ctx, SaleInput{Date: "2025-07-02", Huile10W40: 4, Encaissement: "Espèces"})
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)

	_, err = svc.CreateSale(ctx, SaleInput{Date: "2025-07-02", Huile20W50: 1, Encaissement: "Espèces"})
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)

	_, err = svc.CreateSale(ctx, SaleInput{Date: "2025-07-02", Huile10W40: 3, Encaissement: "Espèces"})
	require.NoError(t, err)
}

func TestDeleteSaleRestoresBalance(t *testing.T) {
	repo := &memoryOilRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.CreatePurchase(ctx, PurchaseInput{Date: "2025-07-01", Huile10W40: 2})
	require.NoError(t, err)
	sale, err := svc.CreateSale(ctx, SaleInput{Date: "2025-07-02", Huile10W40: 2, Encaissement: "Espèces"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSale(ctx, sale.ID))
	levels, err := svc.StockLevels(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(2), levels.Huile10W40)

	assert.ErrorIs(t, svc.DeleteSale(ctx, sale.ID), ErrNotFound)
}
