package oil

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/speedbike/speedbike/internal/stock"
)

// RepositoryPort defines data access methods for oil movements.
type RepositoryPort interface {
	ListPurchases(ctx context.Context) ([]Purchase, error)
	ListSales(ctx context.Context) ([]Sale, error)
	CreatePurchase(ctx context.Context, in PurchaseInput) (*Purchase, error)
	CreateSale(ctx context.Context, in SaleInput) (*Sale, error)
	DeletePurchase(ctx context.Context, id int64) error
	DeleteSale(ctx context.Context, id int64) error
	PurchaseTotals(ctx context.Context) (Stock, error)
	SaleTotals(ctx context.Context) (Stock, error)
}

// Service handles oil stock business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListPurchases returns purchases newest first.
func (s *Service) ListPurchases(ctx context.Context) ([]Purchase, error) {
	return s.repo.ListPurchases(ctx)
}

// ListSales returns sales newest first.
func (s *Service) ListSales(ctx context.Context) ([]Sale, error) {
	return s.repo.ListSales(ctx)
}

// CreatePurchase stores a purchase line.
func (s *Service) CreatePurchase(ctx context.Context, in PurchaseInput) (*Purchase, error) {
	return s.repo.CreatePurchase(ctx, in)
}

// CreateSale stores a sale line after checking the balance per grade.
func (s *Service) CreateSale(ctx context.Context, in SaleInput) (*Sale, error) {
	current, err := s.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	if in.Huile10W40 > current.Huile10W40 || in.Huile20W50 > current.Huile20W50 {
		return nil, stock.ErrInsufficientStock
	}
	return s.repo.CreateSale(ctx, in)
}

// DeletePurchase removes a purchase line.
func (s *Service) DeletePurchase(ctx context.Context, id int64) error {
	return s.repo.DeletePurchase(ctx, id)
}

// DeleteSale removes a sale line.
func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	return s.repo.DeleteSale(ctx, id)
}

// StockLevels computes purchases minus sales per grade. Balances are
// reported as stored, negatives included.
func (s *Service) StockLevels(ctx context.Context) (Stock, error) {
	var purchased, sold Stock
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		purchased, err = s.repo.PurchaseTotals(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		sold, err = s.repo.SaleTotals(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stock{}, err
	}
	return Stock{
		Huile10W40: purchased.Huile10W40 - sold.Huile10W40,
		Huile20W50: purchased.Huile20W50 - sold.Huile20W50,
	}, nil
}
