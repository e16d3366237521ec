package saddles

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/speedbike/speedbike/internal/stock"
)

// RepositoryPort defines data access methods for saddle movements.
type RepositoryPort interface {
	ListPurchases(ctx context.Context) ([]Movement, error)
	ListSales(ctx context.Context) ([]Movement, error)
	CreatePurchase(ctx context.Context, in MovementInput) (*Movement, error)
	CreateSale(ctx context.Context, in MovementInput) (*Movement, error)
	DeletePurchase(ctx context.Context, id int64) error
	DeleteSale(ctx context.Context, id int64) error
	PurchaseTotals(ctx context.Context) (Stock, error)
	SaleTotals(ctx context.Context) (Stock, error)
}

// Service handles saddle stock business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListPurchases returns purchases newest first.
func (s *Service) ListPurchases(ctx context.Context) ([]Movement, error) {
	return s.repo.ListPurchases(ctx)
}

// ListSales returns sales newest first.
func (s *Service) ListSales(ctx context.Context) ([]Movement, error) {
	return s.repo.ListSales(ctx)
}

// CreatePurchase stores a purchase line.
func (s *Service) CreatePurchase(ctx context.Context, in MovementInput) (*Movement, error) {
	return s.repo.CreatePurchase(ctx, in)
}

// CreateSale stores a sale line after checking the balance per size.
func (s *Service) CreateSale(ctx context.Context, in MovementInput) (*Movement, error) {
	current, err := s.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	if in.TailleXL > current.TailleXL || in.TailleXXL > current.TailleXXL {
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

// StockLevels computes purchases minus sales per size.
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
		TailleXL:  purchased.TailleXL - sold.TailleXL,
		TailleXXL: purchased.TailleXXL - sold.TailleXXL,
	}, nil
}
