package helmets

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/speedbike/speedbike/internal/stock"
)

// RepositoryPort defines data access methods for helmet movements.
type RepositoryPort interface {
	ListPurchases(ctx context.Context) ([]Purchase, error)
	ListSales(ctx context.Context) ([]Sale, error)
	CreatePurchase(ctx context.Context, in PurchaseInput) (*Purchase, error)
	CreateSale(ctx context.Context, in SaleInput) (*Sale, error)
	DeletePurchase(ctx context.Context, id int64) error
	DeleteSale(ctx context.Context, id int64) error
	PurchaseTotals(ctx context.Context) (map[string]float64, error)
	SaleTotals(ctx context.Context) (map[string]float64, error)
}

// Service handles helmet stock business logic.
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

// CreateSale stores a sale line after checking the designation's balance.
func (s *Service) CreateSale(ctx context.Context, in SaleInput) (*Sale, error) {
	lines, err := s.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	available := 0.0
	for _, line := range lines {
		if line.Designation == in.Designation {
			available = line.Stock
			break
		}
	}
	if in.Quantity > available {
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

// StockLevels returns one line per designation seen in either table,
// sorted alphabetically. Balances are reported as stored, negatives
// included.
func (s *Service) StockLevels(ctx context.Context) ([]StockLine, error) {
	var purchased, sold map[string]float64
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
		return nil, err
	}

	names := make(map[string]bool)
	for d := range purchased {
		names[d] = true
	}
	for d := range sold {
		names[d] = true
	}
	lines := make([]StockLine, 0, len(names))
	for d := range names {
		lines = append(lines, StockLine{
			Designation: d,
			Purchased:   purchased[d],
			Sold:        sold[d],
			Stock:       purchased[d] - sold[d],
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Designation < lines[j].Designation })
	return lines, nil
}
