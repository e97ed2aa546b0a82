package service

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
	"go.uber.org/zap"
)

// ProductGetter is the catalog lookup the aggregator needs.
// Consumers define this interface, not the catalog implementation.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// CartService is the cart aggregator. It is the only writer of cart lines
// and the single place the (user, product) merge invariant is maintained.
// Snapshots are never cached: totals must follow the current catalog price,
// so every read goes through the live join.
type CartService struct {
	repo         repository.CartRepository
	products     ProductGetter
	log          *zap.Logger
	enforceStock bool
}

func NewCartService(
	repo repository.CartRepository,
	products ProductGetter,
	log *zap.Logger,
	enforceStock bool,
) *CartService {
	return &CartService{
		repo:         repo,
		products:     products,
		log:          log,
		enforceStock: enforceStock,
	}
}

// AddToCart merges the requested quantity into the user's line for the
// product, creating the line on first add. The product must resolve in the
// catalog; stock is only checked when the stock policy is enabled.
func (s *CartService) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	if s.enforceStock && quantity > product.Stock {
		return ErrInsufficientStock
	}

	if err := s.repo.UpsertLine(ctx, userID, productID, quantity); err != nil {
		s.log.Error("add to cart failed",
			zap.Int64("user_id", userID),
			zap.Int64("product_id", productID),
			zap.Error(err))
		return err
	}

	return nil
}

// GetSnapshot returns the user's cart lines joined with live product data
// plus the computed total. An empty cart is a valid snapshot with total 0.
func (s *CartService) GetSnapshot(ctx context.Context, userID int64) (*domain.CartSnapshot, error) {
	return s.repo.GetSnapshot(ctx, userID)
}

// RemoveLine deletes one of the user's own cart lines. Lines owned by other
// users are reported exactly like missing ones.
func (s *CartService) RemoveLine(ctx context.Context, userID, lineID int64) error {
	err := s.repo.RemoveLine(ctx, userID, lineID)
	if err != nil && !errors.Is(err, repository.ErrLineNotFound) {
		s.log.Error("remove cart line failed",
			zap.Int64("user_id", userID),
			zap.Int64("line_id", lineID),
			zap.Error(err))
	}
	return err
}

// Checkout clears the user's cart atomically and returns the pre-clear
// total. No order record is created and no payment happens here.
func (s *CartService) Checkout(ctx context.Context, userID int64) (float64, error) {
	total, err := s.repo.CheckoutCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartEmpty) {
			return 0, ErrEmptyCart
		}
		s.log.Error("checkout failed", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}

	s.log.Info("checkout completed",
		zap.Int64("user_id", userID),
		zap.Float64("total", total))

	return total, nil
}
