package repository

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrCartEmpty       = errors.New("cart has no lines")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// CartRepository owns the cart_lines table. It is the only writer of cart
// state; the (user_id, product_id) uniqueness lives in the schema so the
// concurrent first-add race cannot produce duplicate lines.
type CartRepository interface {
	UpsertLine(ctx context.Context, userID, productID int64, quantity int) error
	GetSnapshot(ctx context.Context, userID int64) (*domain.CartSnapshot, error)
	RemoveLine(ctx context.Context, userID, lineID int64) error
	CheckoutCart(ctx context.Context, userID int64) (float64, error)
}

type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error)
	CreateProduct(ctx context.Context, p *domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	HasAdmin(ctx context.Context) (bool, error)
}
