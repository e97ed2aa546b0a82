package main

import (
	"context"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/service"
)

// seed creates the admin account and the sample catalog on first start.
// Both steps are no-ops when data already exists.
func seed(ctx context.Context, cfg *Config, auth *service.AuthService, catalog *service.CatalogService) error {
	if err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	page, err := catalog.List(ctx, domain.ProductFilter{Page: 1, PerPage: 1})
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if page.Total > 0 {
		return nil
	}

	for _, p := range sampleProducts {
		p := p
		if _, err := catalog.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return nil
}

var sampleProducts = []domain.Product{
	{Name: "Smartphone X", Description: "Latest smartphone with advanced features", Price: 699.99, Stock: 50, Category: "Electronics", ImageURL: "https://images.unsplash.com/photo-1592899677977-9c10ca588bbd"},
	{Name: "Wireless Headphones", Description: "Noise-cancelling wireless headphones", Price: 199.99, Stock: 30, Category: "Electronics", ImageURL: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e"},
	{Name: "Laptop Pro", Description: "High-performance laptop for professionals", Price: 1299.99, Stock: 20, Category: "Electronics", ImageURL: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853"},
	{Name: "Smart Watch", Description: "Fitness tracking and notifications", Price: 249.99, Stock: 40, Category: "Electronics", ImageURL: "https://images.unsplash.com/photo-1523275335684-37898b6baf30"},
	{Name: "Coffee Maker", Description: "Automatic coffee maker with timer", Price: 89.99, Stock: 25, Category: "Home", ImageURL: "https://images.unsplash.com/photo-1550583724-b2692b85b150"},
	{Name: "Blender", Description: "High-speed blender for smoothies", Price: 59.99, Stock: 35, Category: "Home", ImageURL: "https://images.unsplash.com/photo-1573521193826-58c7dc2e13e3"},
	{Name: "Running Shoes", Description: "Comfortable running shoes", Price: 79.99, Stock: 60, Category: "Sports", ImageURL: "https://images.unsplash.com/photo-1460353581641-37baddab0fa2"},
	{Name: "Yoga Mat", Description: "Non-slip yoga mat", Price: 29.99, Stock: 45, Category: "Sports", ImageURL: "https://images.unsplash.com/photo-1571902943202-507ec2618e8f"},
	{Name: "Backpack", Description: "Durable backpack for everyday use", Price: 49.99, Stock: 55, Category: "Fashion", ImageURL: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62"},
	{Name: "Desk Lamp", Description: "Adjustable LED desk lamp", Price: 39.99, Stock: 30, Category: "Home", ImageURL: "https://images.unsplash.com/photo-1580477667995-2b94f01c9516"},
}
