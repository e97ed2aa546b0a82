package domain

import "time"

// CartLine is one user's held quantity of one product. At most one line
// exists per (user, product) pair; repeated adds merge into the quantity.
type CartLine struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotItem is a cart line joined with live product data.
type SnapshotItem struct {
	LineID      int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"product_price"`
	ImageURL    string  `json:"product_image"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// CartSnapshot is the computed view of a user's cart. Prices are read live
// from the catalog at snapshot time, so the total follows current prices
// rather than prices frozen at add time.
type CartSnapshot struct {
	UserID     int64          `json:"user_id"`
	Items      []SnapshotItem `json:"cart_items"`
	Total      float64        `json:"total"`
	CapturedAt time.Time      `json:"captured_at"`
}
