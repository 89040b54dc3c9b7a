package view

import (
	"fmt"

	"storefront/internal/errs"
	"storefront/internal/localstore"
	"storefront/internal/models"
)

const (
	CartKey      = "cart"
	FavoritesKey = "favorites"
)

// CartItem is a product staged in the local cart. Price is the effective price when added and
// is never re-validated against the catalog.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CheckoutSummary struct {
	Items     []CartItem
	ItemCount int
	Total     float64
}

// Shopper stages a customer's cart and favorites in a local store. Nothing here reaches the
// server.
type Shopper struct {
	store localstore.Store
}

func NewShopper(store localstore.Store) *Shopper {
	return &Shopper{store: store}
}

func (s *Shopper) Cart() ([]CartItem, error) {
	items := []CartItem{}
	if _, err := s.store.Get(CartKey, &items); err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = []CartItem{}
	}
	return items, nil
}

// AddToCart adds quantity units of p, merging with an existing line for the same product.
func (s *Shopper) AddToCart(p models.Product, quantity int) ([]CartItem, error) {
	if quantity < 1 {
		return nil, errs.Invalidf("quantity must be at least 1", "quantity")
	}

	items, err := s.Cart()
	if err != nil {
		return nil, err
	}

	id := p.ID.Hex()
	merged := false
	for i := range items {
		if items[i].ProductID == id {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, CartItem{
			ProductID: id,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.EffectivePrice(),
			Quantity:  quantity,
		})
	}

	if err := s.store.Set(CartKey, items); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return items, nil
}

func (s *Shopper) RemoveFromCart(productID string) ([]CartItem, error) {
	items, err := s.Cart()
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.store.Set(CartKey, kept); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return kept, nil
}

func (s *Shopper) ClearCart() error {
	return s.store.Clear(CartKey)
}

func (s *Shopper) Favorites() ([]string, error) {
	ids := []string{}
	if _, err := s.store.Get(FavoritesKey, &ids); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ToggleFavorite adds or removes productID and reports whether it is now a favorite.
func (s *Shopper) ToggleFavorite(productID string) (bool, error) {
	ids, err := s.Favorites()
	if err != nil {
		return false, err
	}

	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	added := len(kept) == len(ids)
	if added {
		kept = append(kept, productID)
	}

	if err := s.store.Set(FavoritesKey, kept); err != nil {
		return false, fmt.Errorf("save favorites: %w", err)
	}
	return added, nil
}

func (s *Shopper) IsFavorite(productID string) (bool, error) {
	ids, err := s.Favorites()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

// CheckoutSummary totals the cart. It performs no payment.
func (s *Shopper) CheckoutSummary() (CheckoutSummary, error) {
	items, err := s.Cart()
	if err != nil {
		return CheckoutSummary{}, err
	}

	lines := make([]models.OrderItem, 0, len(items))
	count := 0
	for _, item := range items {
		lines = append(lines, models.OrderItem{Price: item.Price, Quantity: item.Quantity})
		count += item.Quantity
	}

	return CheckoutSummary{Items: items, ItemCount: count, Total: models.OrderTotal(lines)}, nil
}

// OrderRequest turns the cart into an order for the given customer.
func (s *Shopper) OrderRequest(customerName, customerEmail string) (models.OrderRequest, error) {
	items, err := s.Cart()
	if err != nil {
		return models.OrderRequest{}, err
	}
	if len(items) == 0 {
		return models.OrderRequest{}, errs.Invalidf("cart is empty", "items")
	}

	req := models.OrderRequest{CustomerName: customerName, CustomerEmail: customerEmail}
	for _, item := range items {
		req.Items = append(req.Items, models.OrderItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return req, nil
}
