package product

import "sync"

// Repository provides read access to the product catalog.
type Repository interface {
	List() ([]Product, error)
	GetByID(id int) (Product, error)
}

// InMemoryRepository serves a static catalog; it is the default when no
// database is configured and is used by tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{products: make([]Product, 0, len(seed))}
	r.products = append(r.products, seed...)
	return r
}

// DefaultCatalog holds the storefront's sample products.
func DefaultCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Premium Cotton T-Shirt", Price: 49.99, OriginalPrice: 69.99, Color: "Black", Size: "M", Image: "https://picsum.photos/150/150?random=50"},
		{ID: 2, Name: "Wireless Headphones", Price: 149.99, Color: "Black", Image: "https://picsum.photos/150/150?random=51"},
		{ID: 3, Name: "Leather Handbag", Price: 199.99, Color: "Brown", Image: "https://picsum.photos/150/150?random=52"},
	}
}

func (r *InMemoryRepository) List() ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}
