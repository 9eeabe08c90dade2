package product

// ServiceInterface is what other packages (the cart in particular) need
// from the product catalog.
type ServiceInterface interface {
	List() ([]Product, error)
	GetByID(id int) (Product, error)
}

// Service orchestrates catalog reads.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}
