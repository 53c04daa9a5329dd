package catalog

import (
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/ploychompoo03/management-market/internal/pricing"
)

// ErrNotFound indicates the requested item could not be located.
var ErrNotFound = errors.New("catalog: item not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("catalog: invalid input")

// ItemInput carries the editable product form fields. Price, cost and stock
// arrive as free text from the form and are coerced the same way the register
// has always coerced them: blank and garbage become zero.
type ItemInput struct {
	Name     string `json:"name" validate:"required"`
	Barcode  string `json:"barcode"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Price    string `json:"price" validate:"required"`
	Cost     string `json:"cost"`
	Stock    int    `json:"stock" validate:"gte=0"`
	Note     string `json:"note"`
}

// Service exposes catalog reads plus administrative CRUD.
type Service struct {
	Repo     *Repository
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("catalog: repository is required")
	}
	return &Service{Repo: repo, validate: validator.New()}, nil
}

// List returns all catalog items, optionally filtered by a free-text query
// matched against id, name, category and barcode (the product-list search).
func (s *Service) List(query string) ([]Item, error) {
	items, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items, nil
	}
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		for _, field := range []string{it.ID, it.Name, it.Category, it.Barcode} {
			if strings.Contains(strings.ToLower(field), q) {
				filtered = append(filtered, it)
				break
			}
		}
	}
	return filtered, nil
}

// Get returns a single item by id.
func (s *Service) Get(id string) (Item, error) {
	item, ok, err := s.Repo.Get(id)
	if err != nil {
		return Item{}, err
	}
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

// Categories returns the configured category list plus any extra categories
// already carried by catalog items, in that order, without duplicates.
func (s *Service) Categories() ([]string, error) {
	categories, err := s.Repo.LoadCategories()
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, name := range categories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, it := range items {
		name := strings.TrimSpace(it.Category)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// Create validates the form input and inserts a new item with a generated id.
func (s *Service) Create(in ItemInput) (Item, error) {
	item, err := s.fromInput(in)
	if err != nil {
		return Item{}, err
	}
	id, err := s.Repo.NextID()
	if err != nil {
		return Item{}, err
	}
	item.ID = id
	if err := s.Repo.Insert(item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Update validates the form input and replaces the stored item.
func (s *Service) Update(id string, in ItemInput) (Item, error) {
	item, err := s.fromInput(in)
	if err != nil {
		return Item{}, err
	}
	item.ID = id
	ok, err := s.Repo.Replace(item)
	if err != nil {
		return Item{}, err
	}
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

// Delete removes the item. Deleting an absent id is idempotent.
func (s *Service) Delete(id string) error {
	return s.Repo.Remove(id)
}

func (s *Service) fromInput(in ItemInput) (Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Barcode = strings.TrimSpace(in.Barcode)
	if err := s.validate.Struct(in); err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return Item{
		Name:     in.Name,
		Barcode:  in.Barcode,
		Category: strings.TrimSpace(in.Category),
		Unit:     strings.TrimSpace(in.Unit),
		Price:    pricing.ParseAmount(in.Price),
		Cost:     pricing.ParseAmount(in.Cost),
		Stock:    in.Stock,
		Note:     strings.TrimSpace(in.Note),
	}, nil
}
