package services

import (
	"errors"

	"tableside/entity"
	"tableside/repository"

	"gorm.io/gorm"
)

var ErrInvalidPrice = errors.New("price must not be negative")

type MenuService struct {
	Repo *repository.MenuRepository

	// Section labels in display order; items outside them are not listed.
	Categories []string
}

func NewMenuService(repo *repository.MenuRepository, categories []string) *MenuService {
	return &MenuService{Repo: repo, Categories: categories}
}

type CategoryGroup struct {
	Name  string
	Items []entity.MenuItem
}

// ListByCategory partitions the catalog over the configured labels,
// preserving their order for the menu page.
func (s *MenuService) ListByCategory() ([]CategoryGroup, error) {
	items, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}

	byCat := make(map[string][]entity.MenuItem, len(s.Categories))
	for _, it := range items {
		byCat[it.Category] = append(byCat[it.Category], it)
	}

	out := make([]CategoryGroup, 0, len(s.Categories))
	for _, name := range s.Categories {
		out = append(out, CategoryGroup{Name: name, Items: byCat[name]})
	}
	return out, nil
}

func (s *MenuService) ListAll() ([]entity.MenuItem, error) {
	return s.Repo.FindAll()
}

func (s *MenuService) Get(id uint) (*entity.MenuItem, error) {
	m, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *MenuService) Create(item *entity.MenuItem) error {
	if item.Price < 0 {
		return ErrInvalidPrice
	}
	return s.Repo.Create(item)
}

func (s *MenuService) Update(item *entity.MenuItem) error {
	if item.Price < 0 {
		return ErrInvalidPrice
	}
	return s.Repo.Update(item)
}

// Delete removes the item together with every order line that references it,
// and returns the removed item so the caller can clean up its image asset.
// Order history for that item is gone afterwards.
func (s *MenuService) Delete(id uint) (*entity.MenuItem, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteCascade(id); err != nil {
		return nil, err
	}
	return m, nil
}
