package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"commerce-api/internal/fixtures"
)

// MemoryStore is an in-memory Repository seeded from fixtures.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[int64]Product
	categories map[int64]Category
	nextID     int64
}

// NewMemoryStore creates a store holding the seeded catalog.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		products:   make(map[int64]Product),
		categories: make(map[int64]Category),
	}
	for _, c := range fixtures.Categories() {
		s.categories[c.ID] = Category{ID: c.ID, Name: c.Name}
	}
	for _, fp := range fixtures.Products() {
		p := Product{
			ID:          fp.ID,
			Name:        fp.Name,
			Description: fp.Description,
			Price:       fp.Price,
			ImgURL:      fp.ImgURL,
		}
		for _, id := range fp.CategoryIDs {
			p.Categories = append(p.Categories, s.categories[id])
		}
		s.products[p.ID] = p
		if p.ID > s.nextID {
			s.nextID = p.ID
		}
	}
	return s
}

func (s *MemoryStore) GetProduct(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	p = clone(p)
	return &p, nil
}

func (s *MemoryStore) ListProducts(_ context.Context, q ListQuery) ([]Product, error) {
	q = q.normalize()

	s.mu.RLock()
	matches := s.filter(q.Name)
	s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		var c int
		switch q.Sort {
		case SortByName:
			// matches ORDER BY LOWER(name) in Store
			c = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case SortByPrice:
			c = a.Price.Cmp(b.Price)
		}
		if q.Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		if q.Sort == SortByID && q.Desc {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})

	start := q.offset()
	if start >= len(matches) {
		return []Product{}, nil
	}
	end := start + q.Size
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], nil
}

func (s *MemoryStore) CountProducts(_ context.Context, name string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filter(name))), nil
}

// filter must be called with the read lock held.
func (s *MemoryStore) filter(name string) []Product {
	needle := strings.ToLower(name)
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, clone(p))
		}
	}
	return out
}

func (s *MemoryStore) CreateProduct(_ context.Context, p Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p.ID = s.nextID

	cats := make([]Category, 0, len(p.Categories))
	seen := map[int64]bool{}
	for _, c := range p.Categories {
		if stored, ok := s.categories[c.ID]; ok && !seen[c.ID] {
			seen[c.ID] = true
			cats = append(cats, stored)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	p.Categories = cats

	s.products[p.ID] = clone(p)
	return &p, nil
}

func (s *MemoryStore) FindCategories(_ context.Context, ids []int64) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Category{}
	seen := map[int64]bool{}
	for _, id := range ids {
		if c, ok := s.categories[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) ListCategories(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func clone(p Product) Product {
	p.Categories = append([]Category(nil), p.Categories...)
	return p
}
