package orders

import (
	"context"
	"sort"

	"commerce-api/internal/fixtures"
)

// MemoryStore serves the seeded orders from memory. Orders are never
// written after construction, so reads need no locking.
type MemoryStore struct {
	orders map[int64]Order
}

func NewMemoryStore() *MemoryStore {
	users := map[int64]fixtures.User{}
	for _, u := range fixtures.Users() {
		users[u.ID] = u
	}
	products := map[int64]fixtures.Product{}
	for _, p := range fixtures.Products() {
		products[p.ID] = p
	}

	s := &MemoryStore{orders: make(map[int64]Order)}
	for _, fo := range fixtures.Orders() {
		u := users[fo.ClientID]
		o := Order{
			ID:     fo.ID,
			Moment: fo.Moment,
			Status: Status(fo.Status),
			Client: Client{ID: u.ID, Name: u.Name, Email: u.Email},
		}
		for _, fi := range fo.Items {
			p := products[fi.ProductID]
			o.Items = append(o.Items, Item{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     fi.Price,
				Quantity:  fi.Quantity,
				ImgURL:    p.ImgURL,
			})
		}
		sort.Slice(o.Items, func(i, j int) bool { return o.Items[i].ProductID < o.Items[j].ProductID })
		s.orders[o.ID] = o
	}
	return s
}

func (s *MemoryStore) GetOrder(_ context.Context, id int64) (*Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Items = append([]Item(nil), o.Items...)
	return &o, nil
}
