package fixtures

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductsOrderedByID(t *testing.T) {
	ps := Products()
	for i := 1; i < len(ps); i++ {
		assert.Less(t, ps[i-1].ID, ps[i].ID)
	}
}

func TestNameFilterShape(t *testing.T) {
	var matches []Product
	for _, p := range Products() {
		if strings.Contains(strings.ToLower(p.Name), "pc") {
			matches = append(matches, p)
		}
	}
	assert.Len(t, matches, 21)
	assert.Equal(t, "PC Gamer Ex", matches[1].Name)
}

func TestReferencesResolve(t *testing.T) {
	cats := map[int64]bool{}
	for _, c := range Categories() {
		cats[c.ID] = true
	}
	products := map[int64]bool{}
	for _, p := range Products() {
		products[p.ID] = true
		assert.NotEmpty(t, p.CategoryIDs, p.Name)
		for _, id := range p.CategoryIDs {
			assert.True(t, cats[id], "product %d category %d", p.ID, id)
		}
	}
	users := map[int64]bool{}
	for _, u := range Users() {
		users[u.ID] = true
	}
	for _, o := range Orders() {
		assert.True(t, users[o.ClientID])
		for _, it := range o.Items {
			assert.True(t, products[it.ProductID])
		}
	}
}
