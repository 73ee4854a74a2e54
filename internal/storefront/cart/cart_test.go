package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xiebiao/storefront/pkg/money"
)

func TestAddMergesSameBook(t *testing.T) {
	s := New()
	s.Add(Item{BookID: 1, Title: "Dune", Price: 1000, Quantity: 2})
	s.Add(Item{BookID: 1, Title: "Dune (renamed)", Price: 1, Quantity: 3})

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	// 快照保持首次加入时的值
	assert.Equal(t, "Dune", items[0].Title)
	assert.Equal(t, money.Cents(1000), items[0].Price)
}

func TestRemove(t *testing.T) {
	s := New()
	s.Add(Item{BookID: 1, Quantity: 2})
	s.Remove(1)
	assert.Empty(t, s.List())

	// 不存在的条目
	s.Remove(42)
	assert.Zero(t, s.Len())
}

func TestRemoveKeepsOrder(t *testing.T) {
	s := New()
	for id := uint(1); id <= 4; id++ {
		s.Add(Item{BookID: id, Quantity: 1})
	}
	s.Remove(2)
	s.Add(Item{BookID: 4, Quantity: 1})

	var ids []uint
	for _, item := range s.List() {
		ids = append(ids, item.BookID)
	}
	assert.Equal(t, []uint{1, 3, 4}, ids)
	assert.Equal(t, 2, s.Quantity(4))
	assert.Zero(t, s.Quantity(2))
}

func TestTotal(t *testing.T) {
	s := New()
	s.Add(Item{BookID: 1, Price: money.FromFloat(10), Quantity: 2})
	s.Add(Item{BookID: 2, Price: money.FromFloat(5), Quantity: 1})

	assert.Equal(t, money.Cents(2500), s.Total())
	assert.Equal(t, "25.00", s.Total().String())
	assert.Equal(t, "0.00", New().Total().String())
}

func TestAddIgnoresNonPositiveQuantity(t *testing.T) {
	s := New()
	s.Add(Item{BookID: 1, Quantity: 0})
	s.Add(Item{BookID: 2, Quantity: -1})
	assert.Zero(t, s.Len())
}

func TestListReturnsCopy(t *testing.T) {
	s := New()
	s.Add(Item{BookID: 1, Quantity: 1})
	items := s.List()
	items[0].Quantity = 99
	assert.Equal(t, 1, s.Quantity(1))
}

// 任意Add/Remove序列后：每个BookID至多一条，数量等于累计值，合计等于各行小计之和
func TestStoreProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		want := map[uint]int{}
		prices := map[uint]money.Cents{}

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.UintRange(1, 6).Draw(t, "bookID")
			if rapid.Bool().Draw(t, "remove") {
				s.Remove(id)
				delete(want, id)
				delete(prices, id)
				continue
			}
			qty := rapid.IntRange(-2, 5).Draw(t, "qty")
			price := money.Cents(rapid.Int64Range(0, 10000).Draw(t, "price"))
			s.Add(Item{BookID: id, Price: price, Quantity: qty})
			if qty > 0 {
				if _, ok := prices[id]; !ok {
					prices[id] = price
				}
				want[id] += qty
			}
		}

		seen := map[uint]bool{}
		var total money.Cents
		for _, item := range s.List() {
			if seen[item.BookID] {
				t.Fatalf("duplicate entry for book %d", item.BookID)
			}
			seen[item.BookID] = true
			if item.Quantity != want[item.BookID] {
				t.Fatalf("book %d: quantity %d, want %d", item.BookID, item.Quantity, want[item.BookID])
			}
			total += prices[item.BookID].Mul(want[item.BookID])
		}
		if len(seen) != len(want) {
			t.Fatalf("cart has %d entries, want %d", len(seen), len(want))
		}
		if s.Total() != total {
			t.Fatalf("total %s, want %s", s.Total(), total)
		}
	})
}
