// Package cart 店面购物车(单个会话内的内存状态)
//
// Store由调用方显式创建并注入到会话中，不存在包级全局状态。
// 同一个Store只属于一个会话，不做并发保护。
package cart

import "github.com/xiebiao/storefront/pkg/money"

// Item 购物车条目
// Title/Price是加入购物车时的快照，目录后续变化不会回写
type Item struct {
	BookID   uint
	Title    string
	Price    money.Cents
	Quantity int
}

// Subtotal 单行小计
func (i Item) Subtotal() money.Cents {
	return i.Price.Mul(i.Quantity)
}

// Store 购物车
type Store struct {
	items []Item
	index map[uint]int // BookID → items下标
}

// New 创建空购物车
func New() *Store {
	return &Store{index: make(map[uint]int)}
}

// Add 加入购物车
// 同一BookID只保留一条，重复加入时累加数量(快照保持首次加入时的值)
// 数量<=0的条目直接忽略
func (s *Store) Add(item Item) {
	if item.Quantity <= 0 {
		return
	}
	if i, ok := s.index[item.BookID]; ok {
		s.items[i].Quantity += item.Quantity
		return
	}
	s.index[item.BookID] = len(s.items)
	s.items = append(s.items, item)
}

// Remove 移除条目，不存在时什么也不做
func (s *Store) Remove(bookID uint) {
	i, ok := s.index[bookID]
	if !ok {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, bookID)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].BookID] = j
	}
}

// List 按加入顺序返回条目副本
func (s *Store) List() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total 合计(分)，展示时再格式化为两位小数
func (s *Store) Total() money.Cents {
	var total money.Cents
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Len 条目数(不是件数)
func (s *Store) Len() int {
	return len(s.items)
}

// Quantity 某本书的数量，不在购物车中返回0
func (s *Store) Quantity(bookID uint) int {
	if i, ok := s.index[bookID]; ok {
		return s.items[i].Quantity
	}
	return 0
}
