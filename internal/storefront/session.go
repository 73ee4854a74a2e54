// Package storefront 店面会话
//
// 对应浏览器端单页应用的状态：分页浏览目录、把图书加入购物车、
// 查看购物车合计，以及管理后台的增删改。所有目录数据都通过HTTP API获取，
// 购物车由调用方创建后注入。
package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/xiebiao/storefront/internal/storefront/cart"
	"github.com/xiebiao/storefront/pkg/catalogclient"
)

// PageSizes 浏览页可选的每页条数
var PageSizes = []int{5, 10, 20}

// DefaultPageSize 默认每页条数
const DefaultPageSize = 5

var (
	ErrInvalidPageSize = errors.New("page size must be one of 5, 10, 20")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Catalog 会话依赖的目录操作(*catalogclient.Client实现)
type Catalog interface {
	ListBooks(ctx context.Context, q catalogclient.ListQuery) (*catalogclient.BookPage, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetBook(ctx context.Context, id uint) (*catalogclient.Book, error)
	CreateBook(ctx context.Context, b catalogclient.Book) (*catalogclient.Book, error)
	UpdateBook(ctx context.Context, id uint, b catalogclient.Book) (*catalogclient.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

// Session 一个店面会话
type Session struct {
	catalog Catalog
	cart    *cart.Store
}

// NewSession 创建会话
func NewSession(catalog Catalog, store *cart.Store) *Session {
	return &Session{catalog: catalog, cart: store}
}

// BrowseOptions 浏览条件，零值使用默认值(第1页，每页5条，不过滤)
type BrowseOptions struct {
	PageSize   int
	PageNum    int
	Categories []string
	SortBy     string
}

// Page 一页浏览结果
type Page struct {
	Books      []catalogclient.Book
	PageNum    int
	PageSize   int
	Total      int64
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Browse 获取一页图书
func (s *Session) Browse(ctx context.Context, opts BrowseOptions) (*Page, error) {
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if !validPageSize(opts.PageSize) {
		return nil, ErrInvalidPageSize
	}
	if opts.PageNum <= 0 {
		opts.PageNum = 1
	}

	result, err := s.catalog.ListBooks(ctx, catalogclient.ListQuery{
		PageSize:   opts.PageSize,
		PageNum:    opts.PageNum,
		Categories: opts.Categories,
		SortBy:     opts.SortBy,
	})
	if err != nil {
		return nil, fmt.Errorf("browse page %d: %w", opts.PageNum, err)
	}

	totalPages := int((result.TotalNumBooks + int64(opts.PageSize) - 1) / int64(opts.PageSize))
	return &Page{
		Books:      result.Books,
		PageNum:    opts.PageNum,
		PageSize:   opts.PageSize,
		Total:      result.TotalNumBooks,
		TotalPages: totalPages,
		HasPrev:    opts.PageNum > 1,
		HasNext:    opts.PageNum < totalPages,
	}, nil
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Categories 分类过滤选项
func (s *Session) Categories(ctx context.Context) ([]string, error) {
	return s.catalog.ListCategories(ctx)
}

// Buy 把浏览到的图书加入购物车(快照当前书名和价格)
func (s *Session) Buy(b catalogclient.Book, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	s.cart.Add(cart.Item{
		BookID:   b.BookID,
		Title:    b.Title,
		Price:    b.Price,
		Quantity: quantity,
	})
	return nil
}

// BuyByID 先从目录获取图书再加入购物车，获取失败时购物车不变
func (s *Session) BuyByID(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b, err := s.catalog.GetBook(ctx, id)
	if err != nil {
		return fmt.Errorf("buy book %d: %w", id, err)
	}
	return s.Buy(*b, quantity)
}

// RemoveFromCart 从购物车移除
func (s *Session) RemoveFromCart(bookID uint) {
	s.cart.Remove(bookID)
}

// CartLine 购物车页的一行
type CartLine struct {
	BookID   uint
	Title    string
	Price    string
	Quantity int
	Subtotal string
}

// CartView 购物车页
type CartView struct {
	Lines []CartLine
	Total string
}

// Cart 购物车页数据，金额在这里才格式化为两位小数
func (s *Session) Cart() CartView {
	items := s.cart.List()
	view := CartView{
		Lines: make([]CartLine, 0, len(items)),
		Total: s.cart.Total().String(),
	}
	for _, item := range items {
		view.Lines = append(view.Lines, CartLine{
			BookID:   item.BookID,
			Title:    item.Title,
			Price:    item.Price.String(),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().String(),
		})
	}
	return view
}
