package book

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/book"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持按分类集合过滤、分页、按书名排序
// 2. 参数在HTTP边界绑定为类型化结构,这里只做一次校验(由领域服务完成)
// 3. 页码超出范围时返回空列表,总数仍为过滤后的总数
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	metrics.InitMetrics()
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	PageSize   int      // 每页数量(1~100)
	PageNum    int      // 页码(从1开始)
	Categories []string // 分类集合,为空不过滤
	SortBy     string   // title_asc | title_desc | 空(按ID)
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	Books      []*book.Book
	Total      int64 // 过滤后的总数
	PageSize   int
	PageNum    int
	TotalPages int
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	params := book.ListParams{
		PageSize:   req.PageSize,
		PageNum:    req.PageNum,
		Categories: req.Categories,
		SortBy:     req.SortBy,
	}

	var resp *ListBooksResponse
	err := observe(ctx, "list_books", func(ctx context.Context) error {
		books, total, err := uc.bookService.ListBooks(ctx, params)
		if err != nil {
			return err
		}
		if books == nil {
			books = []*book.Book{}
		}
		resp = &ListBooksResponse{
			Books:      books,
			Total:      total,
			PageSize:   req.PageSize,
			PageNum:    req.PageNum,
			TotalPages: book.TotalPages(total, req.PageSize),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
