package book

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/book"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// GetBookUseCase 图书详情用例(管理后台编辑前重新加载)
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	metrics.InitMetrics()
	return &GetBookUseCase{bookService: bookService}
}

// Execute 不存在时返回book.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*book.Book, error) {
	var b *book.Book
	err := observe(ctx, "get_book", func(ctx context.Context) error {
		var err error
		b, err = uc.bookService.GetBook(ctx, id)
		return err
	})
	return b, err
}
