package book

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/book"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/mq"
)

// DeleteBookUseCase 删除图书用例
// 重复删除同一ID每次都返回book.ErrBookNotFound
type DeleteBookUseCase struct {
	bookService book.Service
	publisher   mq.Publisher
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, publisher mq.Publisher) *DeleteBookUseCase {
	metrics.InitMetrics()
	return &DeleteBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	err := observe(ctx, "delete_book", func(ctx context.Context) error {
		return uc.bookService.DeleteBook(ctx, id)
	})
	if err != nil {
		return err
	}

	publish(ctx, uc.publisher, BookEvent{Event: EventBookDeleted, BookID: id})
	return nil
}
