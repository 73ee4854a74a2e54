package book

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/book"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/mq"
)

// UpdateBookUseCase 整体覆盖图书用例
// 设计说明:
// 1. 不支持部分更新,未提供的字段被置为零值
// 2. 图书不存在时返回book.ErrBookNotFound(HTTP 404)
// 3. 提交后发布book.updated事件
type UpdateBookUseCase struct {
	bookService book.Service
	publisher   mq.Publisher
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, publisher mq.Publisher) *UpdateBookUseCase {
	metrics.InitMetrics()
	return &UpdateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// Execute 执行更新用例,id来自路径参数
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, input BookInput) (*book.Book, error) {
	var updated *book.Book
	err := observe(ctx, "update_book", func(ctx context.Context) error {
		var err error
		updated, err = uc.bookService.UpdateBook(ctx, id, input.toEntity())
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.publisher, BookEvent{
		Event:  EventBookUpdated,
		BookID: updated.ID,
		Book:   snapshotOf(updated),
	})
	return updated, nil
}
