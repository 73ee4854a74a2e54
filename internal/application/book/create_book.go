package book

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/book"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/mq"
)

// CreateBookUseCase 新增图书用例
// 设计说明:
// 1. 应用层负责用例编排:校验和持久化交给领域服务,提交后发布book.created事件
// 2. 调用方传入的ID被忽略,由存储层分配
type CreateBookUseCase struct {
	bookService book.Service
	publisher   mq.Publisher
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service, publisher mq.Publisher) *CreateBookUseCase {
	metrics.InitMetrics()
	return &CreateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// Execute 执行新增图书用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, input BookInput) (*book.Book, error) {
	var created *book.Book
	err := observe(ctx, "create_book", func(ctx context.Context) error {
		var err error
		created, err = uc.bookService.CreateBook(ctx, input.toEntity())
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.publisher, BookEvent{
		Event:  EventBookCreated,
		BookID: created.ID,
		Book:   snapshotOf(created),
	})
	return created, nil
}
