package book

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/storefront/internal/domain/book"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/money"
	"github.com/xiebiao/storefront/pkg/mq"
)

// 图书事件路由键(Topic Exchange，下游可用 book.* 订阅)
const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
)

// BookEvent 图书变更事件
// 删除事件只携带BookID
type BookEvent struct {
	Event      string        `json:"event"`
	BookID     uint          `json:"bookID"`
	Book       *BookSnapshot `json:"book,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// BookSnapshot 事件中的图书快照
type BookSnapshot struct {
	Title          string      `json:"title"`
	Author         string      `json:"author"`
	Publisher      string      `json:"publisher"`
	ISBN           string      `json:"isbn"`
	Classification string      `json:"classification"`
	Category       string      `json:"category"`
	PageCount      int         `json:"pageCount"`
	Price          money.Cents `json:"price"`
}

func snapshotOf(b *book.Book) *BookSnapshot {
	return &BookSnapshot{
		Title:          b.Title,
		Author:         b.Author,
		Publisher:      b.Publisher,
		ISBN:           b.ISBN,
		Classification: b.Classification,
		Category:       b.Category,
		PageCount:      b.PageCount,
		Price:          b.Price,
	}
}

// publish 在事务提交后发布事件
// 发布失败只记录日志，不影响已经提交的操作
// 指标在用例构造时注册(metrics.InitMetrics)
func publish(ctx context.Context, publisher mq.Publisher, event BookEvent) {
	event.OccurredAt = time.Now().UTC()

	if err := publisher.Publish(ctx, event.Event, event); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(event.Event, "failure").Inc()
		log.Ctx(ctx).Warn().
			Err(err).
			Str("event", event.Event).
			Uint("book_id", event.BookID).
			Msg("图书事件发布失败")
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(event.Event, "success").Inc()
}
