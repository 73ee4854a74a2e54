package book

import (
	"context"
	"time"

	"github.com/xiebiao/storefront/internal/domain/book"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/money"
	"github.com/xiebiao/storefront/pkg/tracing"
)

const tracerName = "bookstore/catalog"

// observe 为一次用例执行创建Span并记录指标
func observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog."+operation)
	err := fn(ctx)
	tracing.EndSpan(span, err)
	metrics.ObserveCatalogOperation(operation, start, resultOf(err))
	return err
}

// resultOf 错误分类 → 指标标签
func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsNotFound(err):
		return "not_found"
	case apperrors.IsValidation(err):
		return "invalid"
	default:
		return "error"
	}
}

// BookInput 创建/更新图书的输入
// 不包含ID：创建时由存储层分配，更新时以路径参数为准
type BookInput struct {
	Title          string
	Author         string
	Publisher      string
	ISBN           string
	Classification string
	Category       string
	PageCount      int
	Price          money.Cents
}

func (in BookInput) toEntity() *book.Book {
	return &book.Book{
		Title:          in.Title,
		Author:         in.Author,
		Publisher:      in.Publisher,
		ISBN:           in.ISBN,
		Classification: in.Classification,
		Category:       in.Category,
		PageCount:      in.PageCount,
		Price:          in.Price,
	}
}
