package book

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/book"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// ListCategoriesUseCase 分类列表用例
type ListCategoriesUseCase struct {
	bookService book.Service
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(bookService book.Service) *ListCategoriesUseCase {
	metrics.InitMetrics()
	return &ListCategoriesUseCase{bookService: bookService}
}

// Execute 返回不重复且升序的分类,没有图书时返回空切片
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]string, error) {
	var categories []string
	err := observe(ctx, "list_categories", func(ctx context.Context) error {
		var err error
		categories, err = uc.bookService.ListCategories(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
