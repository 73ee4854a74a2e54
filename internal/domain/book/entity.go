package book

import (
	"strings"
	"time"

	"github.com/xiebiao/storefront/pkg/money"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ID由存储层在创建时分配,之后不可变
// 2. 价格使用money.Cents存储"分"为单位(避免浮点数精度问题)
// 3. 除ID外没有唯一性约束(ISBN、分类都可重复)
type Book struct {
	ID             uint
	Title          string
	Author         string
	Publisher      string
	ISBN           string
	Classification string
	Category       string
	PageCount      int
	Price          money.Cents
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate 业务规则校验
// - 书名必填(去除首尾空白后非空)
// - 页数、价格不能为负
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if b.PageCount < 0 {
		return ErrInvalidPageCount
	}
	if b.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Overwrite 整体覆盖所有可变字段(不支持部分更新)
// ID与创建时间保持不变
func (b *Book) Overwrite(src *Book) {
	b.Title = src.Title
	b.Author = src.Author
	b.Publisher = src.Publisher
	b.ISBN = src.ISBN
	b.Classification = src.Classification
	b.Category = src.Category
	b.PageCount = src.PageCount
	b.Price = src.Price
	b.UpdatedAt = time.Now()
}
