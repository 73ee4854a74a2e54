package storefront

import (
	"context"

	"github.com/xiebiao/storefront/pkg/catalogclient"
)

// 管理后台：直接调用目录服务的增删改接口，不经过购物车

// GetBook 编辑前加载
func (s *Session) GetBook(ctx context.Context, id uint) (*catalogclient.Book, error) {
	return s.catalog.GetBook(ctx, id)
}

// AddBook 新增图书
func (s *Session) AddBook(ctx context.Context, b catalogclient.Book) (*catalogclient.Book, error) {
	b.BookID = 0
	return s.catalog.CreateBook(ctx, b)
}

// EditBook 整体覆盖图书
func (s *Session) EditBook(ctx context.Context, id uint, b catalogclient.Book) (*catalogclient.Book, error) {
	b.BookID = id
	return s.catalog.UpdateBook(ctx, id, b)
}

// RemoveBook 删除图书
// 已在购物车中的条目保留(购物车只持有快照)
func (s *Session) RemoveBook(ctx context.Context, id uint) error {
	return s.catalog.DeleteBook(ctx, id)
}
