package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验与"查找或404"的转换
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// ListBooks 过滤+分页查询
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListCategories 不重复的分类列表
	ListCategories(ctx context.Context) ([]string, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// CreateBook 新增图书
	// 业务规则: 书名必填,页数/价格不能为负
	CreateBook(ctx context.Context, book *Book) (*Book, error)

	// UpdateBook 整体覆盖图书信息
	// 业务规则: 图书必须存在,校验规则同CreateBook
	UpdateBook(ctx context.Context, id uint, book *Book) (*Book, error)

	// DeleteBook 删除图书
	// 重复删除同一ID每次都返回ErrBookNotFound
	DeleteBook(ctx context.Context, id uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
	tx   Transactor
}

// NewService 创建图书领域服务
func NewService(repo Repository, tx Transactor) Service {
	return &service{repo: repo, tx: tx}
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}
	params.Categories = params.CategorySet()
	return s.repo.List(ctx, params)
}

// ListCategories 分类列表
func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	b, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// CreateBook 新增图书
func (s *service) CreateBook(ctx context.Context, book *Book) (*Book, error) {
	if err := book.Validate(); err != nil {
		return nil, err
	}

	// ID由存储层分配,忽略调用方传入的值
	book.ID = 0
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook 更新图书
// 查找与保存在同一事务中执行,不存在时返回ErrBookNotFound而不是对空值赋值
func (s *service) UpdateBook(ctx context.Context, id uint, input *Book) (*Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *Book
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		current, found, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrBookNotFound
		}

		current.Overwrite(input)
		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBookNotFound
	}
	return nil
}
