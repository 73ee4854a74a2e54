package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/book"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 所有数据库错误都包装为瞬时存储错误,不在本层吞掉
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = 0

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.WrapStorage(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
// 记录不存在不是错误,返回found=false
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, bool, error) {
	var model BookModel
	err := r.getDB(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, apperrors.WrapStorage(err, "查询图书失败")
	}
	return toBookEntity(&model), true, nil
}

// Update 更新图书(Save覆盖所有字段)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return apperrors.WrapStorage(err, "更新图书失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 物理删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.getDB(ctx).Delete(&BookModel{}, id)
	if result.Error != nil {
		return false, apperrors.WrapStorage(result.Error, "删除图书失败")
	}
	return result.RowsAffected > 0, nil
}

// List 按分类过滤 + 分页
// 1. WHERE category IN (...)  (集合成员匹配)
// 2. COUNT(*) 得到过滤后的总数
// 3. ORDER BY + LIMIT/OFFSET
// 页码超出范围时返回空列表和正确的总数
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	filtered := func() *gorm.DB {
		q := r.getDB(ctx).Model(&BookModel{})
		if len(params.Categories) > 0 {
			q = q.Where("category IN ?", params.Categories)
		}
		return q
	}

	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapStorage(err, "查询图书总数失败")
	}
	if total == 0 || int64(params.Offset()) >= total {
		return []*book.Book{}, total, nil
	}

	// 排序必须确定,否则相邻页之间可能重复或遗漏
	query := filtered()
	switch params.SortBy {
	case book.SortTitleAsc:
		query = query.Order("title ASC").Order("book_id ASC")
	case book.SortTitleDesc:
		query = query.Order("title DESC").Order("book_id ASC")
	default:
		query = query.Order("book_id ASC")
	}

	if err := query.Limit(params.PageSize).Offset(params.Offset()).Find(&models).Error; err != nil {
		return nil, 0, apperrors.WrapStorage(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// ListCategories 不重复的分类(升序)
func (r *bookRepository) ListCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.getDB(ctx).Model(&BookModel{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "查询图书分类失败")
	}
	return categories, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Publisher:      b.Publisher,
		ISBN:           b.ISBN,
		Classification: b.Classification,
		Category:       b.Category,
		PageCount:      b.PageCount,
		Price:          b.Price,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:             model.ID,
		Title:          model.Title,
		Author:         model.Author,
		Publisher:      model.Publisher,
		ISBN:           model.ISBN,
		Classification: model.Classification,
		Category:       model.Category,
		PageCount:      model.PageCount,
		Price:          model.Price,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,没有则使用默认DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}
