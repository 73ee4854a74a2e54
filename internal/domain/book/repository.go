package book

import (
	"context"
	"math"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法都接收context,调用方取消时查询随之中止
type Repository interface {
	// Create 创建图书,回填自增ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 不存在时返回 found=false 且 err=nil,由领域服务决定如何转换为错误
	FindByID(ctx context.Context, id uint) (book *Book, found bool, err error)

	// Update 覆盖保存所有字段
	Update(ctx context.Context, book *Book) error

	// Delete 物理删除,返回是否真的删除了记录
	Delete(ctx context.Context, id uint) (deleted bool, err error)

	// List 按分类过滤后分页查询,total为过滤后的总数
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListCategories 所有不重复的分类,升序
	ListCategories(ctx context.Context) ([]string, error)
}

// Transactor 事务执行器
// fn内通过ctx访问的Repository操作在同一事务中提交或回滚
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// 分页参数约束
const (
	DefaultPageSize = 5
	DefaultPageNum  = 1
	MaxPageSize     = 100
)

// 排序方式
const (
	SortDefault   = ""           // 按ID升序
	SortTitleAsc  = "title_asc"  // 按书名升序
	SortTitleDesc = "title_desc" // 按书名降序
)

// ListParams 列表查询参数
type ListParams struct {
	PageSize   int      // 每页数量
	PageNum    int      // 页码(从1开始)
	Categories []string // 分类集合(为空则不过滤,集合成员匹配而非模糊匹配)
	SortBy     string   // 排序方式
}

// Validate 边界处一次性校验
func (p ListParams) Validate() error {
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	// (PageNum-1)*PageSize不能溢出int
	if p.PageNum < 1 || p.PageNum > math.MaxInt/p.PageSize {
		return ErrInvalidPageNum
	}
	switch p.SortBy {
	case SortDefault, SortTitleAsc, SortTitleDesc:
	default:
		return ErrInvalidSort
	}
	return nil
}

// Offset 跳过的行数
func (p ListParams) Offset() int {
	return (p.PageNum - 1) * p.PageSize
}

// CategorySet 去重后的分类集合(保持首次出现的顺序,忽略空串)
func (p ListParams) CategorySet() []string {
	if len(p.Categories) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(p.Categories))
	set := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		set = append(set, c)
	}
	return set
}

// TotalPages 总页数 = ceil(total / pageSize)
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
