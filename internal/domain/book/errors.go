package book

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在(NotFoundError)
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found.")

	// ErrTitleRequired 书名必填
	ErrTitleRequired = apperrors.Validation("Title is required.")

	// ErrInvalidPageCount 页数不能为负
	ErrInvalidPageCount = apperrors.Validation("Page count must not be negative.")

	// ErrInvalidPrice 价格不能为负
	ErrInvalidPrice = apperrors.Validation("Price must not be negative.")

	// ErrInvalidPageSize 每页数量不合法
	ErrInvalidPageSize = apperrors.Validation("pageSize must be between 1 and 100.")

	// ErrInvalidPageNum 页码不合法
	ErrInvalidPageNum = apperrors.Validation("pageNum must be a positive integer.")

	// ErrInvalidSort 排序方式不合法
	ErrInvalidSort = apperrors.Validation("sortBy must be one of title_asc, title_desc.")
)
