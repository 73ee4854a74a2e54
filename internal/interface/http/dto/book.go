package dto

import (
	appbook "github.com/xiebiao/storefront/internal/application/book"
	"github.com/xiebiao/storefront/internal/domain/book"
	"github.com/xiebiao/storefront/pkg/money"
)

// Book HTTP图书表示
// 字段名与浏览器端约定一致(camelCase),price为十进制金额
type Book struct {
	BookID         uint        `json:"bookID" example:"1"`
	Title          string      `json:"title" example:"The Go Programming Language"`
	Author         string      `json:"author" example:"Alan A. A. Donovan"`
	Publisher      string      `json:"publisher" example:"Addison-Wesley"`
	ISBN           string      `json:"isbn" example:"978-0134190440"`
	Classification string      `json:"classification" example:"Non-fiction"`
	Category       string      `json:"category" example:"Programming"`
	PageCount      int         `json:"pageCount" example:"380"`
	Price          money.Cents `json:"price" swaggertype:"number" example:"34.99"`
}

// ToInput 请求体 → 用例输入(bookID被忽略)
func (b Book) ToInput() appbook.BookInput {
	return appbook.BookInput{
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

// FromEntity 领域实体 → HTTP表示
func FromEntity(b *book.Book) Book {
	return Book{
		BookID:         b.ID,
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

// ListBooksQuery GET /books 查询参数
// 参数缺省时使用默认值(pageSize=5, pageNum=1),显式传入的非法值返回400
// category可重复出现: ?category=Fiction&category=Biography
type ListBooksQuery struct {
	PageSize int      `form:"pageSize,default=5" example:"5"`
	PageNum  int      `form:"pageNum,default=1" example:"1"`
	Category []string `form:"category"`
	SortBy   string   `form:"sortBy" example:"title_asc"`
}

// ToRequest 查询参数 → 用例请求
func (q ListBooksQuery) ToRequest() appbook.ListBooksRequest {
	return appbook.ListBooksRequest{
		PageSize:   q.PageSize,
		PageNum:    q.PageNum,
		Categories: q.Category,
		SortBy:     q.SortBy,
	}
}

// ListBooksResponse GET /books 响应
type ListBooksResponse struct {
	Books         []Book `json:"books"`
	TotalNumBooks int64  `json:"totalNumBooks" example:"12"`
}

// NewListBooksResponse 构建列表响应,books始终为数组而不是null
func NewListBooksResponse(result *appbook.ListBooksResponse) ListBooksResponse {
	books := make([]Book, len(result.Books))
	for i, b := range result.Books {
		books[i] = FromEntity(b)
	}
	return ListBooksResponse{
		Books:         books,
		TotalNumBooks: result.Total,
	}
}
