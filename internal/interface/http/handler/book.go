package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/storefront/internal/application/book"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/money"
	"github.com/xiebiao/storefront/pkg/response"
)

var (
	errInvalidID    = apperrors.Validation("Book id must be a positive integer.")
	errInvalidQuery = apperrors.New(apperrors.ErrCodeBindError, "Invalid query parameters.")
	errInvalidPrice = apperrors.Validation("Price must be a decimal number with at most two fractional digits.")
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooks      *appbook.ListBooksUseCase
	listCategories *appbook.ListCategoriesUseCase
	getBook        *appbook.GetBookUseCase
	createBook     *appbook.CreateBookUseCase
	updateBook     *appbook.UpdateBookUseCase
	deleteBook     *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	listCategories *appbook.ListCategoriesUseCase,
	getBook *appbook.GetBookUseCase,
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:      listBooks,
		listCategories: listCategories,
		getBook:        getBook,
		createBook:     createBook,
		updateBook:     updateBook,
		deleteBook:     deleteBook,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按分类集合过滤并分页，total为过滤后的总数
// @Tags         图书
// @Produce      json
// @Param        pageSize query int      false "每页数量(1-100)" default(5)
// @Param        pageNum  query int      false "页码(从1开始)"   default(1)
// @Param        category query []string false "分类(可重复)"    collectionFormat(multi)
// @Param        sortBy   query string   false "排序"            Enums(title_asc, title_desc)
// @Success      200 {object} dto.ListBooksResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      503 {object} response.ErrorBody "存储不可用"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, errInvalidQuery)
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), query.ToRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewListBooksResponse(result))
}

// ListCategories 分类列表
// @Summary      分类列表
// @Description  不重复的分类，升序
// @Tags         图书
// @Produce      json
// @Success      200 {array} string
// @Failure      503 {object} response.ErrorBody "存储不可用"
// @Router       /books/categories [get]
func (h *BookHandler) ListCategories(c *gin.Context) {
	categories, err := h.listCategories.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.Book
// @Failure      400 {object} response.ErrorBody "ID格式错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	b, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromEntity(b))
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  请求体中的bookID被忽略，由服务端分配
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.Book true "图书信息"
// @Success      200 {object} dto.Book
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      429 {object} response.ErrorBody "请求过于频繁"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	req, ok := bindBook(c)
	if !ok {
		return
	}

	created, err := h.createBook.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromEntity(created))
}

// UpdateBook 整体覆盖图书
// @Summary      更新图书
// @Description  覆盖所有字段(不支持部分更新)，以路径中的ID为准
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path int      true "图书ID"
// @Param        request body dto.Book true "图书信息"
// @Success      200 {object} dto.Book
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	req, ok := bindBook(c)
	if !ok {
		return
	}

	updated, err := h.updateBook.Execute(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromEntity(updated))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204 "已删除"
// @Failure      400 {object} response.ErrorBody "ID格式错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// bindBook 解析请求体，失败时已写入400响应
// 价格格式错误单独提示，其余按请求体格式错误处理
func bindBook(c *gin.Context) (dto.Book, bool) {
	var req dto.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, money.ErrInvalidAmount) || errors.Is(err, money.ErrTooPrecise) {
			response.Error(c, errInvalidPrice)
		} else {
			response.Error(c, apperrors.ErrBindError)
		}
		return dto.Book{}, false
	}
	return req, true
}

// bookID 解析路径参数id,失败时已写入400响应
func bookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, errInvalidID)
		return 0, false
	}
	return uint(id), true
}
