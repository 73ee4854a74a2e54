// Package catalogclient 目录服务HTTP客户端
//
// 店面会话和管理后台通过该客户端访问目录API：
// 1. 幂等的GET请求在瞬时错误时按指数退避重试
// 2. 所有请求经过熔断器，目录服务持续不可用时快速失败
// 3. 非2xx响应解析为APIError{Status, Message}
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/money"
)

// Book 目录服务中的图书
type Book struct {
	BookID         uint        `json:"bookID"`
	Title          string      `json:"title"`
	Author         string      `json:"author"`
	Publisher      string      `json:"publisher"`
	ISBN           string      `json:"isbn"`
	Classification string      `json:"classification"`
	Category       string      `json:"category"`
	PageCount      int         `json:"pageCount"`
	Price          money.Cents `json:"price"`
}

// ListQuery 列表查询参数，零值字段不发送(使用服务端默认值)
type ListQuery struct {
	PageSize   int
	PageNum    int
	Categories []string
	SortBy     string
}

// BookPage 一页图书和过滤后的总数
type BookPage struct {
	Books         []Book `json:"books"`
	TotalNumBooks int64  `json:"totalNumBooks"`
}

// Client 目录服务客户端，可并发使用
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	maxRetries uint64
	backoff    func() backoff.BackOff
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 自定义http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxRetries GET请求的最大重试次数(不含首次)
func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackOff 自定义退避策略
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(c *Client) { c.backoff = fn }
}

// WithBreakerSettings 自定义熔断器(Name为空时使用默认名)
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(c *Client) { c.breaker = newBreaker(st) }
}

// New 创建客户端
func New(baseURL string, opts ...Option) *Client {
	metrics.InitMetrics()

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxRetries: 3,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = newBreaker(gobreaker.Settings{})
	}
	return c
}

// newBreaker 默认：连续5次瞬时失败后打开，30秒后半开探测
// 4xx不计为失败(调用方的问题，不代表服务不可用)
func newBreaker(st gobreaker.Settings) *gobreaker.CircuitBreaker {
	if st.Name == "" {
		st.Name = "catalog"
	}
	if st.Timeout == 0 {
		st.Timeout = 30 * time.Second
	}
	if st.ReadyToTrip == nil {
		st.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		}
	}
	if st.IsSuccessful == nil {
		st.IsSuccessful = func(err error) bool {
			return err == nil || !IsTransient(err)
		}
	}
	onChange := st.OnStateChange
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("熔断器状态变化")
		if onChange != nil {
			onChange(name, from, to)
		}
	}
	return gobreaker.NewCircuitBreaker(st)
}

// ListBooks GET /books
func (c *Client) ListBooks(ctx context.Context, q ListQuery) (*BookPage, error) {
	params := url.Values{}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.PageNum > 0 {
		params.Set("pageNum", strconv.Itoa(q.PageNum))
	}
	for _, category := range q.Categories {
		params.Add("category", category)
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}

	var page BookPage
	if err := c.get(ctx, "/books", params, &page); err != nil {
		return nil, err
	}
	if page.Books == nil {
		page.Books = []Book{}
	}
	return &page, nil
}

// ListCategories GET /books/categories
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	if err := c.get(ctx, "/books/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBook GET /books/{id}
func (c *Client) GetBook(ctx context.Context, id uint) (*Book, error) {
	var b Book
	if err := c.get(ctx, bookPath(id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBook POST /books，返回服务端分配ID后的图书
func (c *Client) CreateBook(ctx context.Context, b Book) (*Book, error) {
	var created Book
	if err := c.send(ctx, http.MethodPost, "/books", b, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBook PUT /books/{id}，整体覆盖
func (c *Client) UpdateBook(ctx context.Context, id uint, b Book) (*Book, error) {
	var updated Book
	if err := c.send(ctx, http.MethodPut, bookPath(id), b, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBook DELETE /books/{id}
func (c *Client) DeleteBook(ctx context.Context, id uint) error {
	return c.send(ctx, http.MethodDelete, bookPath(id), nil, nil)
}

func bookPath(id uint) string {
	return "/books/" + strconv.FormatUint(uint64(id), 10)
}

// get 幂等请求：经过熔断器，瞬时错误时重试
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.backoff(), c.maxRetries), ctx)
	return backoff.Retry(func() error {
		err := c.do(ctx, http.MethodGet, target, nil, out)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}

// send 非幂等请求：经过熔断器，不重试
func (c *Client) send(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("catalog: encode request: %w", err)
		}
	}
	return c.do(ctx, method, c.baseURL+path, body, out)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, out interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, target, body, out)
	})

	metrics.CatalogClientRequestsTotal.WithLabelValues(method, clientResult(err)).Inc()
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, target string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err == nil {
		apiErr.Message = payload.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func clientResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	default:
		return "failure"
	}
}
