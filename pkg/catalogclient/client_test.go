package catalogclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/pkg/money"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts = append([]Option{
		WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	}, opts...)
	return New(srv.URL+"/", opts...), srv
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListBooksEncodesQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("pageSize"))
		assert.Equal(t, "2", q.Get("pageNum"))
		assert.Equal(t, []string{"Fiction", "Biography"}, q["category"])
		assert.Equal(t, "title", q.Get("sortBy"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"books":         []map[string]interface{}{{"bookID": 7, "title": "Emma", "price": 9.99}},
			"totalNumBooks": 11,
		})
	})

	page, err := c.ListBooks(context.Background(), ListQuery{
		PageSize:   10,
		PageNum:    2,
		Categories: []string{"Fiction", "Biography"},
		SortBy:     "title",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.TotalNumBooks)
	require.Len(t, page.Books, 1)
	assert.Equal(t, uint(7), page.Books[0].BookID)
	assert.Equal(t, money.Cents(999), page.Books[0].Price)
}

func TestListBooksOmitsZeroParams(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]interface{}{"books": nil, "totalNumBooks": 0})
	})

	page, err := c.ListBooks(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.NotNil(t, page.Books)
	assert.Empty(t, page.Books)
}

func TestAPIErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       interface{}
		message    string
		notFound   bool
		validation bool
		transient  bool
	}{
		{"not found", http.StatusNotFound, map[string]string{"message": "Book not found."}, "Book not found.", true, false, false},
		{"validation", http.StatusBadRequest, map[string]string{"message": "Title is required."}, "Title is required.", false, true, false},
		{"rate limited", http.StatusTooManyRequests, map[string]string{"message": "Too many requests."}, "Too many requests.", false, false, true},
		{"unavailable without body", http.StatusServiceUnavailable, nil, "Service Unavailable", false, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tc.body == nil {
					w.WriteHeader(tc.status)
					return
				}
				writeJSON(w, tc.status, tc.body)
			}, WithMaxRetries(0))

			_, err := c.GetBook(context.Background(), 1)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.message, apiErr.Message)
			assert.Equal(t, tc.notFound, IsNotFound(err))
			assert.Equal(t, tc.validation, IsValidation(err))
			assert.Equal(t, tc.transient, IsTransient(err))
		})
	}
}

func TestGetRetriesTransientErrors(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "Service temporarily unavailable."})
			return
		}
		writeJSON(w, http.StatusOK, []string{"Biography", "Fiction"})
	})

	categories, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Biography", "Fiction"}, categories)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found."})
	})

	_, err := c.GetBook(context.Background(), 404)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMutationsAreNotRetried(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "Service temporarily unavailable."})
	})

	_, err := c.CreateBook(context.Background(), Book{Title: "Dune"})
	assert.True(t, IsTransient(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateUpdateDelete(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/books":
			var in map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "Dune", in["title"])
			assert.Equal(t, 14.99, in["price"])
			in["bookID"] = 1
			writeJSON(w, http.StatusOK, in)
		case r.Method == http.MethodPut && r.URL.Path == "/books/1":
			var in map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			in["bookID"] = 1
			writeJSON(w, http.StatusOK, in)
		case r.Method == http.MethodDelete && r.URL.Path == "/books/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	ctx := context.Background()

	created, err := c.CreateBook(ctx, Book{Title: "Dune", Price: 1499})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.BookID)

	updated, err := c.UpdateBook(ctx, created.BookID, Book{Title: "Dune Messiah"})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)

	require.NoError(t, c.DeleteBook(ctx, created.BookID))
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	},
		WithMaxRetries(0),
		WithBreakerSettings(gobreaker.Settings{
			Name:    "catalog-test",
			Timeout: time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 2
			},
		}),
	)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.GetBook(ctx, 1)
		require.Error(t, err)
	}

	_, err := c.GetBook(ctx, 1)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsTransient(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found."})
	},
		WithBreakerSettings(gobreaker.Settings{
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 1
			},
		}),
	)

	for i := 0; i < 3; i++ {
		_, err := c.GetBook(context.Background(), 9)
		assert.True(t, IsNotFound(err))
	}
}

func TestCanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []string{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListCategories(ctx)
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}
