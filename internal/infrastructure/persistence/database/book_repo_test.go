package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xiebiao/storefront/internal/domain/book"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/money"
)

func setupRepo(t testing.TB) (book.Repository, *TxManager) {
	t.Helper()
	db, cleanup, err := NewDB(MemoryConfig())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewBookRepository(db), NewTxManager(db)
}

func seedBooks(t testing.TB, repo book.Repository, n int, categoryOf func(i int) string) []*book.Book {
	t.Helper()
	ctx := context.Background()
	books := make([]*book.Book, 0, n)
	for i := 0; i < n; i++ {
		b := &book.Book{
			Title:     fmt.Sprintf("Book %02d", i),
			Author:    "Author",
			Category:  categoryOf(i),
			PageCount: 100 + i,
			Price:     money.Cents(1000 + i),
		}
		require.NoError(t, repo.Create(ctx, b))
		books = append(books, b)
	}
	return books
}

func TestBookRepositoryCreateAndFind(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	b := &book.Book{
		Title:          "Dune",
		Author:         "Frank Herbert",
		Publisher:      "Chilton",
		ISBN:           "978-0441013593",
		Classification: "Fiction",
		Category:       "Sci-Fi",
		PageCount:      412,
		Price:          money.Cents(999),
	}
	require.NoError(t, repo.Create(ctx, b))
	require.NotZero(t, b.ID)

	got, found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "978-0441013593", got.ISBN)
	assert.Equal(t, 412, got.PageCount)
	assert.Equal(t, money.Cents(999), got.Price)

	_, found, err = repo.FindByID(ctx, b.ID+100)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBookRepositoryUpdateInTransaction(t *testing.T) {
	repo, tx := setupRepo(t)
	ctx := context.Background()
	books := seedBooks(t, repo, 1, func(int) string { return "Fiction" })
	id := books[0].ID

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		current, found, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		require.True(t, found)
		current.Title = "Renamed"
		current.Price = 0
		return repo.Update(ctx, current)
	})
	require.NoError(t, err)

	got, _, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Zero(t, got.Price)
}

func TestBookRepositoryTransactionRollback(t *testing.T) {
	repo, tx := setupRepo(t)
	ctx := context.Background()
	books := seedBooks(t, repo, 1, func(int) string { return "Fiction" })
	id := books[0].ID

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		current, _, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		current.Title = "Never stored"
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Book 00", got.Title)
}

func TestBookRepositoryDelete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	books := seedBooks(t, repo, 2, func(int) string { return "Fiction" })

	deleted, err := repo.Delete(ctx, books[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, books[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, total, err := repo.List(ctx, book.ListParams{PageSize: 5, PageNum: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestBookRepositoryListPagination(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	seedBooks(t, repo, 12, func(int) string { return "Fiction" })

	page1, total, err := repo.List(ctx, book.ListParams{PageSize: 5, PageNum: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, page1, 5)

	page3, total, err := repo.List(ctx, book.ListParams{PageSize: 5, PageNum: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, page3, 2)

	// 超出范围的页码返回空列表,总数不变
	page9, total, err := repo.List(ctx, book.ListParams{PageSize: 5, PageNum: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.NotNil(t, page9)
	assert.Empty(t, page9)
}

func TestBookRepositoryListCategoryFilter(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	categories := []string{"Fiction", "Biography", "History"}
	seedBooks(t, repo, 9, func(i int) string { return categories[i%3] })

	books, total, err := repo.List(ctx, book.ListParams{
		PageSize:   100,
		PageNum:    1,
		Categories: []string{"Fiction", "Biography"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	for _, b := range books {
		assert.Contains(t, []string{"Fiction", "Biography"}, b.Category)
	}

	// 集合成员匹配,不做模糊匹配
	_, total, err = repo.List(ctx, book.ListParams{PageSize: 5, PageNum: 1, Categories: []string{"Fic"}})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBookRepositoryListSortByTitle(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	for _, title := range []string{"Moby Dick", "Anna Karenina", "Ulysses", "Anna Karenina"} {
		require.NoError(t, repo.Create(ctx, &book.Book{Title: title}))
	}

	asc, _, err := repo.List(ctx, book.ListParams{PageSize: 10, PageNum: 1, SortBy: book.SortTitleAsc})
	require.NoError(t, err)
	require.Len(t, asc, 4)
	assert.Equal(t, "Anna Karenina", asc[0].Title)
	assert.Equal(t, "Anna Karenina", asc[1].Title)
	assert.Less(t, asc[0].ID, asc[1].ID)
	assert.Equal(t, "Ulysses", asc[3].Title)

	desc, _, err := repo.List(ctx, book.ListParams{PageSize: 10, PageNum: 1, SortBy: book.SortTitleDesc})
	require.NoError(t, err)
	assert.Equal(t, "Ulysses", desc[0].Title)
}

func TestBookRepositoryListCategories(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)

	names := []string{"Fiction", "Biography", "Fiction", "History", "Biography"}
	seedBooks(t, repo, len(names), func(i int) string { return names[i] })

	categories, err = repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Biography", "Fiction", "History"}, categories)
}

func TestBookRepositoryCanceledContext(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := repo.List(ctx, book.ListParams{PageSize: 5, PageNum: 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsTransient(err))
}

// 分页遍历所有页恰好得到过滤后的全集,按ID有序且不重复
func TestBookRepositoryPaginationCoversFilteredSet(t *testing.T) {
	pool := []string{"Fiction", "Biography", "History", "Poetry"}

	rapid.Check(t, func(rt *rapid.T) {
		db, cleanup, err := NewDB(MemoryConfig())
		require.NoError(rt, err)
		defer cleanup()
		repo := NewBookRepository(db)
		ctx := context.Background()

		n := rapid.IntRange(0, 25).Draw(rt, "n")
		cats := rapid.SliceOfN(rapid.SampledFrom(pool), n, n).Draw(rt, "categories")
		filter := rapid.SliceOfDistinct(rapid.SampledFrom(pool), rapid.ID[string]).Draw(rt, "filter")
		pageSize := rapid.IntRange(1, 7).Draw(rt, "pageSize")

		inFilter := map[string]bool{}
		for _, c := range filter {
			inFilter[c] = true
		}
		var want []uint
		for _, c := range cats {
			b := &book.Book{Title: "T", Category: c}
			require.NoError(rt, repo.Create(ctx, b))
			if len(filter) == 0 || inFilter[c] {
				want = append(want, b.ID)
			}
		}

		var got []uint
		for page := 1; ; page++ {
			books, total, err := repo.List(ctx, book.ListParams{PageSize: pageSize, PageNum: page, Categories: filter})
			require.NoError(rt, err)
			require.Equal(rt, int64(len(want)), total)
			if len(books) == 0 {
				break
			}
			require.LessOrEqual(rt, len(books), pageSize)
			for _, b := range books {
				got = append(got, b.ID)
			}
		}

		if len(want) == 0 {
			require.Empty(rt, got)
			return
		}
		require.Equal(rt, want, got)
	})
}
