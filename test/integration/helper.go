//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/pkg/catalogclient"
	"github.com/xiebiao/storefront/pkg/money"
)

// 集成测试：针对已启动的目录服务(go test -tags integration ./test/integration/)
// 服务地址通过BOOKSTORE_TEST_BASE_URL指定，未设置时跳过

const (
	defaultBaseURL = "http://localhost:8080"
	Timeout        = 10 * time.Second
)

func baseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("BOOKSTORE_TEST_BASE_URL")
	if url == "" {
		t.Skipf("BOOKSTORE_TEST_BASE_URL not set (e.g. %s)", defaultBaseURL)
	}
	return url
}

// NewClient 连接被测服务
func NewClient(t *testing.T) *catalogclient.Client {
	t.Helper()
	return catalogclient.New(baseURL(t))
}

// TestCategory 每次运行唯一的分类，避免与库中已有数据互相干扰
func TestCategory(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CreateTestBook 创建图书，测试结束时删除
func CreateTestBook(t *testing.T, c *catalogclient.Client, title, category string, price money.Cents) catalogclient.Book {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	b, err := c.CreateBook(ctx, catalogclient.Book{
		Title:     title,
		Author:    "Integration",
		Publisher: "Test Press",
		ISBN:      "978-7-000-00000-0",
		Category:  category,
		PageCount: 100,
		Price:     price,
	})
	require.NoError(t, err, "创建图书失败")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()
		if err := c.DeleteBook(ctx, b.BookID); err != nil && !catalogclient.IsNotFound(err) {
			t.Logf("清理图书%d失败: %v", b.BookID, err)
		}
	})
	return *b
}
