package mq

import (
	"context"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBookEvent struct {
	BookID uint   `json:"bookID"`
	Action string `json:"action"`
}

func TestNewPublisherInvalidURL(t *testing.T) {
	_, err := NewPublisher("http://localhost:5672/", "bookstore.test", "topic")
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "book.created", testBookEvent{BookID: 1}))
	assert.NoError(t, p.Close())
}

// TestPublisherRoundTrip 需要本地RabbitMQ，设置BOOKSTORE_TEST_AMQP_URL后运行
func TestPublisherRoundTrip(t *testing.T) {
	url := os.Getenv("BOOKSTORE_TEST_AMQP_URL")
	if url == "" {
		t.Skip("BOOKSTORE_TEST_AMQP_URL not set")
	}

	publisher, err := NewPublisher(url, "bookstore.test.catalog", "topic")
	require.NoError(t, err)
	defer publisher.Close()

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	defer conn.Close()
	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "book.*", "bookstore.test.catalog", false, nil))
	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, publisher.Publish(ctx, "book.created", testBookEvent{BookID: 7, Action: "created"}))

	select {
	case msg := <-msgs:
		assert.Equal(t, "book.created", msg.RoutingKey)
		assert.JSONEq(t, `{"bookID":7,"action":"created"}`, string(msg.Body))
	case <-ctx.Done():
		t.Fatal("did not receive published event")
	}
}
