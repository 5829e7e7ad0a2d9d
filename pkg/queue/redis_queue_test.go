package queue

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *RedisQueue {
	t.Helper()

	server := miniredis.RunT(t)
	host, portStr, found := strings.Cut(server.Addr(), ":")
	require.True(t, found)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	q := NewRedisQueue(&Config{
		Host:   host,
		Port:   port,
		Prefix: "test:notify",
	})
	t.Cleanup(func() { _ = q.Close() })
	return q
}

func TestRedisQueue_EnqueueDequeueRoundTrip(t *testing.T) {
	q := newTestQueue(t)

	message := &NotificationMessage{
		MessageID:  "msg-1",
		Kind:       "reminder_due",
		BusinessID: 3,
		UserID:     7,
		Title:      "场地巡检",
		Payload:    map[string]interface{}{"reminder_id": float64(12)},
	}
	require.NoError(t, q.Enqueue(message))

	length, err := q.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)

	got, err := q.Dequeue(time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "msg-1", got.MessageID)
	assert.Equal(t, "reminder_due", got.Kind)
	assert.Equal(t, uint(3), got.BusinessID)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, message.Payload, got.Payload)
	assert.NotZero(t, got.Created, "入队时补齐创建时间")
}

func TestRedisQueue_FIFOOrder(t *testing.T) {
	q := newTestQueue(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(&NotificationMessage{MessageID: id, Kind: "reminder_due"}))
	}

	for _, want := range []string{"a", "b", "c"} {
		got, err := q.Dequeue(time.Second)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, got.MessageID)
	}
}

func TestRedisQueue_MessageStatusLifecycle(t *testing.T) {
	q := newTestQueue(t)

	require.NoError(t, q.Enqueue(&NotificationMessage{MessageID: "msg-2", Kind: "reminder_due"}))

	status, err := q.GetMessageStatus("msg-2")
	require.NoError(t, err)
	assert.Equal(t, "queued", status["status"])

	require.NoError(t, q.MarkDelivered("msg-2"))

	status, err = q.GetMessageStatus("msg-2")
	require.NoError(t, err)
	assert.Equal(t, "delivered", status["status"])
}

func TestRedisQueue_MissingMessageStatus(t *testing.T) {
	q := newTestQueue(t)

	_, err := q.GetMessageStatus("ghost")
	assert.Error(t, err)
}
