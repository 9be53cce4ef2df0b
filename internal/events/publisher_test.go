package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	ctx    context.Context
	ctxErr error
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.ctx = ctx
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestNewMessage(t *testing.T) {
	t.Run("Prefixed topic", func(t *testing.T) {
		msg, err := newMessage("storefront", TopicOrderCreated, "42", OrderCreated{
			OrderID: 42,
			UserID:  1,
			Total:   decimal.RequireFromString("92820.00"),
		})
		require.NoError(t, err)

		assert.Equal(t, "storefront.order.created", msg.Topic)
		assert.Equal(t, []byte("42"), msg.Key)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "92820", decoded["total"])
		assert.EqualValues(t, 42, decoded["order_id"])
	})

	t.Run("No prefix", func(t *testing.T) {
		msg, err := newMessage("", TopicOrderStatusChanged, "1", OrderStatusChanged{OrderID: 1, To: "paid"})
		require.NoError(t, err)
		assert.Equal(t, TopicOrderStatusChanged, msg.Topic)
	})

	t.Run("Unmarshalable payload", func(t *testing.T) {
		_, err := newMessage("", TopicOrderCreated, "1", make(chan int))
		assert.Error(t, err)
	})
}

func TestKafkaPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		w := &fakeWriter{}
		p := &KafkaPublisher{writer: w, prefix: "shop"}

		err := p.Publish(ctx, TopicOrderStatusChanged, "7", OrderStatusChanged{OrderID: 7, From: "created", To: "paid"})
		require.NoError(t, err)
		require.Len(t, w.msgs, 1)
		assert.Equal(t, "shop.order.status_changed", w.msgs[0].Topic)

		require.NoError(t, p.Close())
		assert.True(t, w.closed)
	})

	t.Run("Cancelled request context", func(t *testing.T) {
		w := &fakeWriter{}
		p := &KafkaPublisher{writer: w, timeout: time.Second}

		reqCtx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.Publish(reqCtx, TopicOrderCreated, "42", OrderCreated{OrderID: 42})
		require.NoError(t, err)
		require.Len(t, w.msgs, 1)

		require.NotNil(t, w.ctx)
		assert.NoError(t, w.ctxErr)
		assert.NotEqual(t, reqCtx, w.ctx)
		_, hasDeadline := w.ctx.Deadline()
		assert.True(t, hasDeadline)
	})

	t.Run("Writer error", func(t *testing.T) {
		w := &fakeWriter{err: errors.New("broker unavailable")}
		p := &KafkaPublisher{writer: w}

		err := p.Publish(ctx, TopicOrderCreated, "1", OrderCreated{OrderID: 1})
		assert.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	assert.IsType(t, NopPublisher{}, New(nil, "storefront"))
	assert.IsType(t, &KafkaPublisher{}, New([]string{"localhost:9092"}, "storefront"))

	var nop NopPublisher
	assert.NoError(t, nop.Publish(context.Background(), TopicOrderCreated, "1", nil))
	assert.NoError(t, nop.Close())
}
