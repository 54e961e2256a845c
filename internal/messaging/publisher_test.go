package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/model"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
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

func TestKafkaPublisher_PublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	err := p.PublishEvent(context.Background(), "marketplace.orders", "order_1", OrderStatusChanged{
		OrderID: "order_1", From: model.OrderPending, To: model.OrderAccepted, ChangedBy: "supplier_demo_1",
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "marketplace.orders", msg.Topic)
	assert.Equal(t, "order_1", string(msg.Key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "accepted", decoded["to"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("no brokers")}}

	err := p.PublishEvent(context.Background(), "t", "k", OrderPlaced{OrderID: "o"})
	assert.ErrorContains(t, err, "failed to publish to t")
}

// blockingWriter never reaches a broker and waits for the caller to give up
type blockingWriter struct{}

func (blockingWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingWriter) Close() error { return nil }

func TestKafkaPublisher_UnreachableBrokerTimesOut(t *testing.T) {
	p := &KafkaPublisher{writer: blockingWriter{}, timeout: 20 * time.Millisecond}

	start := time.Now()
	err := p.PublishEvent(context.Background(), "marketplace.orders", "order_1", OrderPlaced{OrderID: "order_1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewKafkaPublisher(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, 2*time.Second)

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, w.WriteTimeout)
	assert.Equal(t, 2*time.Second, p.timeout)
	assert.NoError(t, p.Close())
}

func TestKafkaPublisher_UnencodableEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	err := p.PublishEvent(context.Background(), "t", "k", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	require.NoError(t, p.PublishEvent(context.Background(), "marketplace.fssai-reports", "fssai_1",
		FSSAIReportSubmitted{ReportID: "fssai_1", Severity: model.SeverityCritical}))

	entries := logs.FilterMessage("Domain event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "fssai_1", entries[0].ContextMap()["key"])
	assert.NoError(t, p.Close())
}
