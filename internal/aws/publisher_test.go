package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/Fashion-Store/Aradaa/internal/orders"
)

type mockSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (m *mockSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, in)
	return &sqs.SendMessageOutput{}, nil
}

type mockCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.inputs = append(m.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestPublishOrderPlaced(t *testing.T) {
	mock := &mockSQS{}
	p := NewPublisher(mock, "https://sqs.local/orders")

	ev := orders.PlacedEvent{
		OrderID:        "ORD1700000000000",
		IdempotencyKey: "k1",
		CustomerEmail:  "a@b.com",
		ItemCount:      2,
		Total:          25000,
		PlacedAt:       time.Unix(1700000000, 0).UTC(),
	}
	if err := p.PublishOrderPlaced(context.Background(), ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mock.inputs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(mock.inputs))
	}

	in := mock.inputs[0]
	if *in.QueueUrl != "https://sqs.local/orders" {
		t.Fatalf("queue url: %s", *in.QueueUrl)
	}
	var got orders.PlacedEvent
	if err := json.Unmarshal([]byte(*in.MessageBody), &got); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if got.OrderID != ev.OrderID || got.Total != 25000 {
		t.Fatalf("unexpected body %+v", got)
	}
	if v := in.MessageAttributes["idempotency_key"]; v.StringValue == nil || *v.StringValue != "k1" {
		t.Fatalf("missing idempotency_key attribute")
	}
	if _, ok := in.MessageAttributes["correlation_id"]; ok {
		t.Fatal("empty correlation id should not be sent")
	}
	if *in.MessageAttributes["event_type"].DataType != "String" {
		t.Fatal("attributes should be String typed")
	}
}

func TestPublishOrderPlaced_Error(t *testing.T) {
	mock := &mockSQS{err: errors.New("throttled")}
	err := NewPublisher(mock, "q").PublishOrderPlaced(context.Background(), orders.PlacedEvent{OrderID: "o"})
	if err == nil || !errors.Is(err, mock.err) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestRecordOrder(t *testing.T) {
	cw := &mockCloudWatch{}
	m := NewMetrics(cw, "Adaraa/Storefront", "test")

	if err := m.RecordOrder(context.Background(), 3, 33500); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(cw.inputs) != 1 {
		t.Fatalf("expected one PutMetricData call, got %d", len(cw.inputs))
	}
	in := cw.inputs[0]
	if *in.Namespace != "Adaraa/Storefront" {
		t.Fatalf("namespace: %s", *in.Namespace)
	}

	values := map[string]float64{}
	for _, d := range in.MetricData {
		values[*d.MetricName] = *d.Value
	}
	if values["OrdersPlaced"] != 1 || values["OrderItems"] != 3 || values["OrderValue"] != 33500 {
		t.Fatalf("unexpected datums %v", values)
	}
}
