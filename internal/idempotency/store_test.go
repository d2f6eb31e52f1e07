package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

func TestCreate_Get_MarkDone_MarkFailed(t *testing.T) {
	mock := newFakeDynamo()
	s := NewStore(mock, "idempotency-table", 48*time.Hour)

	ctx := context.Background()
	key := "checkout-1"
	orderID := "ORD1700000000000"

	if err := s.Create(ctx, key, orderID, "hash-a"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// second create reports the duplicate
	if err := s.Create(ctx, key, "ORD1700000000001", "hash-a"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	rec, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Status != StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", rec.Status)
	}
	if rec.OrderID != orderID {
		t.Fatalf("order id mismatch: %s", rec.OrderID)
	}
	if rec.RequestHash != "hash-a" {
		t.Fatalf("request hash not stored")
	}

	body := `{"success":true,"orderId":"ORD1700000000000","message":"Order placed successfully"}`
	if err := s.MarkDone(ctx, key, body, 200); err != nil {
		t.Fatalf("MarkDone error: %v", err)
	}

	item := mock.table[key]
	if st, ok := item["status"].(*types.AttributeValueMemberS); !ok || st.Value != StatusDone {
		t.Fatalf("status not updated to DONE, got %+v", item["status"])
	}

	rec, err = s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get after done: %v", err)
	}
	if rec.ResponseBody != body || rec.ResponseStatus != 200 {
		t.Fatalf("stored response mismatch: %+v", rec)
	}

	if err := s.MarkFailed(ctx, key, "publish failed"); err != nil {
		t.Fatalf("MarkFailed error: %v", err)
	}
	item = mock.table[key]
	if st, ok := item["status"].(*types.AttributeValueMemberS); !ok || st.Value != StatusFailed {
		t.Fatalf("status not updated to FAILED, got %+v", item["status"])
	}
	if n, ok := item["note"].(*types.AttributeValueMemberS); !ok || n.Value != "publish failed" {
		t.Fatalf("note not set, got %+v", item["note"])
	}
}

func TestGet_NotFound(t *testing.T) {
	s := NewStore(newFakeDynamo(), "t", time.Hour)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_SetsExpiry(t *testing.T) {
	mock := newFakeDynamo()
	s := NewStore(mock, "t", 48*time.Hour)
	fixed := time.Date(2024, 11, 10, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return fixed }

	if err := s.Create(context.Background(), "k", "o", ""); err != nil {
		t.Fatal(err)
	}
	rec, err := s.Get(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}
	if rec.ExpiresAt != fixed.Add(48*time.Hour).Unix() {
		t.Fatalf("unexpected expires_at %d", rec.ExpiresAt)
	}
	if rec.Expired(fixed) {
		t.Fatal("fresh record must not be expired")
	}
	if !rec.Expired(fixed.Add(49 * time.Hour)) {
		t.Fatal("record should be expired after the TTL window")
	}
}

func TestCreate_ReclaimsExpiredKey(t *testing.T) {
	mock := newFakeDynamo()
	s := NewStore(mock, "t", time.Hour)
	start := time.Date(2024, 11, 10, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return start }
	ctx := context.Background()

	if err := s.Create(ctx, "k", "ORD1", "h1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(ctx, "k", "ORD2", "h1"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("live key must not be reclaimed, got %v", err)
	}

	s.nowFunc = func() time.Time { return start.Add(2 * time.Hour) }
	if err := s.Create(ctx, "k", "ORD3", "h2"); err != nil {
		t.Fatalf("expired key should be reclaimed: %v", err)
	}
	rec, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if rec.OrderID != "ORD3" || rec.Status != StatusInProgress || rec.Expired(start.Add(2*time.Hour)) {
		t.Fatalf("unexpected reclaimed record %+v", rec)
	}
}

func TestCreate_GenericConditionalError(t *testing.T) {
	mock := newFakeDynamo()
	mock.err = &smithy.GenericAPIError{Code: "ConditionalCheckFailedException", Message: "exists"}

	err := NewStore(mock, "t", time.Hour).Create(context.Background(), "k", "o", "")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_OtherErrorsWrapped(t *testing.T) {
	mock := newFakeDynamo()
	mock.err = errors.New("throughput exceeded")

	err := NewStore(mock, "t", time.Hour).Create(context.Background(), "k", "o", "")
	if err == nil || errors.Is(err, ErrAlreadyExists) || !errors.Is(err, mock.err) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestRecordMarshal(t *testing.T) {
	rec := Record{
		Key:       "k1",
		Status:    StatusInProgress,
		OrderID:   "o1",
		CreatedAt: time.Now().Round(time.Second),
		UpdatedAt: time.Now().Round(time.Second),
		ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
	}
	m, err := attributevalue.MarshalMap(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, ok := m["idempotency_key"]; !ok {
		t.Fatal("partition key attribute missing")
	}
	if _, ok := m["response_body"]; ok {
		t.Fatal("empty response_body should be omitted")
	}
}
