package idempotency

import (
	"context"
	"errors"
	"strconv"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo keeps one table in memory and understands the two condition
// and update expressions the store issues.
type fakeDynamo struct {
	mu    sync.Mutex
	table map[string]map[string]types.AttributeValue

	putCalls    int
	getCalls    int
	updateCalls int

	err error // returned by every call when set
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{table: map[string]map[string]types.AttributeValue{}}
}

func keyString(m map[string]types.AttributeValue) (string, error) {
	av, ok := m[keyAttr].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing key")
	}
	return av.Value, nil
}

// expiredBy evaluates "expires_at <= :now" for an item.
func expiredBy(item map[string]types.AttributeValue, now types.AttributeValue) bool {
	exp, ok := item["expires_at"].(*types.AttributeValueMemberN)
	if !ok {
		return false
	}
	n, ok := now.(*types.AttributeValueMemberN)
	if !ok {
		return false
	}
	e, err1 := strconv.ParseInt(exp.Value, 10, 64)
	t, err2 := strconv.ParseInt(n.Value, 10, 64)
	return err1 == nil && err2 == nil && e <= t
}

func (m *fakeDynamo) PutItem(ctx context.Context, in *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.err != nil {
		return nil, m.err
	}

	k, err := keyString(in.Item)
	if err != nil {
		return nil, err
	}
	if in.ConditionExpression != nil && *in.ConditionExpression == createCondition {
		if existing, ok := m.table[k]; ok && !expiredBy(existing, in.ExpressionAttributeValues[":now"]) {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.table[k] = in.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *fakeDynamo) GetItem(ctx context.Context, in *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}

	k, err := keyString(in.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *fakeDynamo) UpdateItem(ctx context.Context, in *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.err != nil {
		return nil, m.err
	}

	k, err := keyString(in.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table[k]
	if !ok {
		item = map[string]types.AttributeValue{keyAttr: in.Key[keyAttr]}
	}

	fields := map[string]string{
		":rb":     "response_body",
		":rs":     "response_status",
		":ua":     "updated_at",
		":n":      "note",
		":done":   "status",
		":failed": "status",
	}
	for placeholder, attr := range fields {
		if v, ok := in.ExpressionAttributeValues[placeholder]; ok {
			item[attr] = v
		}
	}
	m.table[k] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}
