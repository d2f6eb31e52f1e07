package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics writes storefront counters to CloudWatch.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	Env        string

	now func() time.Time
}

func NewMetrics(cw CloudWatchAPI, namespace, env string) *Metrics {
	return &Metrics{CloudWatch: cw, Namespace: namespace, Env: env, now: time.Now}
}

// RecordOrder emits OrdersPlaced (count), OrderItems (count) and OrderValue.
func (m *Metrics) RecordOrder(ctx context.Context, items int, total int64) error {
	ts := m.now()
	dims := []cwtypes.Dimension{
		{Name: sdkaws.String("Environment"), Value: sdkaws.String(m.Env)},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(m.Namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String("OrdersPlaced"),
				Dimensions: dims,
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitCount,
				Value:      sdkaws.Float64(1),
			},
			{
				MetricName: sdkaws.String("OrderItems"),
				Dimensions: dims,
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitCount,
				Value:      sdkaws.Float64(float64(items)),
			},
			{
				MetricName: sdkaws.String("OrderValue"),
				Dimensions: dims,
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitNone,
				Value:      sdkaws.Float64(float64(total)),
			},
		},
	}

	if _, err := m.CloudWatch.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
