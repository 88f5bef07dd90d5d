package metrics

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metric names published by the storefront.
const (
	MetricHTTPRequests = "HTTPRequests"
	MetricHTTPErrors   = "HTTPErrors"
	MetricHTTPLatency  = "HTTPLatency"
	MetricHTTP4xx      = "HTTP4xxErrors"
	MetricHTTP5xx      = "HTTP5xxErrors"
)

// Client publishes custom metrics to CloudWatch. Publishing is off unless
// CLOUDWATCH_ENABLED=true; a disabled or nil client turns every Record call
// into a no-op, so callers never gate on configuration.
type Client struct {
	cw        *cloudwatch.Client
	namespace string
	enabled   bool
}

// NewClient builds a CloudWatch metrics client from the ambient AWS
// configuration. AWS_CLOUDWATCH_ENDPOINT or AWS_ENDPOINT overrides the
// endpoint for LocalStack setups. CLOUDWATCH_NAMESPACE defaults to
// "Storefront".
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	if endpoint := localEndpoint(); endpoint != "" {
		signingRegion := cfg.Region
		cfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				sr := signingRegion
				if sr == "" {
					sr = region
				}
				return aws.Endpoint{
					URL:               endpoint,
					SigningRegion:     sr,
					HostnameImmutable: true,
				}, nil
			})
	}

	namespace := os.Getenv("CLOUDWATCH_NAMESPACE")
	if namespace == "" {
		namespace = "Storefront"
	}

	return &Client{
		cw:        cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
		enabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
	}, nil
}

func localEndpoint() string {
	if v := os.Getenv("AWS_CLOUDWATCH_ENDPOINT"); v != "" {
		return v
	}
	return os.Getenv("AWS_ENDPOINT")
}

// IsEnabled reports whether metrics publishing is turned on.
func (c *Client) IsEnabled() bool {
	return c != nil && c.enabled
}

// PutMetric sends a single metric data point.
func (c *Client) PutMetric(ctx context.Context, name string, value float64, unit types.StandardUnit, dimensions map[string]string) error {
	if !c.IsEnabled() {
		return nil
	}

	dims := make([]types.Dimension, 0, len(dimensions))
	for k, v := range dimensions {
		dims = append(dims, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	_, err := c.cw.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(c.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dims,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put metric %s: %w", name, err)
	}
	return nil
}

// RecordCount increments a counter metric by one.
func (c *Client) RecordCount(ctx context.Context, name string, dimensions map[string]string) error {
	return c.PutMetric(ctx, name, 1, types.StandardUnitCount, dimensions)
}

// RecordLatency records a duration metric in milliseconds.
func (c *Client) RecordLatency(ctx context.Context, name string, d time.Duration, dimensions map[string]string) error {
	return c.PutMetric(ctx, name, float64(d.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}
