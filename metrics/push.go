package metrics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
)

// DefaultTimeout is the default timeout for remote write requests.
const DefaultTimeout = 30 * time.Second

// Metric represents a single metric point.
type Metric struct {
	Name      string
	Value     float64
	Labels    map[string]string
	Timestamp time.Time
}

// Client pushes metrics to a VictoriaMetrics/Prometheus remote write endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	prefix     string
	job        string
	instance   string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPrefix sets the metric name prefix. All metric names are prefixed
// with this value followed by an underscore.
func WithPrefix(prefix string) ClientOption {
	return func(c *Client) { c.prefix = prefix }
}

// WithJob sets the job label added to all pushed metrics.
func WithJob(job string) ClientOption {
	return func(c *Client) { c.job = job }
}

// WithInstance sets the instance label added to all pushed metrics.
func WithInstance(instance string) ClientOption {
	return func(c *Client) { c.instance = instance }
}

// WithTimeout sets the HTTP client timeout. Defaults to DefaultTimeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// NewClient creates a Client for the given base URL
// (e.g. "http://localhost:8428").
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:        url + "/api/v1/write",
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push sends the given metrics to the remote write endpoint in one request.
func (c *Client) Push(ctx context.Context, metrics ...Metric) error {
	if len(metrics) == 0 {
		return nil
	}

	timeseries := make([]prompb.TimeSeries, 0, len(metrics))
	for _, metric := range metrics {
		timeseries = append(timeseries, c.metricToTimeSeries(metric))
	}

	req := &prompb.WriteRequest{
		Timeseries: timeseries,
	}

	data, err := proto.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling write request: %w", err)
	}

	compressed := snappy.Encode(nil, data)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Encoding", "snappy")
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	httpReq.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// metricToTimeSeries converts a Metric to Prometheus TimeSeries format.
func (c *Client) metricToTimeSeries(metric Metric) prompb.TimeSeries {
	labels := make([]prompb.Label, 0, len(metric.Labels)+3)

	name := metric.Name
	if c.prefix != "" {
		name = c.prefix + "_" + name
	}
	labels = append(labels, prompb.Label{
		Name:  "__name__",
		Value: name,
	})

	if c.job != "" {
		labels = append(labels, prompb.Label{
			Name:  "job",
			Value: c.job,
		})
	}
	if c.instance != "" {
		labels = append(labels, prompb.Label{
			Name:  "instance",
			Value: c.instance,
		})
	}

	for k, v := range metric.Labels {
		labels = append(labels, prompb.Label{
			Name:  k,
			Value: v,
		})
	}

	timestamp := metric.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return prompb.TimeSeries{
		Labels: labels,
		Samples: []prompb.Sample{{
			Value:     metric.Value,
			Timestamp: timestamp.UnixMilli(),
		}},
	}
}
