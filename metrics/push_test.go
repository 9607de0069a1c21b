package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeWriteRequest(t *testing.T, body io.Reader) *prompb.WriteRequest {
	t.Helper()

	compressed, err := io.ReadAll(body)
	require.NoError(t, err)

	data, err := snappy.Decode(nil, compressed)
	require.NoError(t, err)

	var req prompb.WriteRequest
	require.NoError(t, proto.Unmarshal(data, &req))
	return &req
}

func TestClient_Push(t *testing.T) {
	var received *prompb.WriteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/write", r.URL.Path)
		assert.Equal(t, "snappy", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "application/x-protobuf", r.Header.Get("Content-Type"))
		received = decodeWriteRequest(t, r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL,
		WithPrefix("rosterd"),
		WithJob("rosterd"),
		WithInstance("host1"),
	)

	err := client.Push(context.Background(),
		Metric{
			Name:      "activity_participants",
			Value:     3,
			Labels:    map[string]string{"activity": "Chess Club"},
			Timestamp: time.Now(),
		},
		Metric{
			Name:   "activity_capacity",
			Value:  12,
			Labels: map[string]string{"activity": "Chess Club"},
		},
	)
	require.NoError(t, err)

	require.NotNil(t, received)
	require.Len(t, received.Timeseries, 2)

	labels := map[string]string{}
	for _, l := range received.Timeseries[0].Labels {
		labels[l.Name] = l.Value
	}
	assert.Equal(t, "rosterd_activity_participants", labels["__name__"])
	assert.Equal(t, "rosterd", labels["job"])
	assert.Equal(t, "host1", labels["instance"])
	assert.Equal(t, "Chess Club", labels["activity"])

	require.Len(t, received.Timeseries[0].Samples, 1)
	assert.Equal(t, float64(3), received.Timeseries[0].Samples[0].Value)
}

func TestClient_Push_NoMetrics(t *testing.T) {
	// Must not issue a request at all.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	assert.NoError(t, client.Push(context.Background()))
}

func TestClient_Push_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of disk", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Push(context.Background(), Metric{Name: "signups_total", Value: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
