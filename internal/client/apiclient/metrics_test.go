package apiclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/missing" {
			writeJSON(w, 404, `{"message":"not found"}`)
			return
		}
		writeJSON(w, 200, `{"data":null}`)
	}, Config{Registerer: reg})

	ctx := context.Background()
	require.NoError(t, c.Get(ctx, "/ok", nil, nil))
	require.NoError(t, c.Get(ctx, "/ok", nil, nil))
	require.Error(t, c.Get(ctx, "/missing", nil, nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.metrics.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.requests.WithLabelValues("GET", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.metrics.duration))
}
