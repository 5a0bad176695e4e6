package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Whyudothiss/SplitBettter/internal/metrics"
	"github.com/Whyudothiss/SplitBettter/pkg/api"
	"github.com/Whyudothiss/SplitBettter/pkg/api/apiconnect"
)

func TestInterceptors_CountByCode(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	path, handler := apiconnect.NewSplitServiceHandler(
		apiconnect.UnimplementedSplitServiceHandler{},
		connect.WithInterceptors(LoggingInterceptor(), MetricsInterceptor(m)),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewSplitServiceClient(http.DefaultClient, server.URL)
	for range 2 {
		_, err := client.ListSplits(context.Background(), connect.NewRequest(&api.ListSplitsRequest{}))
		if connect.CodeOf(err) != connect.CodeUnimplemented {
			t.Fatalf("expected unimplemented, got %v", err)
		}
	}

	counter := m.RPCRequests.WithLabelValues(apiconnect.SplitServiceListSplitsProcedure, connect.CodeUnimplemented.String())
	if got := testutil.ToFloat64(counter); got != 2 {
		t.Errorf("expected 2 counted requests, got %v", got)
	}
	if got := testutil.CollectAndCount(m.RPCDuration); got != 1 {
		t.Errorf("expected one duration series, got %d", got)
	}
}
