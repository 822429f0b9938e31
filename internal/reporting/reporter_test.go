package reporting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func captureEndpoint(t *testing.T) (*httptest.Server, chan map[string]any) {
	t.Helper()

	payloads := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		payloads <- body
	}))
	t.Cleanup(srv.Close)
	return srv, payloads
}

func receivePayload(t *testing.T, payloads chan map[string]any) map[string]any {
	t.Helper()
	select {
	case p := <-payloads:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("no error report received")
		return nil
	}
}

func TestReport_PayloadShape(t *testing.T) {
	srv, payloads := captureEndpoint(t)
	reporter := NewReporter(zap.NewNop())

	stack := []byte("goroutine 1 [running]:\nmain.work()\n\t/app/internal/work.go:42 +0x1b\nmain.main()\n\t/app/main.go:10 +0x2f\n")
	reporter.Report(srv.URL, "5f3a2b1c4d5e6f7a8b9c0d1e",
		RequestInfo{Path: "/api/test/7", Method: "GET", UserAgent: "curl/8.0"},
		Failure{Message: "connection refused", Type: "*net.OpError", Stack: stack})

	p := receivePayload(t, payloads)

	assert.Equal(t, "5f3a2b1c4d5e6f7a8b9c0d1e", p["boardId"])
	assert.Equal(t, "connection refused", p["message"])
	assert.Equal(t, "*net.OpError", p["exceptionType"])
	assert.Equal(t, "/api/test/7", p["requestPath"])
	assert.Equal(t, "GET", p["requestMethod"])
	assert.Equal(t, "curl/8.0", p["userAgent"])
	assert.Equal(t, string(stack), p["stackTrace"])
	assert.Equal(t, "/app/internal/work.go", p["file"])
	assert.Equal(t, float64(42), p["line"])

	ts, ok := p["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestReport_Defaults(t *testing.T) {
	srv, payloads := captureEndpoint(t)
	reporter := NewReporter(zap.NewNop())

	reporter.Report(srv.URL, "", RequestInfo{}, Failure{})

	p := receivePayload(t, payloads)

	assert.Equal(t, "", p["boardId"])
	assert.Equal(t, "Unknown error", p["message"])
	assert.Equal(t, "Exception", p["exceptionType"])
	assert.Equal(t, "/", p["requestPath"])
	assert.Equal(t, "GET", p["requestMethod"])
	assert.Equal(t, "", p["userAgent"])
	assert.Equal(t, "N/A", p["stackTrace"])
	assert.Equal(t, "", p["file"])

	_, hasLine := p["line"]
	assert.False(t, hasLine, "line must be absent when no frame could be parsed")
}

func TestReport_UnparseableStack(t *testing.T) {
	srv, payloads := captureEndpoint(t)
	reporter := NewReporter(zap.NewNop())

	reporter.Report(srv.URL, "b", RequestInfo{Path: "/x", Method: "POST"},
		Failure{Message: "boom", Type: "*errors.errorString", Stack: []byte("no frames here")})

	p := receivePayload(t, payloads)
	assert.Equal(t, "no frames here", p["stackTrace"])
	assert.Equal(t, "", p["file"])
	_, hasLine := p["line"]
	assert.False(t, hasLine)
}

func TestReport_StartupSentinels(t *testing.T) {
	srv, payloads := captureEndpoint(t)
	reporter := NewReporter(zap.NewNop())

	reporter.Report(srv.URL, "env-board", StartupRequestInfo(), Failure{Message: "DATABASE_URL is required"})

	p := receivePayload(t, payloads)
	assert.Equal(t, "STARTUP", p["requestPath"])
	assert.Equal(t, "STARTUP", p["requestMethod"])
	assert.Equal(t, "STARTUP_ERROR", p["userAgent"])
	assert.Equal(t, "DATABASE_URL is required", p["message"])
}

func TestReport_DeliveryFailureIsSwallowed(t *testing.T) {
	reporter := NewReporter(zap.NewNop())

	assert.NotPanics(t, func() {
		reporter.Report("http://127.0.0.1:0/unreachable", "", RequestInfo{}, Failure{Message: "x"})
	})
}

func TestReportAsync_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	payloads := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		payloads <- struct{}{}
	}))
	t.Cleanup(srv.Close)

	reporter := NewReporter(zap.NewNop())

	done := make(chan struct{})
	go func() {
		reporter.ReportAsync(srv.URL, "", RequestInfo{}, Failure{Message: "slow"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ReportAsync blocked its caller")
	}

	close(release)
	select {
	case <-payloads:
	case <-time.After(2 * time.Second):
		t.Fatal("detached report was never delivered")
	}
}
