package reporting

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// First source frame of a stack trace, "<path>:<line>".
var framePattern = regexp.MustCompile(`([^\s]+\.go):(\d+)`)

// RequestInfo carries the request context attached to an error report.
type RequestInfo struct {
	Path      string
	Method    string
	UserAgent string
}

// StartupRequestInfo is the sentinel context used when a failure happens
// before any request is in scope.
func StartupRequestInfo() RequestInfo {
	return RequestInfo{Path: "STARTUP", Method: "STARTUP", UserAgent: "STARTUP_ERROR"}
}

// Failure describes the error being reported.
type Failure struct {
	Message string
	Type    string
	Stack   []byte
}

type report struct {
	BoardID       string `json:"boardId"`
	Timestamp     string `json:"timestamp"`
	File          string `json:"file"`
	Line          *int   `json:"line,omitempty"`
	StackTrace    string `json:"stackTrace"`
	Message       string `json:"message"`
	ExceptionType string `json:"exceptionType"`
	RequestPath   string `json:"requestPath"`
	RequestMethod string `json:"requestMethod"`
	UserAgent     string `json:"userAgent"`
}

// Reporter delivers diagnostic payloads to an external monitoring endpoint.
// Delivery is best-effort: every failure is logged and swallowed, and the
// caller is never blocked beyond the client timeouts.
type Reporter struct {
	log    *zap.Logger
	client *http.Client
}

func NewReporter(log *zap.Logger) *Reporter {
	return &Reporter{
		log: log,
		client: &http.Client{
			// Hard cap on the detached report's lifetime.
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: 5 * time.Second,
			},
		},
	}
}

// ReportAsync dispatches the report on a detached goroutine. The goroutine
// owns its own panic handling and is never joined by the caller.
func (r *Reporter) ReportAsync(endpoint, boardID string, reqInfo RequestInfo, failure Failure) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("error report dispatch panicked", zap.Any("panic", rec))
			}
		}()
		r.Report(endpoint, boardID, reqInfo, failure)
	}()
}

// Report builds the diagnostic payload and POSTs it to the endpoint.
// It never returns an error.
func (r *Reporter) Report(endpoint, boardID string, reqInfo RequestInfo, failure Failure) {
	body, err := json.Marshal(buildReport(boardID, reqInfo, failure))
	if err != nil {
		r.log.Error("failed to marshal error report", zap.Error(err))
		return
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		r.log.Error("failed to build error report request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Error("failed to send error report", zap.String("endpoint", endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		r.log.Warn("error endpoint response",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)))
		return
	}
	r.log.Warn("error endpoint response", zap.Int("status", resp.StatusCode))
}

func buildReport(boardID string, reqInfo RequestInfo, failure Failure) report {
	rep := report{
		BoardID:       boardID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		StackTrace:    "N/A",
		Message:       failure.Message,
		ExceptionType: failure.Type,
		RequestPath:   reqInfo.Path,
		RequestMethod: reqInfo.Method,
		UserAgent:     reqInfo.UserAgent,
	}

	if len(failure.Stack) > 0 {
		rep.StackTrace = string(failure.Stack)
		if file, line, ok := firstFrame(rep.StackTrace); ok {
			rep.File = file
			rep.Line = &line
		}
	}
	if rep.Message == "" {
		rep.Message = "Unknown error"
	}
	if rep.ExceptionType == "" {
		rep.ExceptionType = "Exception"
	}
	if rep.RequestPath == "" {
		rep.RequestPath = "/"
	}
	if rep.RequestMethod == "" {
		rep.RequestMethod = "GET"
	}

	return rep
}

// firstFrame extracts the source location from the first file frame of the
// trace. Best-effort: reports absence when the trace has no such frame.
func firstFrame(stack string) (string, int, bool) {
	m := framePattern.FindStringSubmatch(stack)
	if m == nil {
		return "", 0, false
	}
	line, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], line, true
}
