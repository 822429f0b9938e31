package reporting

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Interceptor is the process-wide failure hook. It catches panics and
// handler errors escaping the request path, reports them asynchronously
// and answers the client with a fixed-shape 500 — the response never waits
// for the report.
type Interceptor struct {
	log      *zap.Logger
	resolver *BoardIDResolver
	reporter *Reporter
	endpoint string
}

func NewInterceptor(log *zap.Logger, resolver *BoardIDResolver, reporter *Reporter, endpoint string) *Interceptor {
	return &Interceptor{
		log:      log,
		resolver: resolver,
		reporter: reporter,
		endpoint: endpoint,
	}
}

// Middleware returns the gin handler wrapping every request.
func (i *Interceptor) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				i.intercept(c, err, debug.Stack())
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			i.intercept(c, c.Errors.Last().Err, debug.Stack())
		}
	}
}

func (i *Interceptor) intercept(c *gin.Context, err error, stack []byte) {
	i.log.Error("unhandled error during request",
		zap.String("message", err.Error()),
		zap.String("type", fmt.Sprintf("%T", err)),
		zap.ByteString("stack", stack))

	boardID, ok := i.resolver.Resolve(c)
	if !ok {
		i.log.Warn("board id could not be resolved")
	}

	if i.endpoint != "" {
		i.reporter.ReportAsync(i.endpoint, boardID,
			RequestInfo{
				Path:      c.Request.URL.Path,
				Method:    c.Request.Method,
				UserAgent: c.Request.UserAgent(),
			},
			Failure{
				Message: err.Error(),
				Type:    fmt.Sprintf("%T", err),
				Stack:   stack,
			})
	} else {
		i.log.Warn("RUNTIME_ERROR_ENDPOINT_URL is not set - skipping error reporting")
	}

	if !c.Writer.Written() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "An error occurred while processing your request",
			"message": err.Error(),
		})
		return
	}
	c.Abort()
}

// StartupFailure is the startup entry of the failure hook: it reports an
// initialization error with sentinel request context and returns so the
// caller can terminate the process. The report is sent synchronously,
// bounded by the reporter timeouts; a detached goroutine would race exit.
func StartupFailure(log *zap.Logger, reporter *Reporter, endpoint, boardID string, err error) {
	log.Error("application failed to start",
		zap.String("message", err.Error()),
		zap.String("type", fmt.Sprintf("%T", err)))

	if endpoint == "" {
		return
	}

	reporter.Report(endpoint, boardID, StartupRequestInfo(), Failure{
		Message: err.Error(),
		Type:    fmt.Sprintf("%T", err),
		Stack:   debug.Stack(),
	})
}
