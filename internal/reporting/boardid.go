package reporting

import (
	"regexp"

	"github.com/gin-gonic/gin"
)

// Railway deployments expose the board id inside the generated hostname,
// e.g. webapi5f3a2b1c4d5e6f7a8b9c0d1e.up.railway.app (no hyphen).
var boardIDPattern = regexp.MustCompile(`(?i)webapi([a-f0-9]{24})`)

type strategy func(c *gin.Context) (string, bool)

// BoardIDResolver derives the board identifier for an inbound request by
// trying an ordered list of strategies and stopping at the first hit.
type BoardIDResolver struct {
	strategies []strategy
}

func NewBoardIDResolver(boardID, endpointURL string) *BoardIDResolver {
	r := &BoardIDResolver{}
	r.strategies = []strategy{
		fromQuery,
		fromHeader,
		fromValue(boardID),
		fromHost,
		fromPattern(endpointURL),
	}
	return r
}

// Resolve returns the board identifier for the request, or false when no
// strategy matched. Absence is not an error; callers serialize it as "".
func (r *BoardIDResolver) Resolve(c *gin.Context) (string, bool) {
	for _, s := range r.strategies {
		if id, ok := s(c); ok {
			return id, true
		}
	}
	return "", false
}

func fromQuery(c *gin.Context) (string, bool) {
	if id, ok := c.GetQuery("boardId"); ok {
		return id, true
	}
	return "", false
}

func fromHeader(c *gin.Context) (string, bool) {
	if id := c.GetHeader("X-Board-Id"); id != "" {
		return id, true
	}
	return "", false
}

func fromValue(id string) strategy {
	return func(*gin.Context) (string, bool) {
		return id, id != ""
	}
}

func fromHost(c *gin.Context) (string, bool) {
	return matchBoardID(c.Request.Host)
}

func fromPattern(s string) strategy {
	return func(*gin.Context) (string, bool) {
		return matchBoardID(s)
	}
}

func matchBoardID(s string) (string, bool) {
	if m := boardIDPattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}
