package http

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

type projectInput struct {
	Name string `json:"name"`
}

// bindTolerant decodes the request body into a projectInput. Malformed or
// empty JSON yields the zero value instead of a parse error; a missing
// name field is treated as the empty string.
func bindTolerant(c *gin.Context) projectInput {
	var in projectInput
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return in
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return projectInput{}
	}
	return in
}

// parseID converts the :id path parameter. Non-numeric input maps to 0,
// which never matches a store-assigned id.
func parseID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return id
}
