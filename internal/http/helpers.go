package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/services"
)

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondError(c, services.ErrInvalidRequest(paramName, "invalid "+paramName))
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an integer query parameter, falling back to def when it is
// absent. A malformed value responds with a 400 and returns false. Range
// checks belong to the services.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, services.ErrInvalidRequest(name, name+" must be an integer"))
		return 0, false
	}
	return v, true
}

// bindJSON decodes the request body into dst, responding with a 400 when the
// body is malformed or fails binding rules.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, services.ErrInvalidRequest("body", err.Error()))
		return false
	}
	return true
}
