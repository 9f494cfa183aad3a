package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer path parameter.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
