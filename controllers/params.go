package controllers

import (
	"strconv"

	"sazonpos/pkg/resp"

	"github.com/gin-gonic/gin"
)

// paramID reads :id, answering 400 itself when it is not a positive integer.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
