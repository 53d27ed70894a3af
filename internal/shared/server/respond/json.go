package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes payload with 200 OK.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Created writes payload with 201 Created.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}
