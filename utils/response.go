package utils

import "github.com/gin-gonic/gin"

// JSONSuccess and JSONError write the shared response envelope. Every handler
// goes through one of the two so clients can always rely on the shape.

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}
