package utils

import "github.com/gin-gonic/gin"

// Error writes a JSON error body in the public API shape. The message is the
// machine-readable reason exposed to clients; internal causes are logged by
// the caller, never serialized here.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
