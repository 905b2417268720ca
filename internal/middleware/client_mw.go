package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	ClientIDKey = "clientID"

	// ClientIDHeader carries the caller's declared client identifier
	ClientIDHeader = "User-Agent"
)

// ClientIdentity stores the caller's client identifier in the context,
// falling back to fallback when the header is absent.
func ClientIdentity(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetHeader(ClientIDHeader)
		if clientID == "" {
			clientID = fallback
		}
		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

// ClientID returns the identifier stored by ClientIdentity
func ClientID(c *gin.Context) string {
	return c.GetString(ClientIDKey)
}
