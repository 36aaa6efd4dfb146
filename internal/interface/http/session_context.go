package http

import "github.com/gin-gonic/gin"

const sessionIDKey = "session_id"

func setSessionID(c *gin.Context, sessionID string) {
	c.Set(sessionIDKey, sessionID)
}

func getSessionID(c *gin.Context) (string, bool) {
	value, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	sessionID, ok := value.(string)
	return sessionID, ok && sessionID != ""
}
