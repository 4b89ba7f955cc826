package handler

import (
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFound answers unmatched routes in the format the client accepts,
// HTML first when the client expresses no preference.
func NotFound(c *gin.Context) {
	path := c.Request.URL.Path

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON, gin.MIMEPlain) {
	case gin.MIMEHTML:
		body := "<h1>404 Not Found</h1><p>" + html.EscapeString(path) + " does not exist</p>"
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(body))
	case gin.MIMEJSON:
		c.JSON(http.StatusNotFound, gin.H{"error": "404 " + path + " Not Found"})
	default:
		c.String(http.StatusNotFound, "404 %s Not Found", path)
	}
}
