package middleware

import "github.com/gin-gonic/gin"

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Details  string `json:"details,omitempty"`
	RetryInS int    `json:"retry_in_s,omitempty"`
}

// Abort writes body with status and stops the handler chain.
func Abort(c *gin.Context, status int, body ErrorResponse) {
	c.AbortWithStatusJSON(status, body)
}

func AbortMessage(c *gin.Context, status int, msg string) {
	Abort(c, status, ErrorResponse{Error: msg})
}
