package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error shape of the API envelope:
// {success, message, data, errors}.
type Response struct {
	Status  int      `json:"-"`
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, details []string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	if details == nil {
		details = []string{err.Error()}
	}

	resp := Response{
		Status:  status,
		Success: false,
		Message: msg,
		Errors:  details,
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
