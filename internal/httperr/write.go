package httperr

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code      string `json:"code"`
	Detail    string `json:"detail"`
	Hint      string `json:"hint,omitempty"`
	Exception string `json:"exception,omitempty"`
}

// ExposeExceptions controls whether the wrapped cause is echoed in responses.
// It is switched off in production at startup.
var ExposeExceptions = true

// Body renders err into the wire shape.
func Body(err error) (int, HTTPError) {
	ae, ok := As(err)
	if !ok {
		ae = Internal("", err)
	}

	body := HTTPError{
		Code:   ae.FullCode(),
		Detail: ae.Detail,
		Hint:   ae.Hint,
	}
	if ExposeExceptions && ae.Err != nil {
		body.Exception = ae.Err.Error()
	}
	return ae.Status, body
}

// Abort writes err as the response and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, body := Body(err)

	if status >= http.StatusInternalServerError {
		report(c, err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func report(c *gin.Context, err error) {
	if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
