package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/mutual-aid-api/help"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1012: "too many requests",

		1100: "profile not found",

		1200: "request rejected",
		1201: "resource not found",
		1202: "operation not permitted",
		1203: "operation not allowed in the current state",
		1204: "operation conflicts with a concurrent change",
		1205: "service dependency unavailable",

		1300: "stream unavailable",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters = errorJSON(1010)
	errorTooManyRequests   = errorJSON(1012)

	errorProfileNotFound = errorJSON(1100)

	errorStreamUnavailable = errorJSON(1300)
)

// kindErrorMap binds the failure categories of the help package to a stable
// status and code
var kindErrorMap = map[help.Kind]struct {
	status int
	code   int64
}{
	help.KindValidation:    {http.StatusBadRequest, 1200},
	help.KindNotFound:      {http.StatusNotFound, 1201},
	help.KindAuthorization: {http.StatusForbidden, 1202},
	help.KindInvalidState:  {http.StatusConflict, 1203},
	help.KindConflict:      {http.StatusConflict, 1204},
	help.KindDependency:    {http.StatusServiceUnavailable, 1205},
}

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

func errorJSON(code int64) ErrorResponse {
	var e ErrorResponse

	e.Code = code
	if msg, ok := errorMessageMap[code]; ok {
		e.Message = msg
	} else {
		e.Message = "unknown error code"
	}

	return e
}

// helpErrorResponse converts a coordinator failure. The message of a
// dependency failure is never exposed.
func helpErrorResponse(err error) (int, ErrorResponse) {
	kind := help.KindOf(err)
	entry, ok := kindErrorMap[kind]
	if !ok {
		return http.StatusInternalServerError, errorInternalServer
	}

	resp := errorJSON(entry.code)
	resp.Kind = string(kind)

	var e *help.Error
	if kind != help.KindDependency && errors.As(err, &e) && e.Message != "" {
		resp.Message = e.Message
	}
	return entry.status, resp
}

// abortWithHelpError aborts the request with the response of a coordinator failure
func abortWithHelpError(c *gin.Context, err error) {
	status, resp := helpErrorResponse(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	abortWithEncoding(c, status, resp, err)
}
