package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	xmlview "github.com/cdileep23/go-xmlview"
)

// Error codes of the JSON error body.
const (
	CodeInvalidRecord      = "invalid_record"
	CodeBodyTooLarge       = "body_too_large"
	CodeMissingXML         = "missing_xml"
	CodeNoDocument         = "no_document"
	CodeBrowserUnavailable = "browser_unavailable"
	CodeExportFailed       = "export_failed"
	CodeTimeout            = "timeout"
	CodeUnavailable        = "unavailable"
	CodeInternal           = "internal"
)

// ErrorBody is the error object of every failed response.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorResponse wraps ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFromContext(c),
	}})
}

// respondErr maps library errors onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	_ = c.Error(err)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, err.Error())
	case errors.Is(err, xmlview.ErrInvalidRecord):
		respondError(c, http.StatusBadRequest, CodeInvalidRecord, err.Error())
	case errors.Is(err, xmlview.ErrMissingXMLContent):
		respondError(c, http.StatusUnprocessableEntity, CodeMissingXML, err.Error())
	case errors.Is(err, xmlview.ErrNoDocument):
		respondError(c, http.StatusUnprocessableEntity, CodeNoDocument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, CodeTimeout, "export timed out")
	case errors.Is(err, xmlview.ErrPoolClosed):
		respondError(c, http.StatusServiceUnavailable, CodeUnavailable, "server is shutting down")
	case errors.Is(err, xmlview.ErrBrowserConnect):
		respondError(c, http.StatusServiceUnavailable, CodeBrowserUnavailable, err.Error())
	case errors.Is(err, xmlview.ErrPageCreate),
		errors.Is(err, xmlview.ErrPageLoad),
		errors.Is(err, xmlview.ErrPDFGeneration):
		respondError(c, http.StatusBadGateway, CodeExportFailed, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, CodeInternal, "Unexpected server error")
	}
}
