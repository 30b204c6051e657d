package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindReferentialIntegrity:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with the status for its kind. Unexpected errors are
// logged and replaced by a generic message.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperr.KindOf(err)
	status := statusOf(kind)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error(c, status, "internal server error", nil)
		return
	}
	msg := apperr.MessageOf(err)
	if msg == "" {
		msg = http.StatusText(status)
	}
	response.Error(c, status, msg, apperr.FieldsOf(err))
}
