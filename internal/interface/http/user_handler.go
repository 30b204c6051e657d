package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/internal/application"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// GetOne GET /api/users/:id
func (h *UserHandler) GetOne(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.GetOne(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}

// Update POST|PUT|PATCH /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var req userUpdateRequest
	upload, rejected, cleanup, err := bindPayload(c, &req)
	defer cleanup()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.CallerFrom(c), id, req.input(rejected), upload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}
