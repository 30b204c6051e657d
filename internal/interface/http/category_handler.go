package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/internal/application"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

func (h *CategoryHandler) GetOne(c *gin.Context) {
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

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	_, rejected, cleanup, err := bindPayload(c, &req)
	defer cleanup()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.CallerFrom(c), req.patch(rejected))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res.Data, res.Message)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var req categoryRequest
	_, rejected, cleanup, err := bindPayload(c, &req)
	defer cleanup()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.CallerFrom(c), id, req.patch(rejected))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}

// Delete is a hard delete; 409 while products still reference the category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Delete(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, res.Message)
}
