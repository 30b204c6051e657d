package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/internal/application"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

// GetOne GET /api/products/:id[?with_deleted=true]
func (h *ProductHandler) GetOne(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	withDeleted, _ := strconv.ParseBool(c.Query("with_deleted"))
	res, err := h.Svc.GetOne(c.Request.Context(), middleware.CallerFrom(c), id, withDeleted)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	upload, rejected, cleanup, err := bindPayload(c, &req)
	defer cleanup()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.CallerFrom(c), req.patch(rejected), upload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res.Data, res.Message)
}

// Update POST|PUT|PATCH /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var req productRequest
	upload, rejected, cleanup, err := bindPayload(c, &req)
	defer cleanup()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.CallerFrom(c), id, req.patch(rejected), upload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
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
	response.Success(c, http.StatusOK, res.Data, res.Message)
}
