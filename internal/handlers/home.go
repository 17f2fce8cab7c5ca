package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ayana_shop/internal/services"
)

type HomeHandler struct {
	view    *View
	catalog *services.CatalogService
	orders  *services.OrderService
}

func NewHomeHandler(view *View, catalog *services.CatalogService, orders *services.OrderService) *HomeHandler {
	return &HomeHandler{view: view, catalog: catalog, orders: orders}
}

// Index meilleures ventes, anniversaires et note moyenne
func (h *HomeHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	best, err := h.catalog.BestSellers(ctx)
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	birthday, err := h.catalog.BirthdayBestSellers(ctx)
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	rating, err := h.orders.OverallRating(ctx)
	if err != nil {
		h.view.Internal(c, err)
		return
	}

	h.view.HTML(c, http.StatusOK, "home_index.html", gin.H{
		"BestSellers":         best,
		"BirthdayBestSellers": birthday,
		"OverallRating":       rating,
	})
}

// Static pages sans données
func (h *HomeHandler) Static(template string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.view.HTML(c, http.StatusOK, template, nil)
	}
}

func (h *HomeHandler) CategoryView(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category1"))
	products, err := h.catalog.CategoryView(c.Request.Context(), category)
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "home_category_view.html", gin.H{
		"Category": category,
		"Products": products,
	})
}

func (h *HomeHandler) Error(c *gin.Context) {
	h.view.Error(c, http.StatusOK, c.Query("message"))
}
