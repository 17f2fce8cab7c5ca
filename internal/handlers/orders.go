package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"ayana_shop/internal/middleware"
	"ayana_shop/internal/services"
)

const (
	userOrdersPath   = "/Orders/UserOrders"
	activeOrdersPath = "/Orders/ActiveOrders"
)

type OrderHandler struct {
	view   *View
	orders *services.OrderService
}

func NewOrderHandler(view *View, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{view: view, orders: orders}
}

func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.orders.UserOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "orders_user.html", gin.H{
		"Orders":        orders,
		"OverallRating": services.OverallRating(orders),
		"Ratings":       []int{1, 2, 3, 4, 5},
	})
}

// Edit note d'une commande
func (h *OrderHandler) Edit(c *gin.Context) {
	id, ok := parseID(c.PostForm("OrderId"))
	rating, err := strconv.Atoi(c.PostForm("Rating"))
	if !ok || err != nil {
		h.view.Flash(c, "Please choose a rating between 1 and 5.")
		c.Redirect(http.StatusFound, userOrdersPath)
		return
	}

	err = h.orders.Rate(c.Request.Context(), middleware.UserID(c), id, rating)
	switch {
	case errors.Is(err, services.ErrInvalidRating):
		h.view.Flash(c, "Please choose a rating between 1 and 5.")
	case errors.Is(err, services.ErrNotFound):
		h.view.Error(c, http.StatusNotFound, "Order not found.")
		return
	case err != nil:
		h.view.Internal(c, err)
		return
	default:
		h.view.Flash(c, "Thank you for rating your order!")
	}
	c.Redirect(http.StatusFound, userOrdersPath)
}

func (h *OrderHandler) ActiveOrders(c *gin.Context) {
	orders, err := h.orders.ActiveOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "orders_active.html", gin.H{"Orders": orders})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := parseID(c.PostForm("OrderId"))
	if !ok {
		h.view.Error(c, http.StatusNotFound, "Order not found.")
		return
	}

	err := h.orders.Cancel(c.Request.Context(), middleware.UserID(c), id)
	switch {
	case errors.Is(err, services.ErrCancellationWindow):
		h.view.Flash(c, services.MsgCancellationWindow)
	case errors.Is(err, services.ErrNotFound):
		h.view.Error(c, http.StatusNotFound, "Order not found.")
		return
	case err != nil:
		h.view.Internal(c, err)
		return
	default:
		h.view.Flash(c, services.MsgOrderCanceled)
	}
	c.Redirect(http.StatusFound, activeOrdersPath)
}
