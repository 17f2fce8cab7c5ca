package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"ayana_shop/internal/middleware"
	"ayana_shop/internal/models"
	"ayana_shop/internal/services"
)

const cartPath = "/DtoRequests/Cart"

type CartHandler struct {
	view     *View
	carts    *services.CartService
	checkout *services.CheckoutService
}

func NewCartHandler(view *View, carts *services.CartService, checkout *services.CheckoutService) *CartHandler {
	return &CartHandler{view: view, carts: carts, checkout: checkout}
}

// AddToCart JSON pour le bouton "ajouter", vue d'erreur pour les invités
func (h *CartHandler) AddToCart(c *gin.Context) {
	if !middleware.UserState(c).CanPurchase() {
		h.view.Error(c, http.StatusUnauthorized, services.MsgGuestPurchase)
		return
	}

	productID, ok := parseID(c.Query("productId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId invalide"})
		return
	}

	quantity, err := h.carts.Add(c.Request.Context(), middleware.UserID(c), productID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout au panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quantity": quantity})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := parseID(c.Query("id"))
	if ok {
		_, err := h.carts.RemoveOne(c.Request.Context(), middleware.UserID(c), productID)
		if err != nil && !errors.Is(err, services.ErrNotInCart) {
			h.view.Internal(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, cartPath)
}

// ApplyDiscount un code refusé remplace discountCode par le message d'erreur
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	res, err := h.checkout.EvaluateCode(c.Request.Context(), c.Query("userInputtedCode"))
	if err != nil {
		h.view.Internal(c, err)
		return
	}

	q := url.Values{}
	q.Set("discountAmount", strconv.FormatFloat(res.Amount, 'f', -1, 64))
	q.Set("discountType", strconv.Itoa(int(res.Type)))
	q.Set("discountCode", res.Code)
	c.Redirect(http.StatusFound, cartPath+"?"+q.Encode())
}

func (h *CartHandler) Cart(c *gin.Context) {
	data, err := h.cartData(c, c.Query("discountCode"))
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "cart.html", data)
}

func (h *CartHandler) cartData(c *gin.Context, code string) (gin.H, error) {
	lines, total, discount, err := h.checkout.Quote(c.Request.Context(), middleware.UserID(c), code)
	if err != nil {
		return nil, err
	}

	data := gin.H{
		"Lines":        lines,
		"Subtotal":     services.Subtotal(lines),
		"Total":        total,
		"MinDate":      h.checkout.Today().Format(dateLayout),
		"PaymentTypes": []models.PaymentType{models.PaymentCash, models.PaymentCard},
	}
	switch {
	case discount != nil:
		data["DiscountCode"] = discount.Code
		data["DiscountLabel"] = discountLabel(*discount)
	case code == services.MsgWrongCode || code == services.MsgExpiredCode:
		data["DiscountMessage"] = code
	}
	return data, nil
}

func discountLabel(d models.Discount) string {
	if d.Type == models.AmountOff {
		return fmt.Sprintf("-%.2f BAM", d.Amount)
	}
	return fmt.Sprintf("-%g%%", d.Amount)
}
