package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/config"
	"ayana_shop/internal/middleware"
	"ayana_shop/internal/models"
	"ayana_shop/internal/services"
	"ayana_shop/internal/utils"
)

const (
	OrderTypeOrder        = "order"
	OrderTypeSubscription = "subscription"
)

// PaymentHandler passage de commande, abonnements et page de remerciement
type PaymentHandler struct {
	view     *View
	cart     *CartHandler
	checkout *services.CheckoutService
	orders   *services.OrderService
	subs     *services.SubscriptionService
	accounts *services.AccountService
	company  config.CompanyConfig
	log      logrus.FieldLogger
}

func NewPaymentHandler(view *View, cart *CartHandler, checkout *services.CheckoutService, orders *services.OrderService,
	subs *services.SubscriptionService, accounts *services.AccountService, company config.CompanyConfig, log logrus.FieldLogger) *PaymentHandler {
	return &PaymentHandler{
		view:     view,
		cart:     cart,
		checkout: checkout,
		orders:   orders,
		subs:     subs,
		accounts: accounts,
		company:  company,
		log:      log,
	}
}

// customer utilisateur du token encore présent en base
func (h *PaymentHandler) customer(c *gin.Context) (*models.User, bool) {
	user, err := h.accounts.ByID(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, services.ErrNotFound) {
		h.view.Error(c, http.StatusNotFound, "Customer not found.")
		return nil, false
	}
	if err != nil {
		h.view.Internal(c, err)
		return nil, false
	}
	return user, true
}

var checkoutMessages = map[error]string{
	services.ErrEmptyCart:       "Your cart is empty.",
	services.ErrDeliveryDate:    "Please choose a delivery date from today on.",
	services.ErrDeliveryAddress: "Please enter a delivery address.",
	services.ErrPaymentType:     "Please choose a payment type.",
	services.ErrCardUnavailable: "Card payment is not available at the moment.",
}

func userMessage(err error, messages map[error]string) (string, bool) {
	for target, msg := range messages {
		if errors.Is(err, target) {
			return msg, true
		}
	}
	return "", false
}

func (h *PaymentHandler) OrderCreate(c *gin.Context) {
	user, ok := h.customer(c)
	if !ok {
		return
	}

	delivery, _ := parseDate(c.PostForm("DeliveryDate"))
	form := services.CheckoutForm{
		DeliveryDate:    delivery,
		PersonalMessage: c.PostForm("PersonalMessage"),
		DeliveryAddress: c.PostForm("DeliveryAddress"),
		BankAccount:     c.PostForm("BankAccount"),
		PaymentType:     models.PaymentType(c.DefaultPostForm("PaymentType", string(models.PaymentCash))),
		DiscountCode:    c.PostForm("DiscountCode"),
	}

	order, err := h.checkout.PlaceOrder(c.Request.Context(), *user, form)
	if msg, known := userMessage(err, checkoutMessages); known {
		data, qerr := h.cart.cartData(c, form.DiscountCode)
		if qerr != nil {
			h.view.Internal(c, qerr)
			return
		}
		data["Error"] = msg
		h.view.HTML(c, http.StatusBadRequest, "cart.html", data)
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}

	q := url.Values{}
	q.Set("orderType", OrderTypeOrder)
	q.Set("orderId", strconv.FormatInt(order.ID, 10))
	c.Redirect(http.StatusFound, "/DtoRequests/ThankYou?"+q.Encode())
}

// ThankYou récapitulatif et QR de virement pour les paiements hors carte
func (h *PaymentHandler) ThankYou(c *gin.Context) {
	ctx := c.Request.Context()
	orderType := c.Query("orderType")
	id, ok := parseID(c.Query("orderId"))
	data := gin.H{"OrderType": orderType}
	if !ok {
		h.view.HTML(c, http.StatusOK, "thank_you.html", data)
		return
	}

	var amount float64
	var payment *models.Payment
	var ref string
	switch orderType {
	case OrderTypeSubscription:
		sub, err := h.subs.Get(ctx, middleware.UserID(c), id)
		if err != nil {
			h.notFoundOrInternal(c, err)
			return
		}
		data["Subscription"] = sub
		amount = sub.Price
		ref = fmt.Sprintf("AYANA-SUB-%d", sub.ID)
		payment = &models.Payment{PaymentType: models.PaymentCash}
	default:
		order, p, err := h.orders.Get(ctx, middleware.UserID(c), id)
		if err != nil {
			h.notFoundOrInternal(c, err)
			return
		}
		data["Order"] = order
		amount = order.TotalAmountToPay
		ref = fmt.Sprintf("AYANA-%d", order.ID)
		payment = p
	}
	data["Amount"] = amount
	data["Reference"] = ref

	if payment != nil && payment.PaymentType != models.PaymentCard && amount > 0 {
		qr, err := utils.GenerateSepaQR(h.company.IBAN, h.company.BIC, h.company.Name, ref, amount)
		if err != nil {
			h.log.WithError(err).Warn("⚠️ QR de paiement non généré")
		} else {
			data["QRCode"] = qr
			data["Company"] = h.company
		}
	}
	h.view.HTML(c, http.StatusOK, "thank_you.html", data)
}

func (h *PaymentHandler) notFoundOrInternal(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		h.view.Error(c, http.StatusNotFound, "Order not found.")
		return
	}
	h.view.Internal(c, err)
}

func (h *PaymentHandler) SubscriptionOrder(c *gin.Context) {
	pkg, ok := services.LookupPackage(c.Query("name"))
	if !ok {
		h.view.Error(c, http.StatusBadRequest, "Unknown subscription package.")
		return
	}
	h.view.HTML(c, http.StatusOK, "subscription_order.html", gin.H{
		"Name":    pkg.Name,
		"Price":   pkg.Price,
		"Months":  pkg.Months,
		"MinDate": time.Now().Format(dateLayout),
	})
}

var subscriptionMessages = map[error]string{
	services.ErrDeliveryDate:    "Please choose a delivery date from today on.",
	services.ErrDeliveryAddress: "Please enter a delivery address.",
	services.ErrUnknownPackage:  "Unknown subscription package.",
}

func (h *PaymentHandler) SubscriptionCreate(c *gin.Context) {
	user, ok := h.customer(c)
	if !ok {
		return
	}

	// le prix vient du forfait côté serveur, jamais du formulaire
	pkg, ok := services.LookupPackage(c.PostForm("Name"))
	if !ok {
		h.view.Error(c, http.StatusBadRequest, "Unknown subscription package.")
		return
	}
	delivery, _ := parseDate(c.PostForm("DeliveryDate"))

	sub := &models.Subscription{
		Name:            pkg.Name,
		DeliveryDate:    delivery,
		PersonalMessage: c.PostForm("PersonalMessage"),
	}
	payment := models.Payment{
		DeliveryAddress: c.PostForm("DeliveryAddress"),
		BankAccount:     c.PostForm("BankAccount"),
		PaymentType:     models.PaymentCash,
	}

	err := h.subs.Create(c.Request.Context(), user.ID, sub, payment)
	if msg, known := userMessage(err, subscriptionMessages); known {
		h.view.HTML(c, http.StatusBadRequest, "subscription_order.html", gin.H{
			"Name":    pkg.Name,
			"Price":   pkg.Price,
			"Months":  pkg.Months,
			"MinDate": time.Now().Format(dateLayout),
			"Error":   msg,
		})
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}

	q := url.Values{}
	q.Set("orderType", OrderTypeSubscription)
	q.Set("orderId", strconv.FormatInt(sub.ID, 10))
	c.Redirect(http.StatusFound, "/DtoRequests/ThankYou?"+q.Encode())
}
