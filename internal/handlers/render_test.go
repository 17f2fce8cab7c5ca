package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ayana_shop/internal/models"
)

func TestParsePrice(t *testing.T) {
	p, ok := parsePrice(" 12,50 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, p)

	_, ok = parsePrice("0")
	assert.True(t, ok)

	for _, raw := range []string{"", "abc", "-1", "Inf", "+Inf", "-Inf", "infinity", "NaN", "1e7"} {
		_, ok := parsePrice(raw)
		assert.False(t, ok, raw)
	}
}

func TestProductBindingRejectsInfinitePrice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bind := func(price string) error {
		form := url.Values{"Name": {"Red roses"}, "Price": {price}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/Products/Create", strings.NewReader(form.Encode()))
		c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var p models.Product
		return c.ShouldBind(&p)
	}

	assert.NoError(t, bind("25.5"))
	assert.Error(t, bind("+Inf"))
	assert.Error(t, bind("NaN"))
	assert.Error(t, bind("2000000"))
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/Orders/UserOrders", safeRedirect("/Orders/UserOrders"))
	assert.Equal(t, "/", safeRedirect("//evil.example"))
	assert.Equal(t, "/", safeRedirect("https://evil.example"))
	assert.Equal(t, "/", safeRedirect("/\\evil.example"))
}
