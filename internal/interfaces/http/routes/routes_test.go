package routes

import (
	"net/http"
	"testing"

	"github.com/arianshop/backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	require.NoError(t, SetupRoutes(engine.Group("/api"), nil, nil, &config.Config{}, logrus.New()))

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	assert.True(t, registered[http.MethodPut+" /api/subscribers/unsubscribe"],
		"unsubscribe is a PUT, matching the storefront client")
	assert.False(t, registered[http.MethodPost+" /api/subscribers/unsubscribe"])

	for _, want := range []string{
		"POST /api/user/register",
		"POST /api/user/login",
		"POST /api/user/login-google",
		"POST /api/user/admin",
		"GET /api/user/me",
		"PUT /api/user/update",
		"GET /api/user/wishlist",
		"POST /api/user/wishlist/toggle",
		"POST /api/user/wishlist/remove",
		"GET /api/product/list",
		"POST /api/product/single",
		"POST /api/product/add",
		"POST /api/product/remove",
		"POST /api/cart/add",
		"POST /api/cart/update",
		"POST /api/cart/get",
		"POST /api/cart/clear",
		"POST /api/cart/merge",
		"POST /api/order/place",
		"POST /api/order/stripe",
		"POST /api/order/update-payment",
		"POST /api/order/userorders",
		"POST /api/order/list",
		"POST /api/order/status",
		"POST /api/order/delete",
		"GET /api/order/invoice/:id",
		"POST /api/subscribers",
		"GET /api/subscribers",
		"POST /api/subscribers/notify",
		"POST /api/subscribers/notify-new-product",
	} {
		assert.True(t, registered[want], want)
	}
}
