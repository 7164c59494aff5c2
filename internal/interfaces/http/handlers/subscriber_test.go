package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/subscriber"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSubscriberRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "subscribers.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&subscriber.Subscriber{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	h := NewSubscriberHandler(subscriber.NewService(db, &config.Config{}, nil, log))

	router := gin.New()
	router.POST("/api/subscribers", h.Subscribe)
	router.PUT("/api/subscribers/unsubscribe", h.Unsubscribe)
	router.POST("/api/subscribers/notify", h.Notify)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNotifyWithoutActiveSubscribersReturnsNotFound(t *testing.T) {
	router := newSubscriberRouter(t)

	w := doJSON(router, http.MethodPost, "/api/subscribers/notify", `{"subject":"Sale","message":"hi"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "no active subscribers found")
}

func TestNotifyMissingFieldsReturnsBadRequest(t *testing.T) {
	router := newSubscriberRouter(t)

	w := doJSON(router, http.MethodPost, "/api/subscribers/notify", `{"subject":"Sale"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeAndUnsubscribeStatusCodes(t *testing.T) {
	router := newSubscriberRouter(t)

	w := doJSON(router, http.MethodPost, "/api/subscribers", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/subscribers", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already subscribed")

	w = doJSON(router, http.MethodPut, "/api/subscribers/unsubscribe", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/api/subscribers/unsubscribe", `{"email":"nobody@example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
