package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeoutExpiryWritesOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handlerDone := make(chan struct{})
	router := gin.New()
	router.Use(Timeout(30 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		defer close(handlerDone)
		time.Sleep(150 * time.Millisecond)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	// Let the late handler finish; its write must be discarded.
	<-handlerDone

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "Request timeout")
	assert.NotContains(t, w.Body.String(), `"success":true`)
}

func TestTimeoutPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Timeout(time.Second))
	router.GET("/fast", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestTimeoutDoesNotOverrideStartedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handlerDone := make(chan struct{})
	router := gin.New()
	router.Use(Timeout(30 * time.Millisecond))
	router.GET("/streaming", func(c *gin.Context) {
		defer close(handlerDone)
		c.String(http.StatusOK, "partial")
		c.Writer.Flush()
		time.Sleep(150 * time.Millisecond)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/streaming", nil))

	<-handlerDone

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "partial")
	assert.NotContains(t, w.Body.String(), "Request timeout")
}
