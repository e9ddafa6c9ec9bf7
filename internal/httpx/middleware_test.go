package httpx

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func observedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/orders", func(c *gin.Context) { c.String(http.StatusOK, "[]") })
	return r
}

func TestRequestID_Minted(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	observedRouter().ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("esperaba un X-Request-ID generado")
	}
}

func TestRequestID_Echoed(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("X-Request-ID", "rid-42")
	observedRouter().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "rid-42" {
		t.Fatalf("rid=%q, esperaba el del caller", got)
	}
}

func TestLogger_SkipsHealthNoise(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(gin.DefaultWriter)

	r := observedRouter()
	for _, path := range []string{"/healthz", "/orders"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	if strings.Contains(out, "healthz") {
		t.Fatalf("healthz no debía loggearse: %s", out)
	}
	if !strings.Contains(out, "/orders") || !strings.Contains(out, "status=200") {
		t.Fatalf("falta la línea de acceso: %s", out)
	}
}
