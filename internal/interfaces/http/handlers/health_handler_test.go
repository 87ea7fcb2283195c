package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

func healthEngine(checks ...HealthCheck) *gin.Engine {
	h := NewHealthHandler(VersionInfo{Name: "chemdesc", Version: "1.2.3"}, checks...)
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/version", h.Version)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, healthEngine(), "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"up"}`, w.Body.String())
}

func TestReadyz_AllUp(t *testing.T) {
	r := healthEngine(func() common.ComponentHealth {
		return common.ComponentHealth{Name: "kafka", Status: common.HealthUp}
	})

	w := get(t, r, "/readyz")
	require.Equal(t, http.StatusOK, w.Code)

	var report common.HealthReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, common.HealthUp, report.Status)
	assert.Equal(t, "1.2.3", report.Version)
	require.Len(t, report.Components, 1)
}

func TestReadyz_ComponentDown(t *testing.T) {
	r := healthEngine(func() common.ComponentHealth {
		return common.ComponentHealth{Name: "kafka", Status: common.HealthDown, Message: "closed"}
	})

	w := get(t, r, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var report common.HealthReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, common.HealthDown, report.Status)
}

func TestVersion(t *testing.T) {
	w := get(t, healthEngine(), "/version")
	require.Equal(t, http.StatusOK, w.Code)

	info := decodeSuccess[VersionInfo](t, w)
	assert.Equal(t, "chemdesc", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
}
