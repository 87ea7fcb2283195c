package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

// HealthCheck probes one dependency for the readiness endpoint.
type HealthCheck func() common.ComponentHealth

// VersionInfo is the /version payload.
type VersionInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// HealthHandler serves liveness, readiness and version endpoints.
type HealthHandler struct {
	info    VersionInfo
	started time.Time
	checks  []HealthCheck
}

// NewHealthHandler builds the handler; checks run on every readiness probe.
func NewHealthHandler(info VersionInfo, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{info: info, started: time.Now(), checks: checks}
}

// Healthz handles GET /healthz: process is up and serving.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": common.HealthUp})
}

// Readyz handles GET /readyz: every dependency check must pass. A down
// component yields 503 so orchestrators stop routing traffic here.
func (h *HealthHandler) Readyz(c *gin.Context) {
	report := common.HealthReport{
		Version: h.info.Version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}
	for _, check := range h.checks {
		report.Components = append(report.Components, check())
	}
	report.Aggregate()

	status := http.StatusOK
	if report.Status == common.HealthDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// Version handles GET /version.
func (h *HealthHandler) Version(c *gin.Context) {
	respondData(c, http.StatusOK, h.info)
}
