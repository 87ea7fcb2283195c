package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

func TestEnqueueJob(t *testing.T) {
	var gotReq JobRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		writeEnvelope(t, w, http.StatusAccepted, JobAccepted{JobID: "job-77"})
	}))

	accepted, err := c.EnqueueJob(context.Background(), JobRequest{
		Molecule: ethanol(),
		Schemes:  []string{"unity"},
	})
	require.NoError(t, err)
	assert.Equal(t, "job-77", accepted.JobID)
	assert.Equal(t, []string{"unity"}, gotReq.Schemes)
}

func TestEnqueueJob_BrokerDown(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(common.NewErrorResponse(
			string(errors.ErrCodePublishFailed), "broker unavailable"))
	}))

	_, err := c.EnqueueJob(context.Background(), JobRequest{Molecule: ethanol()})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePublishFailed))
}

func TestVersion(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, VersionInfo{Name: "chemdesc-engine", Version: "0.1.0"})
	}))

	info, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "chemdesc-engine", info.Name)
	assert.Equal(t, "0.1.0", info.Version)
}

func TestReadyz_ReturnsReportWhenDown(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/readyz", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(common.HealthReport{
			Status: common.HealthDown,
			Components: []common.ComponentHealth{
				{Name: "kafka", Status: common.HealthDown, Message: "dial refused"},
			},
		})
	}))

	report, err := c.Readyz(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.HealthDown, report.Status)
	require.Len(t, report.Components, 1)
	assert.Equal(t, "kafka", report.Components[0].Name)
}

func TestReadyz_Up(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(common.HealthReport{Status: common.HealthUp, Version: "0.1.0"})
	}))

	report, err := c.Readyz(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.HealthUp, report.Status)
}
