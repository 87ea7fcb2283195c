package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

// VersionInfo is the /version payload.
type VersionInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// Version fetches build information from the server.
func (c *Client) Version(ctx context.Context) (*VersionInfo, error) {
	var env common.APIResponse[VersionInfo]
	if err := c.get(ctx, "/version", &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Readyz fetches the readiness report.  The report is returned even when
// the server answers 503; inspect report.Status to tell up from down.  An
// error means the probe itself could not complete.
func (c *Client) Readyz(ctx context.Context) (*common.HealthReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/readyz", nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var report common.HealthReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decode readiness report")
	}
	return &report, nil
}
