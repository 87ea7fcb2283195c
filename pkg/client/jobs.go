package client

import (
	"context"

	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

// JobRequest enqueues an asynchronous compute job.  Schemes selects the
// WHIM weighting schemes; empty defaults to unity.
type JobRequest struct {
	Molecule moltypes.MoleculeDTO `json:"molecule"`
	Schemes  []string             `json:"whim_schemes,omitempty"`
}

// JobAccepted acknowledges an enqueued job.
type JobAccepted struct {
	JobID string `json:"job_id"`
}

// EnqueueJob submits a molecule for asynchronous computation and returns
// the assigned job id.  Results are published on the computed event topic.
func (c *Client) EnqueueJob(ctx context.Context, req JobRequest) (*JobAccepted, error) {
	accepted, err := postEnvelope[JobAccepted](ctx, c, "/api/v1/jobs", req)
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}
