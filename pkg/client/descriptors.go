package client

import (
	"context"
	"net/http"

	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

// postEnvelope posts body and unwraps the APIResponse envelope into T.
func postEnvelope[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	var env common.APIResponse[T]
	if err := c.do(ctx, http.MethodPost, path, body, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

// Profile computes the scalar descriptor profile of one molecule.
func (c *Client) Profile(ctx context.Context, mol moltypes.MoleculeDTO) (*moltypes.ProfileDTO, error) {
	profile, err := postEnvelope[moltypes.ProfileDTO](ctx, c, "/api/v1/descriptors/profile", mol)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProfileBatch computes profiles for up to the server's batch limit of
// molecules in one call.  Per-item failures land in the response's Failed
// list; only batch-level problems return an error.
func (c *Client) ProfileBatch(ctx context.Context, req common.BatchRequest[moltypes.MoleculeDTO]) (*common.BatchResponse[moltypes.ProfileDTO], error) {
	resp, err := postEnvelope[common.BatchResponse[moltypes.ProfileDTO]](ctx, c, "/api/v1/descriptors/profile/batch", req)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Acceptors counts hydrogen-bond acceptors in one molecule.
func (c *Client) Acceptors(ctx context.Context, mol moltypes.MoleculeDTO) (*moltypes.AcceptorCountDTO, error) {
	count, err := postEnvelope[moltypes.AcceptorCountDTO](ctx, c, "/api/v1/descriptors/acceptors", mol)
	if err != nil {
		return nil, err
	}
	return &count, nil
}

// Whim computes WHIM descriptor vectors for one molecule; the molecule must
// carry 3D coordinates.  Results come back in scheme order.
func (c *Client) Whim(ctx context.Context, req moltypes.WhimRequest) ([]moltypes.WhimResultDTO, error) {
	return postEnvelope[[]moltypes.WhimResultDTO](ctx, c, "/api/v1/descriptors/whim", req)
}

// Similarity scores a molecule pair by fingerprint similarity.
func (c *Client) Similarity(ctx context.Context, req moltypes.SimilarityRequest) (*moltypes.SimilarityResponse, error) {
	resp, err := postEnvelope[moltypes.SimilarityResponse](ctx, c, "/api/v1/similarity", req)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
