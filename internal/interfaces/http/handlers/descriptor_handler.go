package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ChemDesc-Engine/internal/application/compute"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor/whim"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/fingerprint"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

// DescriptorHandler serves the synchronous descriptor endpoints.
type DescriptorHandler struct {
	service *compute.Service
	logger  logging.Logger
}

// NewDescriptorHandler builds the handler around a compute service.
func NewDescriptorHandler(service *compute.Service, logger logging.Logger) *DescriptorHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &DescriptorHandler{service: service, logger: logger.Named("handlers")}
}

// Profile handles POST /api/v1/descriptors/profile.
func (h *DescriptorHandler) Profile(c *gin.Context) {
	var dto moltypes.MoleculeDTO
	if err := bindJSON(c, &dto); err != nil {
		respondError(c, err)
		return
	}
	m, err := dto.ToGraph()
	if err != nil {
		respondError(c, err)
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), m)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, moltypes.FromProfile(m.Name(), profile))
}

// Acceptors handles POST /api/v1/descriptors/acceptors.
func (h *DescriptorHandler) Acceptors(c *gin.Context) {
	var dto moltypes.MoleculeDTO
	if err := bindJSON(c, &dto); err != nil {
		respondError(c, err)
		return
	}
	m, err := dto.ToGraph()
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := h.service.Acceptors(c.Request.Context(), m)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, moltypes.AcceptorCountDTO{Name: m.Name(), Count: count})
}

// Whim handles POST /api/v1/descriptors/whim.
func (h *DescriptorHandler) Whim(c *gin.Context) {
	var req moltypes.WhimRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	m, err := req.Molecule.ToGraph()
	if err != nil {
		respondError(c, err)
		return
	}
	schemes, err := whim.ParseSchemes(req.Schemes)
	if err != nil {
		respondError(c, err)
		return
	}
	results, err := h.service.Whim(c.Request.Context(), m, schemes)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]moltypes.WhimResultDTO, 0, len(schemes))
	for _, scheme := range schemes {
		r := results[scheme]
		out = append(out, moltypes.WhimResultDTO{
			Scheme: string(r.Scheme),
			L1:     r.L1, L2: r.L2, L3: r.L3,
			Nu1: r.Nu1, Nu2: r.Nu2,
			T: r.T, A: r.A, V: r.V, K: r.K,
		})
	}
	respondData(c, http.StatusOK, out)
}

// ProfileBatch handles POST /api/v1/descriptors/profile/batch. Items are
// independent unless StopOnError is set; a malformed molecule fails its
// item, not the batch.
func (h *DescriptorHandler) ProfileBatch(c *gin.Context) {
	var req common.BatchRequest[moltypes.MoleculeDTO]
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	limit := h.service.Config().MaxBatchSize
	if len(req.Items) == 0 {
		respondError(c, errors.New(errors.ErrCodeBadRequest, "batch must not be empty"))
		return
	}
	if len(req.Items) > limit {
		respondError(c, errors.New(errors.ErrCodeBadRequest, "batch exceeds the configured size limit").
			WithDetailf("size=%d limit=%d", len(req.Items), limit))
		return
	}

	if req.StopOnError {
		h.profileBatchSequential(c, req.Items)
		return
	}

	resp := common.BatchResponse[moltypes.ProfileDTO]{
		Succeeded:      []moltypes.ProfileDTO{},
		Failed:         []common.BatchItemError{},
		TotalProcessed: len(req.Items),
	}

	graphs := make([]*graph.Molecule, 0, len(req.Items))
	indexes := make([]int, 0, len(req.Items))
	for i := range req.Items {
		m, err := req.Items[i].ToGraph()
		if err != nil {
			resp.Failed = append(resp.Failed, itemError(i, err))
			continue
		}
		graphs = append(graphs, m)
		indexes = append(indexes, i)
	}

	if len(graphs) > 0 {
		items, err := h.service.ProfileBatch(c.Request.Context(), graphs)
		if err != nil {
			respondError(c, err)
			return
		}
		for j, item := range items {
			i := indexes[j]
			if item.Err != nil {
				resp.Failed = append(resp.Failed, itemError(i, item.Err))
				continue
			}
			resp.Succeeded = append(resp.Succeeded, *moltypes.FromProfile(req.Items[i].Name, item.Profile))
		}
	}
	sort.Slice(resp.Failed, func(a, b int) bool { return resp.Failed[a].Index < resp.Failed[b].Index })
	respondData(c, http.StatusOK, resp)
}

// profileBatchSequential processes items one by one and stops at the first
// failure.
func (h *DescriptorHandler) profileBatchSequential(c *gin.Context, items []moltypes.MoleculeDTO) {
	resp := common.BatchResponse[moltypes.ProfileDTO]{
		Succeeded: []moltypes.ProfileDTO{},
		Failed:    []common.BatchItemError{},
	}
	for i := range items {
		resp.TotalProcessed++
		m, err := items[i].ToGraph()
		if err == nil {
			var profile *descriptor.Profile
			profile, err = h.service.Profile(c.Request.Context(), m)
			if err == nil {
				resp.Succeeded = append(resp.Succeeded, *moltypes.FromProfile(items[i].Name, profile))
				continue
			}
		}
		resp.Failed = append(resp.Failed, itemError(i, err))
		break
	}
	respondData(c, http.StatusOK, resp)
}

// Similarity handles POST /api/v1/similarity.
func (h *DescriptorHandler) Similarity(c *gin.Context) {
	var req moltypes.SimilarityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	a, err := req.A.ToGraph()
	if err != nil {
		respondError(c, err)
		return
	}
	b, err := req.B.ToGraph()
	if err != nil {
		respondError(c, err)
		return
	}

	params := compute.SimilarityParams{Size: req.Size, Extent: req.Depth}
	if req.FingerprintKind != "" {
		params.Kind, err = fingerprint.ParseKind(req.FingerprintKind)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	params.Metric, err = fingerprint.ParseMetric(req.Metric)
	if err != nil {
		respondError(c, err)
		return
	}

	score, err := h.service.Similarity(c.Request.Context(), a, b, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, moltypes.SimilarityResponse{
		Metric:          params.Metric.String(),
		FingerprintKind: effectiveKind(params.Kind).String(),
		Score:           score,
	})
}

func effectiveKind(kind fingerprint.Kind) fingerprint.Kind {
	if kind == "" {
		return fingerprint.KindPath
	}
	return kind
}
