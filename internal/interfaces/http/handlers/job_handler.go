package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/ChemDesc-Engine/internal/application/compute"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor/whim"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/interfaces/http/middleware"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

// JobRequest asks for an async descriptor computation.
type JobRequest struct {
	Molecule moltypes.MoleculeDTO `json:"molecule"`
	Schemes  []string             `json:"whim_schemes,omitempty"`
}

// JobAccepted acknowledges an enqueued job.
type JobAccepted struct {
	JobID string `json:"job_id"`
}

// JobHandler enqueues compute jobs on the request topic.
type JobHandler struct {
	publisher compute.Publisher
	logger    logging.Logger
	source    string
}

// NewJobHandler builds the handler. source names this process in outgoing
// envelopes.
func NewJobHandler(publisher compute.Publisher, logger logging.Logger, source string) *JobHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &JobHandler{publisher: publisher, logger: logger.Named("handlers"), source: source}
}

// Enqueue handles POST /api/v1/jobs: the molecule is validated and the job
// published, computation happens in the worker.
func (h *JobHandler) Enqueue(c *gin.Context) {
	var req JobRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if _, err := req.Molecule.ToGraph(); err != nil {
		respondError(c, err)
		return
	}
	if _, err := whim.ParseSchemes(req.Schemes); len(req.Schemes) > 0 && err != nil {
		respondError(c, err)
		return
	}

	job := moltypes.ComputeJob{
		JobID:    uuid.New().String(),
		Molecule: req.Molecule,
		Schemes:  req.Schemes,
	}
	env, err := kafka.NewEventEnvelope(kafka.EventTypeComputeRequested, h.source, &job)
	if err != nil {
		respondError(c, err)
		return
	}
	env.TraceID = middleware.GetRequestID(c)
	msg, err := env.ToMessage(kafka.TopicComputeRequested)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.publisher.Publish(c.Request.Context(), msg); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("compute job enqueued",
		logging.String("job_id", job.JobID),
		logging.Int("atoms", len(req.Molecule.Atoms)))
	respondData(c, http.StatusAccepted, JobAccepted{JobID: job.JobID})
}
