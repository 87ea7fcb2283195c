package compute

import (
	"context"

	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor/whim"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

// Publisher is the slice of the Kafka producer the worker needs; it keeps
// the job handler testable without a broker.
type Publisher interface {
	Publish(ctx context.Context, msg *kafka.ProducerMessage) error
}

// Worker turns molecule.compute.requested events into molecule.computed
// events. Molecule-level failures (bad payload, unknown element, missing
// coordinates) are published as a result carrying the error so the
// requester learns the outcome; only infrastructure failures propagate to
// the consumer's retry and dead-letter machinery.
type Worker struct {
	service   *Service
	publisher Publisher
	logger    logging.Logger
	source    string
}

// NewWorker builds a job worker around a compute service and a result
// publisher. source names this process in outgoing envelopes.
func NewWorker(service *Service, publisher Publisher, logger logging.Logger, source string) *Worker {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Worker{
		service:   service,
		publisher: publisher,
		logger:    logger.Named("worker"),
		source:    source,
	}
}

// Register subscribes the worker's handler on the request topic.
func (w *Worker) Register(consumer *kafka.Consumer) {
	consumer.Subscribe(kafka.TopicComputeRequested, w.HandleJob)
}

// HandleJob processes one compute request record.
func (w *Worker) HandleJob(ctx context.Context, msg *kafka.Message) error {
	env, err := kafka.EnvelopeFromMessage(msg)
	if err != nil {
		return err
	}
	if env.EventType != kafka.EventTypeComputeRequested {
		return errors.New(errors.ErrCodeUnknownEventType, "unexpected event type on compute request topic").
			WithDetail("event_type=" + env.EventType)
	}

	var job moltypes.ComputeJob
	if err := env.DecodePayload(&job); err != nil {
		return err
	}
	if job.JobID == "" {
		return errors.New(errors.ErrCodeValidation, "compute job carries no job id").
			WithDetail("event_id=" + env.EventID)
	}

	result := w.compute(ctx, &job)
	if err := w.publishResult(ctx, env, result); err != nil {
		return err
	}

	if result.Error != nil {
		w.logger.Warn("compute job failed",
			logging.String("job_id", job.JobID),
			logging.String("error", *result.Error))
	} else {
		w.logger.Info("compute job finished",
			logging.String("job_id", job.JobID),
			logging.Int("whim_schemes", len(result.Whim)))
	}
	return nil
}

// compute runs the job and folds any molecule-level failure into the
// result's Error field.
func (w *Worker) compute(ctx context.Context, job *moltypes.ComputeJob) *moltypes.ComputeResult {
	result := &moltypes.ComputeResult{JobID: job.JobID}

	m, err := job.Molecule.ToGraph()
	if err != nil {
		return failResult(result, err)
	}

	profile, err := w.service.Profile(ctx, m)
	if err != nil {
		return failResult(result, err)
	}
	result.Profile = moltypes.FromProfile(m.Name(), profile)

	if len(job.Schemes) == 0 {
		return result
	}
	schemes, err := whim.ParseSchemes(job.Schemes)
	if err != nil {
		return failResult(result, err)
	}
	whimResults, err := w.service.Whim(ctx, m, schemes)
	if err != nil {
		return failResult(result, err)
	}
	for _, scheme := range schemes {
		r := whimResults[scheme]
		result.Whim = append(result.Whim, moltypes.WhimResultDTO{
			Scheme: string(r.Scheme),
			L1:     r.L1, L2: r.L2, L3: r.L3,
			Nu1: r.Nu1, Nu2: r.Nu2,
			T: r.T, A: r.A, V: r.V, K: r.K,
		})
	}
	return result
}

// publishResult wraps the result in an envelope that carries the request's
// trace id and publishes it on the computed topic.
func (w *Worker) publishResult(ctx context.Context, request *kafka.EventEnvelope, result *moltypes.ComputeResult) error {
	env, err := kafka.NewEventEnvelope(kafka.EventTypeComputed, w.source, result)
	if err != nil {
		return err
	}
	env.TraceID = request.TraceID

	msg, err := env.ToMessage(kafka.TopicComputed)
	if err != nil {
		return err
	}
	return w.publisher.Publish(ctx, msg)
}

func failResult(result *moltypes.ComputeResult, err error) *moltypes.ComputeResult {
	msg := err.Error()
	result.Error = &msg
	result.Profile = nil
	result.Whim = nil
	return result
}
