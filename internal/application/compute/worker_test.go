package compute

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemDesc-Engine/internal/testutil"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

type capturePublisher struct {
	mu       sync.Mutex
	messages []*kafka.ProducerMessage
	err      error
}

func (p *capturePublisher) Publish(_ context.Context, msg *kafka.ProducerMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *capturePublisher) last(t *testing.T) *moltypes.ComputeResult {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.messages)
	msg := p.messages[len(p.messages)-1]
	assert.Equal(t, kafka.TopicComputed, msg.Topic)

	var env kafka.EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, kafka.EventTypeComputed, env.EventType)

	var result moltypes.ComputeResult
	require.NoError(t, env.DecodePayload(&result))
	return &result
}

func newTestWorker(t *testing.T, pub *capturePublisher) *Worker {
	t.Helper()
	svc := NewService(Config{}, testutil.NewMockLogger(), nil)
	return NewWorker(svc, pub, testutil.NewMockLogger(), "worker-test")
}

func jobMessage(t *testing.T, job *moltypes.ComputeJob) *kafka.Message {
	t.Helper()
	env, err := kafka.NewEventEnvelope(kafka.EventTypeComputeRequested, "apiserver-test", job)
	require.NoError(t, err)
	env.TraceID = "trace-42"
	pm, err := env.ToMessage(kafka.TopicComputeRequested)
	require.NoError(t, err)
	return &kafka.Message{
		Topic:   pm.Topic,
		Key:     pm.Key,
		Value:   pm.Value,
		Headers: pm.Headers,
	}
}

func waterDTO() moltypes.MoleculeDTO {
	return moltypes.MoleculeDTO{
		Name:  "water",
		Atoms: []moltypes.AtomDTO{{Symbol: "O", Hydrogens: 2}},
	}
}

func TestHandleJob_PublishesProfile(t *testing.T) {
	pub := &capturePublisher{}
	w := newTestWorker(t, pub)

	err := w.HandleJob(context.Background(), jobMessage(t, &moltypes.ComputeJob{
		JobID:    "job-1",
		Molecule: waterDTO(),
	}))
	require.NoError(t, err)

	result := pub.last(t)
	assert.Equal(t, "job-1", result.JobID)
	assert.Nil(t, result.Error)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "H2O", result.Profile.Formula)
	assert.Empty(t, result.Whim)
}

func TestHandleJob_CarriesTraceID(t *testing.T) {
	pub := &capturePublisher{}
	w := newTestWorker(t, pub)

	err := w.HandleJob(context.Background(), jobMessage(t, &moltypes.ComputeJob{
		JobID:    "job-2",
		Molecule: waterDTO(),
	}))
	require.NoError(t, err)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.messages, 1)
	assert.Equal(t, "trace-42", pub.messages[0].Headers["trace_id"])
}

func TestHandleJob_WhimSchemes(t *testing.T) {
	pub := &capturePublisher{}
	w := newTestWorker(t, pub)

	mol := moltypes.MoleculeDTO{
		Name: "pair",
		Atoms: []moltypes.AtomDTO{
			{Symbol: "C", HasCoords: true},
			{Symbol: "C", X: 1, HasCoords: true},
		},
		Bonds: []moltypes.BondDTO{{From: 0, To: 1, Order: "single"}},
	}
	err := w.HandleJob(context.Background(), jobMessage(t, &moltypes.ComputeJob{
		JobID:    "job-3",
		Molecule: mol,
		Schemes:  []string{"unity", "mass"},
	}))
	require.NoError(t, err)

	result := pub.last(t)
	assert.Nil(t, result.Error)
	require.Len(t, result.Whim, 2)
	assert.Equal(t, "unity", result.Whim[0].Scheme)
	assert.Equal(t, "mass", result.Whim[1].Scheme)
	assert.InDelta(t, 0.25, result.Whim[0].L1, 1e-9)
}

func TestHandleJob_MoleculeFailureBecomesErrorResult(t *testing.T) {
	pub := &capturePublisher{}
	w := newTestWorker(t, pub)

	err := w.HandleJob(context.Background(), jobMessage(t, &moltypes.ComputeJob{
		JobID: "job-4",
		Molecule: moltypes.MoleculeDTO{
			Atoms: []moltypes.AtomDTO{{Symbol: "Zz"}},
		},
	}))
	require.NoError(t, err)

	result := pub.last(t)
	assert.Equal(t, "job-4", result.JobID)
	require.NotNil(t, result.Error)
	assert.Nil(t, result.Profile)
}

func TestHandleJob_Rejections(t *testing.T) {
	pub := &capturePublisher{}
	w := newTestWorker(t, pub)

	t.Run("malformed envelope", func(t *testing.T) {
		err := w.HandleJob(context.Background(), &kafka.Message{
			Topic: kafka.TopicComputeRequested,
			Value: []byte("{not json"),
		})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeEnvelopeDecodeFailed))
	})

	t.Run("wrong event type", func(t *testing.T) {
		env, err := kafka.NewEventEnvelope(kafka.EventTypeComputed, "test", &moltypes.ComputeResult{JobID: "x"})
		require.NoError(t, err)
		pm, err := env.ToMessage(kafka.TopicComputeRequested)
		require.NoError(t, err)
		err = w.HandleJob(context.Background(), &kafka.Message{Topic: pm.Topic, Value: pm.Value, Headers: pm.Headers})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownEventType))
	})

	t.Run("missing job id", func(t *testing.T) {
		err := w.HandleJob(context.Background(), jobMessage(t, &moltypes.ComputeJob{Molecule: waterDTO()}))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
	})

	assert.Empty(t, pub.messages)
}

func TestHandleJob_PublishFailurePropagates(t *testing.T) {
	pub := &capturePublisher{err: errors.New(errors.ErrCodePublishFailed, "broker down")}
	w := newTestWorker(t, pub)

	err := w.HandleJob(context.Background(), jobMessage(t, &moltypes.ComputeJob{
		JobID:    "job-5",
		Molecule: waterDTO(),
	}))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePublishFailed))
}
