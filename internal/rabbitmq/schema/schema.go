package schema

import (
	"encoding/json"
	c "oroshine/internal/core/domain/common"
	"oroshine/internal/core/domain/outbox"
	"time"

	"github.com/google/uuid"
)

// Job is the wire form of an outbox job.
type Job struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Recipient  string            `json:"recipient"`
	Params     map[string]string `json:"params"`
	EnqueuedAt time.Time         `json:"enqueuedAt"`
}

func Encode(job outbox.Job) ([]byte, error) {
	return json.Marshal(Job{
		ID:         job.ID.String(),
		Kind:       string(job.Kind),
		Recipient:  string(job.Recipient),
		Params:     job.Params,
		EnqueuedAt: job.EnqueuedAt,
	})
}

func Decode(data []byte) (job outbox.Job, err error) {
	wire := Job{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return job, err
	}
	id, err := uuid.Parse(wire.ID)
	if err != nil {
		return job, err
	}
	return outbox.Job{
		ID:         id,
		Kind:       outbox.JobKind(wire.Kind),
		Recipient:  c.Email(wire.Recipient),
		Params:     wire.Params,
		EnqueuedAt: wire.EnqueuedAt,
	}, nil
}
