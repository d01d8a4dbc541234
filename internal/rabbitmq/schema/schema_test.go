package schema

import (
	c "oroshine/internal/core/domain/common"
	"oroshine/internal/core/domain/outbox"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	job := outbox.NewJob(
		outbox.KindResetRequested,
		c.Email("test@test.test"),
		map[string]string{"token": "tok", "reference": "ref"},
		time.Date(2022, 6, 15, 15, 30, 0, 0, time.UTC),
	)

	data, err := Encode(job)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, job.ID, decoded.ID)
	require.Equal(t, job.Kind, decoded.Kind)
	require.Equal(t, job.Recipient, decoded.Recipient)
	require.Equal(t, job.Params, decoded.Params)
	require.True(t, job.EnqueuedAt.Equal(decoded.EnqueuedAt))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	require.Error(t, err)

	_, err = Decode([]byte(`{"id": "not-a-uuid", "kind": "reset_requested"}`))
	require.Error(t, err)
}
