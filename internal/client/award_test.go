package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardFlow_Award_ValidationFailuresSendNothing(t *testing.T) {
	backend := newFakeBackend(t, "teacher", 0)
	api, err := New(backend.server.URL)
	require.NoError(t, err)

	flow := NewAwardFlow(api)
	ctx := context.Background()
	student := uuid.New()

	_, err = flow.Award(ctx, nil, 50, "good work")
	assert.ErrorIs(t, err, ErrNoStudentsSelected)

	_, err = flow.Award(ctx, []uuid.UUID{student}, 0, "good work")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = flow.Award(ctx, []uuid.UUID{student}, 50, "  ")
	assert.ErrorIs(t, err, ErrAwardReasonRequired)

	assert.Equal(t, 0, backend.awardCalls)
}

func TestAwardFlow_Award_SubmitsOneCallPerStudent(t *testing.T) {
	backend := newFakeBackend(t, "teacher", 0)
	api, err := New(backend.server.URL)
	require.NoError(t, err)

	flow := NewAwardFlow(api)
	students := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	summary, err := flow.Award(context.Background(), students, 25, "helped at the fair")

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Awarded)
	assert.Empty(t, summary.Failed)
	assert.Equal(t, 3, backend.awardCalls)
}

func TestAwardFlow_Award_ReportsPerStudentFailuresWithoutRollback(t *testing.T) {
	backend := newFakeBackend(t, "teacher", 0)
	api, err := New(backend.server.URL)
	require.NoError(t, err)

	backend.awardFails[2] = "Can only award points to students"

	flow := NewAwardFlow(api)
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	summary, err := flow.Award(context.Background(), []uuid.UUID{first, second, third}, 25, "helped at the fair")

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Awarded)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, second, summary.Failed[0].UserID)
	assert.Equal(t, "Can only award points to students", summary.Failed[0].Message)
	assert.Equal(t, 3, backend.awardCalls)
}
