package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"task_maturity_backend/internal/config"
	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	users *fakeUsers
	tests *fakeTests
	cache *fakeCache
	svc   *TestService
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	users := newFakeUsers(&model.User{BaseModel: model.BaseModel{ID: 1}, Name: "Ada", Email: "ada@example.com"})
	tests := &fakeTests{users: users}
	catalog := &fakeCatalog{questions: testQuestions()}
	cache := newFakeCache()
	analysis := NewAnalysisService(users, tests, tests, catalog, cache, config.AnalysisConfig{})
	return &testFixture{
		users: users,
		tests: tests,
		cache: cache,
		svc:   NewTestService(catalog, tests, users, analysis),
	}
}

func TestSubmitTestResponses(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	session, err := f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(1))
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 70, session.TotalScore)
	assert.Equal(t, 1, f.cache.deletes)

	stored, err := f.tests.FindByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stored, 7)
	for _, r := range stored {
		assert.Equal(t, session.ID, r.SessionID)
	}

	taken, err := f.svc.HasTakenTest(ctx, 1)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestSubmitTestResponses_SplitPoints(t *testing.T) {
	f := newTestFixture(t)

	var inputs []ResponseInput
	for q := uint(1); q <= 7; q++ {
		inputs = append(inputs,
			ResponseInput{QuestionID: q, OptionID: q*100 + 1, Points: 4},
			ResponseInput{QuestionID: q, OptionID: q*100 + 5, Points: 6},
			ResponseInput{QuestionID: q, OptionID: q*100 + 8, Points: 0},
		)
	}

	_, err := f.svc.SubmitTestResponses(context.Background(), 1, inputs)
	assert.NoError(t, err)
}

func TestSubmitTestResponses_AlreadySubmitted(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(1))
	require.NoError(t, err)

	_, err = f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(2))
	assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted)

	require.NoError(t, f.users.SetCanRetake(ctx, 1, true))
	_, err = f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(2))
	require.NoError(t, err)

	user, err := f.users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, user.CanRetake)
}

func TestSubmitTestResponses_RecheckedAtWrite(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(1))
	require.NoError(t, err)

	// 提交前的检查读到旧状态，写入时仍需拒绝
	f.tests.staleCount = true
	_, err = f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(2))
	assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted)

	sessions, err := f.tests.ListSessionsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestSubmitTestResponses_ConcurrentSubmitsCreateOneSession(t *testing.T) {
	f := newTestFixture(t)
	f.tests.staleCount = true
	ctx := context.Background()

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(1))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, rejected)

	sessions, err := f.tests.ListSessionsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestSubmitTestResponses_OneSubmitPerRetestGrant(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(1))
	require.NoError(t, err)
	require.NoError(t, f.users.SetCanRetake(ctx, 1, true))

	f.tests.staleCount = true
	_, err = f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(2))
	require.NoError(t, err)
	_, err = f.svc.SubmitTestResponses(ctx, 1, allOnOptionInput(3))
	assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted)

	sessions, err := f.tests.ListSessionsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestSubmitTestResponses_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]ResponseInput) []ResponseInput
	}{
		{"subtotal below ten", func(in []ResponseInput) []ResponseInput {
			in[0].Points = 9
			return in
		}},
		{"negative points", func(in []ResponseInput) []ResponseInput {
			in[0].Points = -1
			return append(in, ResponseInput{QuestionID: 1, OptionID: 102, Points: 11})
		}},
		{"unknown option", func(in []ResponseInput) []ResponseInput {
			return append(in, ResponseInput{QuestionID: 1, OptionID: 999, Points: 0})
		}},
		{"option from another question", func(in []ResponseInput) []ResponseInput {
			in[0].OptionID = 201
			return in
		}},
		{"duplicate option", func(in []ResponseInput) []ResponseInput {
			in[0].Points = 5
			return append(in, ResponseInput{QuestionID: 1, OptionID: 101, Points: 5})
		}},
		{"missing question", func(in []ResponseInput) []ResponseInput {
			return in[1:]
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture(t)
			_, err := f.svc.SubmitTestResponses(context.Background(), 1, tt.mutate(allOnOptionInput(1)))
			assert.ErrorIs(t, err, util.ErrInvalidSubmission)
			assert.Empty(t, f.tests.sessions)
		})
	}
}

func TestSubmitTestResponses_UnknownUser(t *testing.T) {
	f := newTestFixture(t)
	_, err := f.svc.SubmitTestResponses(context.Background(), 42, allOnOptionInput(1))
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGetStatusAndHistory(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	status, err := f.svc.GetStatus(ctx, 1)
	require.NoError(t, err)
	assert.False(t, status.HasTakenTest)
	assert.Nil(t, status.LastSession)

	f.tests.addSession(1, "s1", time.Now(), allOnOption(1))

	status, err = f.svc.GetStatus(ctx, 1)
	require.NoError(t, err)
	assert.True(t, status.HasTakenTest)
	assert.Equal(t, int64(1), status.TestCount)
	require.NotNil(t, status.LastSession)
	assert.Equal(t, "s1", status.LastSession.ID)

	history, err := f.svc.GetTestHistory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
