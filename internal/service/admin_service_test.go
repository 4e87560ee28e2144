package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"task_maturity_backend/internal/config"
	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	users    *fakeUsers
	tests    *fakeTests
	cache    *fakeCache
	uploader *fakeUploader
	svc      *AdminService
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	users := newFakeUsers(
		&model.User{BaseModel: model.BaseModel{ID: 1}, Name: "Ada", Email: "ada@example.com"},
		&model.User{BaseModel: model.BaseModel{ID: 2}, Name: "Bob", Email: "bob@example.com"},
	)
	tests := &fakeTests{users: users}
	cache := newFakeCache()
	analysis := NewAnalysisService(users, tests, tests, &fakeCatalog{questions: testQuestions()}, cache,
		config.AnalysisConfig{CacheTTLMinutes: 10})
	uploader := &fakeUploader{}
	return &adminFixture{
		users:    users,
		tests:    tests,
		cache:    cache,
		uploader: uploader,
		svc:      NewAdminService(users, tests, analysis, uploader),
	}
}

func TestListUsersWithStatus(t *testing.T) {
	f := newAdminFixture(t)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f.tests.addSession(1, "s1", at, allOnOption(1))

	list, total, err := f.svc.ListUsersWithStatus(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)

	assert.True(t, list[0].HasTakenTest)
	assert.Equal(t, int64(1), list[0].TestCount)
	require.NotNil(t, list[0].LastTestDate)
	assert.True(t, at.Equal(*list[0].LastTestDate))

	assert.False(t, list[1].HasTakenTest)
	assert.Nil(t, list[1].LastTestDate)
}

func TestGetStatistics(t *testing.T) {
	f := newAdminFixture(t)
	now := time.Now()
	f.tests.addSession(1, "s1", now.Add(-time.Hour), allOnOption(1))
	f.tests.addSession(1, "s2", now, allOnOption(2))

	stats, err := f.svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalTests)
	assert.Equal(t, int64(1), stats.UsersWithTests)
	assert.Equal(t, 50, stats.CompletionRate)
}

func TestGetUserTestResult(t *testing.T) {
	f := newAdminFixture(t)
	f.tests.addSession(1, "s1", time.Now(), allOnOption(1))

	snapshot, err := f.svc.GetUserTestResult(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, snapshot.QuestionsAnswered)
	assert.Equal(t, "I", snapshot.Grid.Labels[0])
	assert.Equal(t, 10, snapshot.Grid.Cells[0][4].Points)

	_, err = f.svc.GetUserTestResult(context.Background(), 2)
	assert.ErrorIs(t, err, util.ErrNoResults)
}

func TestGrantRetest(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.GrantRetest(ctx, 2))
	user, err := f.users.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, user.CanRetake)
	assert.Equal(t, 1, f.cache.deletes)

	assert.ErrorIs(t, f.svc.GrantRetest(ctx, 404), util.ErrUserNotFound)
}

func TestExportReport(t *testing.T) {
	f := newAdminFixture(t)
	f.tests.addSession(1, "s1", time.Now(), allOnOption(1))

	report, err := f.svc.ExportReport(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.FileName, "reports/1/"))
	assert.True(t, strings.HasSuffix(report.FileName, ".csv"))
	assert.Equal(t, "/uploads/"+report.FileName, report.URL)

	data := string(f.uploader.files[report.FileName])
	assert.Equal(t, report.Size, len(data))
	assert.Contains(t, data, "Task receptivity orientation")
	assert.Contains(t, data, "Sets milestones and measures for critical stages of task,10,Low,≤6 or 10,Progress is rarely checked until the end.")
	assert.Contains(t, data, "Dimension,Score,Range,Band,Response")
	assert.Contains(t, data, "Total,10,10,10,10,10,10,10,0,70")
}

func TestExportReportWithoutResults(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.svc.ExportReport(context.Background(), 2)
	assert.ErrorIs(t, err, util.ErrNoResults)
	assert.Empty(t, f.uploader.files)
}
