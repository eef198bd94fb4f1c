package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDb(t *testing.T) *DbContext {
	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func findJob(t *testing.T, db *gorm.DB, id string) (models.Job, error) {
	t.Helper()
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	return job, err
}

func findRun(t *testing.T, db *gorm.DB, id string) (models.Run, error) {
	t.Helper()
	var run models.Run
	err := db.First(&run, "id = ?", id).Error
	return run, err
}

func Test_Jobs_Append_ShouldKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDb(t).DB
	jobs := NewJobsRepository(db)

	score := 72.0
	salary := "$120,000/yr - $150,000/yr"
	require.NoError(t, jobs.Append(ctx, models.Job{ID: "300", Title: "Go Developer", MatchScore: &score,
		SalaryRange: &salary, Skills: []string{"Go", "Docker"}}))
	require.NoError(t, jobs.Append(ctx, models.Job{ID: "100", Title: "SRE"}))

	ids, err := jobs.ExistingIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"300", "100"}, ids)

	stored, err := findJob(t, db, "300")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Docker"}, stored.Skills)
	assert.Equal(t, salary, *stored.SalaryRange)
	assert.Equal(t, 72.0, *stored.MatchScore)
	assert.Equal(t, models.StatusNew, stored.Status)

	other, err := findJob(t, db, "100")
	require.NoError(t, err)
	assert.Nil(t, other.SalaryRange)
	assert.Nil(t, other.MatchScore)
}

func Test_Jobs_AppendDuplicate_ShouldFail(t *testing.T) {
	ctx := context.Background()
	db := newTestDb(t).DB
	jobs := NewJobsRepository(db)

	require.NoError(t, jobs.Append(ctx, models.Job{ID: "1", Title: "first"}))
	assert.Error(t, jobs.Append(ctx, models.Job{ID: "1", Title: "second"}))

	stored, err := findJob(t, db, "1")
	require.NoError(t, err)
	assert.Equal(t, "first", stored.Title)
}

func Test_Runs_Save_ShouldUpsertState(t *testing.T) {
	ctx := context.Background()
	db := newTestDb(t).DB
	runs := NewRunsRepository(db)

	run := models.NewRun()
	require.NoError(t, runs.Save(ctx, run))

	require.NoError(t, run.Start(20))
	run.JobsScraped = 4
	require.NoError(t, run.Complete())
	require.NoError(t, runs.Save(ctx, run))

	stored, err := findRun(t, db, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunCompleted, stored.Status)
	assert.Equal(t, 4, stored.JobsScraped)
	assert.NotNil(t, stored.FinishedAt)

	var count int64
	require.NoError(t, db.Model(&models.Run{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func Test_Runs_RemoveOlderThan_ShouldDeleteOnlyExpired(t *testing.T) {
	ctx := context.Background()
	db := newTestDb(t).DB
	runs := NewRunsRepository(db)

	old := models.NewRun()
	old.CreatedAt = time.Now().AddDate(0, 0, -40)
	fresh := models.NewRun()
	require.NoError(t, runs.Save(ctx, old))
	require.NoError(t, runs.Save(ctx, fresh))

	removed, err := runs.RemoveOlderThan(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = findRun(t, db, old.ID)
	assert.Error(t, err)
	_, err = findRun(t, db, fresh.ID)
	assert.NoError(t, err)
}
