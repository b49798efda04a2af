package jobs_test

import (
	"errors"
	"testing"

	"footprint/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j recordingJob) Name() string { return j.name }

func (j recordingJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j recordingJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager_StartAllAndStopAll(t *testing.T) {
	var events []string
	manager := jobs.NewJobManager(
		recordingJob{name: "a", events: &events},
		recordingJob{name: "b", events: &events},
	)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
	manager.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestJobManager_FailedStartStopsStartedJobs(t *testing.T) {
	var events []string
	boom := errors.New("bad schedule")
	manager := jobs.NewJobManager(
		recordingJob{name: "a", events: &events},
		recordingJob{name: "b", startErr: boom, events: &events},
		recordingJob{name: "c", events: &events},
	)

	err := manager.StartAll()

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to start b job")
	assert.Equal(t, []string{"start a", "stop a"}, events)
}
