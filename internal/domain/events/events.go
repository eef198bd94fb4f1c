package events

import (
	"github.com/maxaizer/jobscout/internal/domain/models"
)

var (
	JobMatchedTopic  = "JobMatchedEvent"
	RunProgressTopic = "RunProgressEvent"
	RunFinishedTopic = "RunFinishedEvent"
)

type JobMatched struct {
	RunID string
	Job   models.Job
}

type RunProgress struct {
	Run models.Run
}

type RunFinished struct {
	Run models.Run
}
