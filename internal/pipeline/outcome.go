package pipeline

import "time"

// OutcomeStatus classifies how a stage ended.
type OutcomeStatus string

const (
	OutcomeRan        OutcomeStatus = "ran"
	OutcomeSkipped    OutcomeStatus = "skipped"
	OutcomeSoftFailed OutcomeStatus = "soft-failed"
	OutcomeHardFailed OutcomeStatus = "hard-failed"
)

// StageOutcome records what happened to one stage of a run.
type StageOutcome struct {
	Stage    string
	Status   OutcomeStatus
	Reason   string
	Err      error
	Duration time.Duration
}
