// Package pipeline sequences the aircast stages for one job. Each stage
// declares a skip guard over the shared job state, so the mode-by-stage
// conditional matrix lives in one table instead of scattered checks. Stage
// failures are absorbed as outcomes: soft failures continue the run, a hard
// failure skips the stages that depend on the missing asset while publishing
// whatever was produced.
package pipeline
