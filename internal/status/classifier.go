package status

import "time"

type Stage string

const (
	StageScheduled Stage = "Scheduled"
	StageBoarding  Stage = "Boarding"
	StageDeparted  Stage = "Departed"
	StageLanded    Stage = "Landed"
)

// Classify derives the lifecycle stage of a flight from its departure time
// relative to now. The stage is never persisted; callers recompute it on
// every read.
//
// Boundaries are closed on the Boarding/Departed side: exactly 30 minutes
// out is Boarding, exactly at departure is Boarding, exactly 60 minutes
// past departure is Departed.
func Classify(departure, now time.Time) Stage {
	delta := departure.Sub(now).Minutes()

	switch {
	case delta > 30:
		return StageScheduled
	case delta >= 0:
		return StageBoarding
	case delta >= -60:
		return StageDeparted
	default:
		return StageLanded
	}
}
