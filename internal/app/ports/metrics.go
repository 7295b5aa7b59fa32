package ports

import "time"

type SimulationMetrics interface {
	RecordTick(elapsed time.Duration)
	RecordMove(result string)
	RecordPickup(evicted bool)
	RecordCommand(accepted bool)
	RecordFailure()
}
