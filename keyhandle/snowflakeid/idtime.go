package snowflakeid

import "time"

// IDTime returns the time an id was generated at, relative to epochStart.
func IDTime(id uint64, epochStart time.Time) time.Time {
	ms, _ := SplitID(id)
	return epochStart.Add(time.Duration(ms) * time.Millisecond)
}

// SplitID separates the milliseconds since the epoch from the worker and
// sequence bits. The second result is always below 1<<24.
func SplitID(id uint64) (ms uint64, workerSeq uint32) {
	return id >> TimeShift, uint32(id &^ TimeMask)
}
