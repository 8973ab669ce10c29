package snowflakeid

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	// MaxSpins is the largest number of CAS cycles the generator is expected
	// to be configured with. If it exceeds the configured spins *and* the
	// sequence is exhausted, NextID errors.
	MaxSpins = 100
)

type IDState struct {
	allowSpins int

	workerIDMask uint64
	// maskedWorkerID is the worker id shifted into its bit position
	maskedWorkerID uint64

	seqMask uint64
	seqBits int

	epochStartWallClock      time.Time     // will *not* include the monotonic clock reading
	generatorStart           time.Time     // will include the monotonic clock reading
	generatorStartWallOffset time.Duration // generatorStart - epochStart

	// monotonic holds the timestamp and sequence of the last id, but *not*
	// the worker id. It only ever increases.
	monotonic atomic.Uint64
}

var (
	ErrWorkerBitRange    = errors.New("the bit allocation for worker id and sequence bits overflows what is reserved for our timestamp")
	ErrOverloaded        = errors.New("the id generator is over loaded for its configuration")
	ErrClockError        = errors.New("the reading from system time doesn't make any realistic sense")
	ErrSequenceViolation = errors.New("the generator produced two consecutive values that violate either the monotonic or the uniqueness promises")

	// UnixNanoEpochEndSentinel is a year before time.UnixNano overflows an
	// int64. Clock readings after it are treated as misconfiguration.
	UnixNanoEpochEndSentinel = time.Date(2261, 1, 1, 1, 1, 1, 1, time.UTC)
)

func NewIDState(cfg Config) (*IDState, error) {
	workerID, seqBits, err := workerIDSequenceBits(cfg)
	if err != nil {
		return nil, err
	}

	s := &IDState{allowSpins: int(cfg.AllowSpins)}
	err = s.initTime(cfg.CommitmentEpoch)
	if err != nil {
		return nil, err
	}

	err = s.initState(workerID, seqBits)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func EpochMS(epoch uint8) int64 {
	return int64(epoch) * ((1 << TimeBits) - 1)
}

func EpochTimeUTC(epoch uint8) time.Time {
	return time.UnixMilli(EpochMS(epoch)).UTC()
}

// millisecondMonotonicNow returns a monotonic epoch time sample, anchored to
// the wall clock reading taken when the IDState was initialized.
func (s *IDState) millisecondMonotonicNow() uint64 {
	epochNow := time.Since(s.generatorStart) + s.generatorStartWallOffset
	return uint64(epochNow / time.Millisecond)
}

// NextID returns the next value in a time ordered, unique and monotonic
// series. ErrOverloaded means the configured spins were exhausted under
// contention, the caller should back off for a millisecond and retry. Any
// other error is fatal for the generator.
func (s *IDState) NextID() (uint64, error) {

	// Read/modify/CAS on the monotonic state. If another goroutine gets there
	// first our intermediate result is stale and we go round again, at most
	// allowSpins more times.

	var next uint64

	for i := 0; i <= s.allowSpins; i++ {

		now := s.millisecondMonotonicNow()
		last := s.monotonic.Load()

		lastTime := last >> TimeShift
		lastSeq := last & s.seqMask

		switch {
		case now > lastTime:
			// Time advanced, reset the sequence by shifting zeros into it.
			next = now << TimeShift

		// From here now is equal or behind the time of the last id. Behind is
		// treated the same as equal.
		case lastSeq == s.seqMask:
			// Sequence exhausted. Force the next millisecond. lastTime is used
			// because it is >= now here.
			next = (lastTime + 1) << TimeShift
		default:
			next = last + 1
		}

		if next <= last {
			return 0, fmt.Errorf("%016x:%016x %02x:%02x %d:%d:%w", last, next, lastSeq, s.seqMask, lastTime, now, ErrSequenceViolation)
		}

		if s.monotonic.CompareAndSwap(last, next) {
			break
		}

		next = 0 // start again
	}

	if next == 0 {
		return 0, ErrOverloaded
	}
	return next | s.maskedWorkerID, nil
}

func (s *IDState) EpochStart() time.Time {
	return s.epochStartWallClock
}

func (s *IDState) initTime(epoch uint8) error {

	s.generatorStart = time.Now() // DONT do UTC() here, as that strips the monotonic time sample

	if s.generatorStart.After(UnixNanoEpochEndSentinel) {
		return fmt.Errorf("the clock reading is close to overflowing the limit of an int64: %w", ErrClockError)
	}

	s.epochStartWallClock = EpochTimeUTC(epoch)
	if s.generatorStart.Before(s.epochStartWallClock) {
		return fmt.Errorf("the clock reading %v is before the start of epoch %d: %w", s.generatorStart, epoch, ErrClockError)
	}
	s.generatorStartWallOffset = s.generatorStart.Sub(s.epochStartWallClock)

	return nil
}

func (s *IDState) initState(workerID uint16, seqBits int) error {
	if seqBits > MaxWorkerBits || MaxWorkerBits-seqBits < MinWorkerBits {
		return fmt.Errorf(
			"sequence bit count %d is to large (check your worker config): %w",
			seqBits, ErrWorkerBitRange)
	}
	if seqBits < MinWorkerBits {
		return fmt.Errorf(
			"sequence bit count %d is to small (check your worker config): %w",
			seqBits, ErrWorkerBitRange)
	}

	s.workerIDMask = ((1 << (MaxWorkerBits - seqBits)) - 1) << seqBits
	s.maskedWorkerID = (uint64(workerID) << seqBits) & s.workerIDMask
	s.seqMask = (1 << seqBits) - 1
	s.seqBits = seqBits
	s.monotonic.Store(0)
	return nil
}
