package snowflakeid

type Config struct {
	// CommitmentEpoch selects the reference zero time with respect to unix
	// time. Each epoch is ~34 years and the current epoch is 1. It is a uint8
	// so that CommitmentEpoch * 2^TimeBits can not overflow an int64.
	CommitmentEpoch uint8

	// WorkerCIDR, when set, selects the worker id bits from HostIP. Two hosts
	// in the same network then can't generate the same id.
	WorkerCIDR string

	// HostIP is the private address of the host. Only read when WorkerCIDR is
	// set.
	HostIP string

	// WorkerID is used when WorkerCIDR is empty. It must fit in WorkerBits.
	WorkerID uint16

	// WorkerBits is the width of WorkerID when WorkerCIDR is empty. Zero
	// selects DefaultWorkerBits.
	WorkerBits uint8

	// AllowSpins should typically be set to MaxSpins. Zero is supported and
	// means the generator errors on the first lost CAS race.
	AllowSpins uint8
}

const (
	// TimeBits is the number of bits reserved for the millisecond timestamp.
	// This gives an epoch of ~34 years.
	TimeBits  = 40
	TimeShift = 64 - 40

	TimeMask uint64 = ((1 << TimeBits) - 1) << TimeShift

	// DefaultWorkerBits leaves 16 bits for the sequence counter.
	DefaultWorkerBits = 8
)
