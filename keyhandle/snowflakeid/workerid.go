package snowflakeid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"net"
)

var (
	ErrBadWorkerCIDR = errors.New("provided worker CIDR is invalid")
	ErrBadHostIP     = errors.New("host ip invalid")
	ErrMaskRange     = errors.New("the specified CIDR mask allows for to many or too few private ip addresses")
	ErrWorkerIDRange = errors.New("the worker id does not fit in the configured worker bits")
)

const (
	// MaxWorkerBits allowed per worker id or sequence counter
	MaxWorkerBits = 24
	// MinWorkerBits allowed per worker id or sequence counter
	MinWorkerBits = 8
)

// workerIDSequenceBits returns the worker id and the number of bits permitted
// for the sequence counter.
func workerIDSequenceBits(cfg Config) (uint16, int, error) {
	if cfg.WorkerCIDR == "" {
		return explicitWorkerID(cfg)
	}

	mask, err := parseMask(cfg.WorkerCIDR)
	if err != nil {
		return 0, 0, err
	}
	ip, err := parseIP(cfg.HostIP)
	if err != nil {
		return 0, 0, err
	}

	workerIDBits := bits.Len16(binary.BigEndian.Uint16(mask[2:]))

	masked := ip.Mask(mask)
	id := binary.BigEndian.Uint16(masked[2:])

	return id, MaxWorkerBits - workerIDBits, nil
}

func explicitWorkerID(cfg Config) (uint16, int, error) {
	workerBits := int(cfg.WorkerBits)
	if workerBits == 0 {
		workerBits = DefaultWorkerBits
	}
	if workerBits > MaxWorkerBits-MinWorkerBits {
		return 0, 0, fmt.Errorf("%d worker bits leaves too few sequence bits: %w", workerBits, ErrWorkerBitRange)
	}
	if bits.Len16(cfg.WorkerID) > workerBits {
		return 0, 0, fmt.Errorf("worker id %d, bits %d: %w", cfg.WorkerID, workerBits, ErrWorkerIDRange)
	}
	return cfg.WorkerID, MaxWorkerBits - workerBits, nil
}

// parseMask parses the CIDR which configures how many bits of the host
// address make up the worker id. The returned mask is inverted.
func parseMask(workerCIDR string) (net.IPMask, error) {
	_, ipNet, err := net.ParseCIDR(workerCIDR)
	if err != nil {
		return nil, fmt.Errorf("%s - issue parsing CIDR: %v: %w", workerCIDR, err, ErrBadWorkerCIDR)
	}
	if len(ipNet.Mask) != net.IPv4len {
		return nil, fmt.Errorf("%s - only ipv4 masks are supported: %w", workerCIDR, ErrBadWorkerCIDR)
	}

	mask := invertIPMask(ipNet.Mask)
	if mask[0] != 0 || mask[1] != 0 {
		return nil, fmt.Errorf("%s - allows to many ips: %w", workerCIDR, ErrMaskRange)
	}
	if mask[2] == 0 && mask[3] < 255 {
		return nil, fmt.Errorf("%s - allows to few ips: %w", workerCIDR, ErrMaskRange)
	}
	return mask, nil
}

// invertIPMask inverts the mask in place and also returns it
func invertIPMask(mask net.IPMask) net.IPMask {
	for i := range mask {
		mask[i] = ^mask[i]
	}
	return mask
}

// parseIP requires the host address is allocated from a private range.
func parseIP(hostIP string) (net.IP, error) {
	ip := net.ParseIP(hostIP)
	if ip == nil {
		return nil, fmt.Errorf("%s - issue parsing IP: %w", hostIP, ErrBadHostIP)
	}
	if !ip.IsPrivate() {
		return nil, fmt.Errorf("%s - is not a private ip: %w", hostIP, ErrBadHostIP)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%s - only ipv4 is supported: %w", hostIP, ErrBadHostIP)
	}
	return ip4, nil
}
