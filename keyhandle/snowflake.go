package keyhandle

import (
	"errors"
	"fmt"
	"time"

	"github.com/forestrie/go-keycurves/keyhandle/snowflakeid"
)

// Snowflake issues time ordered handles that are unique across every
// generator configured with a distinct worker id.
type Snowflake struct {
	state *snowflakeid.IDState
}

func NewSnowflake(cfg snowflakeid.Config) (*Snowflake, error) {
	state, err := snowflakeid.NewIDState(cfg)
	if err != nil {
		return nil, err
	}
	return &Snowflake{state: state}, nil
}

// NextHandle backs off for a millisecond while the id generator reports
// overload. Any other generator error is unrecoverable and panics.
func (s *Snowflake) NextHandle() KeyHandle {
	for {
		id, err := s.state.NextID()
		if err == nil {
			return KeyHandle(id)
		}
		if !errors.Is(err, snowflakeid.ErrOverloaded) {
			panic(fmt.Errorf("keyhandle: snowflake generator failed: %w", err))
		}
		time.Sleep(time.Millisecond)
	}
}

// IssuedAt recovers the time a handle from this generator was minted.
func (s *Snowflake) IssuedAt(h KeyHandle) time.Time {
	return snowflakeid.IDTime(uint64(h), s.state.EpochStart())
}
