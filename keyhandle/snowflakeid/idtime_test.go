package snowflakeid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitID(t *testing.T) {
	tests := []struct {
		name          string
		id            uint64
		wantMS        uint64
		wantWorkerSeq uint32
	}{
		{"all bits set", 1<<64 - 1, 1<<40 - 1, 0xffffff},
		{"one of each", 1<<24 | 1<<8 | 1, 1, 257},
		{"zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, workerSeq := SplitID(tt.id)
			assert.Equal(t, tt.wantMS, ms)
			assert.Equal(t, tt.wantWorkerSeq, workerSeq)
		})
	}
}

func TestIDTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id := uint64(1500)<<TimeShift | 0xabcd
	assert.Equal(t, start.Add(1500*time.Millisecond), IDTime(id, start))
}
