package snowflakeid

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDState_initState(t *testing.T) {
	type args struct {
		workerID uint16
		seqBits  int
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{"sequence bits maxed", args{seqBits: 16}, false},
		{"sequence bits greater than worker bits", args{seqBits: 25}, true},
		{"sequence bits greater than max sequence bits", args{seqBits: 17}, true},
		{"sequence bits to small", args{seqBits: 7}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &IDState{}
			if err := s.initState(tt.args.workerID, tt.args.seqBits); (err != nil) != tt.wantErr {
				t.Errorf("IDState.initState() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNextID_MonotonicAndNonZero(t *testing.T) {
	s, err := NewIDState(Config{CommitmentEpoch: 1, WorkerID: 3, AllowSpins: MaxSpins})
	require.NoError(t, err)

	var last uint64
	for i := 0; i < 10000; i++ {
		id, err := s.NextID()
		require.NoError(t, err)
		require.NotZero(t, id)
		require.Greater(t, id, last)
		last = id
	}
}

func TestNextID_WorkerIDIsEncoded(t *testing.T) {
	s, err := NewIDState(Config{CommitmentEpoch: 1, WorkerID: 0xab, WorkerBits: 8, AllowSpins: MaxSpins})
	require.NoError(t, err)

	id, err := s.NextID()
	require.NoError(t, err)

	_, workerSeq := SplitID(id)
	assert.Equal(t, uint32(0xab), workerSeq>>16)
}

func TestNextID_ConcurrentUnique(t *testing.T) {
	s, err := NewIDState(Config{CommitmentEpoch: 1, AllowSpins: MaxSpins})
	require.NoError(t, err)

	const workers = 8
	const perWorker = 2000

	results := make([][]uint64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for len(results[w]) < perWorker {
				id, err := s.NextID()
				if errors.Is(err, ErrOverloaded) {
					time.Sleep(time.Millisecond)
					continue
				}
				if err != nil {
					t.Errorf("NextID: %v", err)
					return
				}
				results[w] = append(results[w], id)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uint64]struct{}, workers*perWorker)
	for _, ids := range results {
		for _, id := range ids {
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %016x", id)
			seen[id] = struct{}{}
		}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestIDTime_CloseToNow(t *testing.T) {
	s, err := NewIDState(Config{CommitmentEpoch: 1, AllowSpins: MaxSpins})
	require.NoError(t, err)

	id, err := s.NextID()
	require.NoError(t, err)

	got := IDTime(id, s.EpochStart())
	assert.WithinDuration(t, time.Now(), got, 2*time.Second)
}
