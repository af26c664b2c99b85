package round

import (
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_NumericStatusAndEpochMillis(t *testing.T) {
	st, err := Decode([]byte(`{"status":3,"payout":1.75,"startTime":1700000000000}`))
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, st.Status)
	assert.InDelta(t, 1.75, st.Payout, 1e-9)
	assert.Equal(t, int64(1700000000000), st.StartTime.UnixMilli())
}

func TestDecode_NamedStatusAndRFC3339(t *testing.T) {
	st, err := Decode([]byte(`{"status":"starting","payout":1,"startTime":"2026-10-18T12:00:05Z"}`))
	require.NoError(t, err)

	assert.Equal(t, StatusStarting, st.Status)
	assert.True(t, st.StartTime.Equal(time.Date(2026, 10, 18, 12, 0, 5, 0, time.UTC)))
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		target  error
	}{
		{"status zero", `{"status":0,"payout":1}`, ErrUnknownStatus},
		{"status out of range", `{"status":9,"payout":1}`, ErrUnknownStatus},
		{"status bad name", `{"status":"crashed","payout":1}`, ErrUnknownStatus},
		{"payout below one", `{"status":3,"payout":0.5}`, ErrInvalidPayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestValidate_NonFinitePayout(t *testing.T) {
	for _, p := range []float64{math.NaN(), math.Inf(1)} {
		err := State{Status: StatusInProgress, Payout: p}.Validate()
		assert.ErrorIs(t, err, ErrInvalidPayout)
	}
}

func TestState_MarshalRoundTripKeepsMillis(t *testing.T) {
	in := State{Status: StatusOver, Payout: 2.5, StartTime: time.UnixMilli(1234567)}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":4,"payout":2.5,"startTime":1234567}`, string(data))
}

func TestStatus_Resets(t *testing.T) {
	assert.False(t, StatusInProgress.Resets())
	assert.False(t, StatusOver.Resets())
	for _, s := range []Status{StatusNotStarted, StatusStarting, StatusBlocking, StatusRefunded} {
		assert.True(t, s.Resets(), s.String())
	}
}

func TestStore_LatestWins(t *testing.T) {
	var s Store
	_, ok := s.Load()
	assert.False(t, ok)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(p float64) {
			defer wg.Done()
			s.Set(State{Status: StatusInProgress, Payout: p})
		}(float64(i))
	}
	wg.Wait()

	st, ok := s.Load()
	require.True(t, ok)
	assert.GreaterOrEqual(t, st.Payout, 1.0)

	s.Set(State{Status: StatusOver, Payout: 3})
	st, _ = s.Load()
	assert.Equal(t, StatusOver, st.Status)

	s.Clear()
	_, ok = s.Load()
	assert.False(t, ok)
}
