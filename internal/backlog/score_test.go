package backlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestEfficiency(t *testing.T) {
	tests := []struct {
		name   string
		rating *int
		hours  *float64
		want   *float64
	}{
		{name: "witcher", rating: intPtr(92), hours: floatPtr(50), want: floatPtr(1.84)},
		{name: "short game", rating: intPtr(90), hours: floatPtr(10), want: floatPtr(9.0)},
		{name: "long game half rounds up", rating: intPtr(85), hours: floatPtr(40), want: floatPtr(2.13)},
		{name: "fractional hours", rating: intPtr(80), hours: floatPtr(12.5), want: floatPtr(6.4)},
		{name: "zero rating", rating: intPtr(0), hours: floatPtr(10), want: floatPtr(0)},
		{name: "zero hours", rating: intPtr(90), hours: floatPtr(0), want: nil},
		{name: "negative hours", rating: intPtr(90), hours: floatPtr(-1), want: nil},
		{name: "no hours", rating: intPtr(90), hours: nil, want: nil},
		{name: "no rating", rating: nil, hours: floatPtr(10), want: nil},
		{name: "neither", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Efficiency(tt.rating, tt.hours)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestShortHighlyRatedRanksAboveLong(t *testing.T) {
	short := Efficiency(intPtr(90), floatPtr(10))
	long := Efficiency(intPtr(85), floatPtr(40))
	require.NotNil(t, short)
	require.NotNil(t, long)
	assert.Greater(t, *short, *long)
}

func TestEfficiencyPresenceInvariant(t *testing.T) {
	ratings := []*int{nil, intPtr(0), intPtr(50), intPtr(100)}
	hours := []*float64{nil, floatPtr(0), floatPtr(0.1), floatPtr(33.3)}

	for _, r := range ratings {
		for _, h := range hours {
			want := r != nil && h != nil && *h > 0
			assert.Equal(t, want, Efficiency(r, h) != nil)
		}
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.84, RoundTo(92.0/50.0, 2))
	assert.Equal(t, 13.3, RoundTo(13.333, 1))
	assert.Equal(t, 3.0, RoundTo(2.5, 0))
}

func TestRoundRating(t *testing.T) {
	assert.Nil(t, RoundRating(nil))
	assert.Equal(t, 92, *RoundRating(floatPtr(92.4)))
	assert.Equal(t, 93, *RoundRating(floatPtr(92.5)))
	assert.Equal(t, 0, *RoundRating(floatPtr(0)))
}
