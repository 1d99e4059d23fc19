package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRupees(t *testing.T) {
	assert.Equal(t, Paise(22550), FromRupees(225.50))
	assert.Equal(t, Paise(50001), FromRupees(500.01))
	assert.Equal(t, Paise(0), FromRupees(0))
}

func TestRupees_Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   Paise
		want int64
	}{
		{"whole amount", 45000, 450},
		{"half rounds up", 2250, 23},
		{"just below half", 2249, 22},
		{"just above half", 2251, 23},
		{"tiny amount", 49, 0},
		{"fifty paise", 50, 1},
		{"negative half rounds toward zero", -50, 0},
		{"negative amount", -151, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Rupees())
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Paise(22550))
	require.NoError(t, err)
	assert.Equal(t, "225.5", string(b))

	b, err = json.Marshal(Paise(40000))
	require.NoError(t, err)
	assert.Equal(t, "400", string(b))

	var p Paise
	require.NoError(t, json.Unmarshal([]byte("225.5"), &p))
	assert.Equal(t, Paise(22550), p)
}
