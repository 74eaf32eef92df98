package patas_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xorz/patas"
)

func roundTrip(t *testing.T, values []float64) []float64 {
	t.Helper()

	enc := patas.New()
	enc.EncodeSlice(values)
	words, _ := enc.Close()

	dec := patas.NewDecoder(words)
	got := make([]float64, 0, len(values))
	for {
		v, err := dec.Next()
		if err != nil {
			break
		}
		got = append(got, v)
	}

	return got
}

func TestEncoder_SingleValue(t *testing.T) {
	got := roundTrip(t, []float64{42.0})
	require.Equal(t, []float64{42.0}, got)
}

func TestEncoder_UnchangedValues(t *testing.T) {
	values := []float64{100.0, 100.0, 100.0, 100.0}
	got := roundTrip(t, values)
	require.Equal(t, values, got)
}

func TestEncoder_MixedMagnitudes(t *testing.T) {
	values := []float64{1.0, 16.42, 1.0, 0.00123, 24435.0, 0.0, 420.69}
	got := roundTrip(t, values)
	require.Equal(t, values, got)
}

func TestEncoder_RepeatingCycleUsesRingReference(t *testing.T) {
	cycle := []float64{10.5, 20.25, 30.125, 40.0625, 50.03125}
	values := make([]float64, 0, len(cycle)*40)
	for i := 0; i < 40; i++ {
		values = append(values, cycle...)
	}

	got := roundTrip(t, values)
	require.Equal(t, values, got)
}

func TestEncoder_LongStreamWrapsRing(t *testing.T) {
	values := make([]float64, 300)
	for i := range values {
		values[i] = float64(i) * 1.00001
	}

	got := roundTrip(t, values)
	require.Equal(t, values, got)
}

func TestEncoder_EmptyStream(t *testing.T) {
	got := roundTrip(t, nil)
	require.Empty(t, got)
}
