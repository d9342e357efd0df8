package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{-6.2, 106.8},
		{89.9, 179.9},
		{-90, -180},
	}
	for _, p := range points {
		d := DistanceKm(ptr(p[0]), ptr(p[1]), ptr(p[0]), ptr(p[1]))
		require.InDelta(t, 0, d, 1e-9)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// 0.09 degrees of latitude at the equator is roughly 10 km.
	d := DistanceKm(ptr(0), ptr(0), ptr(0.09), ptr(0))
	require.InDelta(t, 10.0, d, 0.05)

	// Jakarta to Bandung, roughly 120 km.
	d = DistanceKm(ptr(-6.2088), ptr(106.8456), ptr(-6.9175), ptr(107.6191))
	require.InDelta(t, 115, d, 10)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := [2]float64{-6.2, 106.8}
	b := [2]float64{35.68, 139.69}

	ab := DistanceKm(ptr(a[0]), ptr(a[1]), ptr(b[0]), ptr(b[1]))
	ba := DistanceKm(ptr(b[0]), ptr(b[1]), ptr(a[0]), ptr(a[1]))
	require.InDelta(t, ab, ba, 1e-9)
}

func TestDistanceKm_TriangleInequality(t *testing.T) {
	pts := [][2]float64{
		{0, 0},
		{10, 10},
		{-30, 60},
		{48.85, 2.35},
	}
	for i := range pts {
		for j := range pts {
			for k := range pts {
				ab := DistanceKm(ptr(pts[i][0]), ptr(pts[i][1]), ptr(pts[j][0]), ptr(pts[j][1]))
				bc := DistanceKm(ptr(pts[j][0]), ptr(pts[j][1]), ptr(pts[k][0]), ptr(pts[k][1]))
				ac := DistanceKm(ptr(pts[i][0]), ptr(pts[i][1]), ptr(pts[k][0]), ptr(pts[k][1]))
				require.LessOrEqual(t, ac, ab+bc+1e-6)
			}
		}
	}
}

func TestDistanceKm_MissingCoordinates(t *testing.T) {
	require.True(t, math.IsInf(DistanceKm(nil, ptr(0), ptr(0), ptr(0)), 1))
	require.True(t, math.IsInf(DistanceKm(ptr(0), nil, ptr(0), ptr(0)), 1))
	require.True(t, math.IsInf(DistanceKm(ptr(0), ptr(0), nil, ptr(0)), 1))
	require.True(t, math.IsInf(DistanceKm(ptr(0), ptr(0), ptr(0), nil), 1))
}

func TestValidateCoordinates(t *testing.T) {
	require.True(t, ValidateCoordinates(0, 0))
	require.True(t, ValidateCoordinates(-90, -180))
	require.True(t, ValidateCoordinates(90, 180))

	require.False(t, ValidateCoordinates(90.1, 0))
	require.False(t, ValidateCoordinates(-90.1, 0))
	require.False(t, ValidateCoordinates(0, 180.1))
	require.False(t, ValidateCoordinates(0, -180.1))
	require.False(t, ValidateCoordinates(math.NaN(), 0))
}

func TestParseCoordinates(t *testing.T) {
	lat, lon, ok := ParseCoordinates("-6.2088", "106.8456")
	require.True(t, ok)
	require.InDelta(t, -6.2088, lat, 1e-9)
	require.InDelta(t, 106.8456, lon, 1e-9)

	_, _, ok = ParseCoordinates("not-a-number", "0")
	require.False(t, ok)
	_, _, ok = ParseCoordinates("0", "")
	require.False(t, ok)
	_, _, ok = ParseCoordinates("91", "0")
	require.False(t, ok)
}

func TestRoundDistance(t *testing.T) {
	require.Equal(t, 9.97, RoundDistance(9.9671))
	require.Equal(t, 0.0, RoundDistance(0.0049))
	require.Equal(t, 10.0, RoundDistance(10.0))
}
