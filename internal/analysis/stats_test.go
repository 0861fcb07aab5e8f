package analysis

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"testing"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var runtimes = []float64{412, 398, 377, 455, 390, 1024, 401, 388, 420, 366}

func TestDescribeMatchesGonum(t *testing.T) {
	s, err := Describe(runtimes)
	require.NoError(t, err)

	require.Equal(t, len(runtimes), s.Count)
	require.InDelta(t, stat.Mean(runtimes, nil), s.Mean, 1e-9)
	require.InDelta(t, stat.StdDev(runtimes, nil), s.Std, 1e-9)
	require.Equal(t, floats.Min(runtimes), s.Min)
	require.Equal(t, floats.Max(runtimes), s.Max)
	// even count: average of the two middle values (398 and 401)
	require.Equal(t, 399.5, s.Median)
}

func TestDescribeMatchesDuckDB(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	values := make([]string, len(runtimes))
	for i, v := range runtimes {
		values[i] = fmt.Sprintf("(%g::DOUBLE)", v)
	}
	query := fmt.Sprintf("SELECT avg(x), median(x), stddev_samp(x), min(x), max(x) FROM (VALUES %s) t(x)", strings.Join(values, ", "))

	var mean, median, std, minV, maxV float64
	require.NoError(t, db.QueryRow(query).Scan(&mean, &median, &std, &minV, &maxV))

	s, err := Describe(runtimes)
	require.NoError(t, err)
	require.InDelta(t, mean, s.Mean, 1e-9)
	require.InDelta(t, median, s.Median, 1e-9)
	require.InDelta(t, std, s.Std, 1e-9)
	require.Equal(t, minV, s.Min)
	require.Equal(t, maxV, s.Max)
}

func TestDescribeEdgeCases(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Describe(nil)
		require.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("only NaN", func(t *testing.T) {
		_, err := Describe([]float64{math.NaN(), math.NaN()})
		require.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("single value has undefined std", func(t *testing.T) {
		s, err := Describe([]float64{42})
		require.NoError(t, err)
		require.Equal(t, 42.0, s.Mean)
		require.Equal(t, 42.0, s.Median)
		require.True(t, math.IsNaN(s.Std))
	})

	t.Run("NaN skipped", func(t *testing.T) {
		s, err := Describe([]float64{1, math.NaN(), 3})
		require.NoError(t, err)
		require.Equal(t, 2, s.Count)
		require.Equal(t, 2.0, s.Mean)
		require.Equal(t, 2.0, s.Median)
	})

	t.Run("infinity kept", func(t *testing.T) {
		s, err := Describe([]float64{0.5, math.Inf(1), 0.7})
		require.NoError(t, err)
		require.True(t, math.IsInf(s.Max, 1))
		require.True(t, math.IsInf(s.Mean, 1))
		require.Equal(t, 0.7, s.Median)
	})

	t.Run("input not reordered", func(t *testing.T) {
		in := []float64{3, 1, 2}
		_, err := Describe(in)
		require.NoError(t, err)
		require.Equal(t, []float64{3, 1, 2}, in)
	})
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	testCases := []struct {
		p        float64
		expected float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tc := range testCases {
		require.InDelta(t, tc.expected, Percentile(sorted, tc.p), 1e-12, "p=%v", tc.p)
	}
	require.True(t, math.IsNaN(Percentile(nil, 0.5)))
	require.Equal(t, 7.0, Percentile([]float64{7}, 0.5))
}
