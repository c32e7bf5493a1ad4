package analysis

import (
	"testing"
	"time"

	"symptom-tracker/internal/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubMonths_ClampsToMonthEnd(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, d(2024, 2, 29), SubMonths(d(2024, 3, 31), 1))
	assert.Equal(t, d(2023, 2, 28), SubMonths(d(2023, 3, 31), 1))
	assert.Equal(t, d(2023, 11, 29), SubMonths(d(2024, 2, 29), 3))
	assert.Equal(t, d(2023, 12, 15), SubMonths(d(2024, 1, 15), 1))
}

func TestResolvePeriod(t *testing.T) {
	today := time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC)

	p, err := ResolvePeriod(PeriodOneMonth, "", "", today)
	require.NoError(t, err)
	assert.Equal(t, stats.Period{Start: "2024-02-29", End: "2024-03-31"}, p)

	p, err = ResolvePeriod(PeriodThreeMonths, "", "", today)
	require.NoError(t, err)
	assert.Equal(t, stats.Period{Start: "2023-12-31", End: "2024-03-31"}, p)

	p, err = ResolvePeriod("", "", "", today)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", p.Start)

	p, err = ResolvePeriod(PeriodCustom, "2024-01-01", "2024-01-31", today)
	require.NoError(t, err)
	assert.Equal(t, 31, p.TotalDays())

	_, err = ResolvePeriod(PeriodCustom, "2024-01-01", "", today)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ResolvePeriod(PeriodCustom, "2024-02-01", "2024-01-01", today)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ResolvePeriod("6months", "", "", today)
	require.ErrorIs(t, err, ErrInvalidInput)
}
