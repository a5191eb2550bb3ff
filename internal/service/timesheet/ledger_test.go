package timesheet

import (
	"testing"

	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) timesheet.Clock {
	t.Helper()
	c, err := timesheet.ParseClock(s)
	require.NoError(t, err)
	return c
}

func TestWorkedMinutes(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		brk        int
		want       int
		wantErr    bool
	}{
		{name: "full day with lunch", start: "09:00", end: "18:00", brk: 60, want: 480},
		{name: "no break", start: "14:00", end: "15:30", brk: 0, want: 90},
		{name: "one minute", start: "23:58", end: "23:59", brk: 0, want: 1},
		{name: "end equals start", start: "10:00", end: "10:00", wantErr: true},
		{name: "overnight", start: "22:00", end: "02:00", wantErr: true},
		{name: "break equals span", start: "10:00", end: "11:00", brk: 60, wantErr: true},
		{name: "negative break", start: "10:00", end: "11:00", brk: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := timesheet.WorkShift{Start: clock(t, tt.start), End: clock(t, tt.end), BreakMinutes: tt.brk}
			got, err := WorkedMinutes(shift)
			if tt.wantErr {
				assert.ErrorIs(t, err, timesheet.ErrInvalidShift)
				var shiftErr *timesheet.ShiftError
				assert.ErrorAs(t, err, &shiftErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkedMinutes_OutOfRangeClock(t *testing.T) {
	_, err := WorkedMinutes(timesheet.WorkShift{Start: timesheet.Clock(-1), End: timesheet.Clock(30)})
	assert.ErrorIs(t, err, timesheet.ErrInvalidShift)

	_, err = WorkedMinutes(timesheet.WorkShift{Start: timesheet.Clock(600), End: timesheet.Clock(24 * 60)})
	assert.ErrorIs(t, err, timesheet.ErrInvalidShift)
}

func TestPayForMinutes(t *testing.T) {
	assert.Equal(t, int64(30000), PayForMinutes(90, 20000))
	assert.Equal(t, int64(333), PayForMinutes(1, 20000))
	assert.Equal(t, int64(0), PayForMinutes(0, 20000))
	assert.Equal(t, int64(96000), PayForMinutes(480, 12000))
}
