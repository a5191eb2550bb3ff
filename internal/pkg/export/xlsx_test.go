package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf,
		Table{
			Sheet:   "Pay Slips",
			Headers: []string{"Staff", "Gross", "Net"},
			Rows: [][]any{
				{"Kim", int64(2500000), int64(2409250)},
				{"Lee", int64(1800000), int64(1796007)},
			},
		},
		Table{
			Sheet:   "Summary",
			Headers: []string{"Count"},
			Rows:    [][]any{{2}},
		},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Pay Slips", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Pay Slips")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Staff", "Gross", "Net"}, rows[0])
	assert.Equal(t, []string{"Kim", "2500000", "2409250"}, rows[1])
	assert.Equal(t, []string{"Lee", "1800000", "1796007"}, rows[2])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Count"}, {"2"}}, summary)
}

func TestWriteXLSX_NoTables(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteXLSX(&buf))
	assert.Zero(t, buf.Len())
}
