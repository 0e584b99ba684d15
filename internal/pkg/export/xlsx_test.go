package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	content, err := WriteXLSX([]Sheet{
		{
			Name:    "Employees",
			Title:   "Monthly attendance July 2025",
			Headers: []string{"Employee ID", "Name", "Days Present"},
			Rows: [][]any{
				{int64(101), "Asha Rao", 21},
				{int64(102), "Vikram Singh", 18},
			},
			Widths: []float64{14, 28, 0},
		},
		{
			Name:    "Daily",
			Headers: []string{"Day", "Present"},
			Rows:    [][]any{{1, 2}, {2, 1}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Employees", "Daily"}, f.GetSheetList())

	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Monthly attendance July 2025", rows[0][0])
	assert.Equal(t, []string{"Employee ID", "Name", "Days Present"}, rows[2])
	assert.Equal(t, []string{"101", "Asha Rao", "21"}, rows[3])

	daily, err := f.GetRows("Daily")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Day", "Present"}, {"1", "2"}, {"2", "1"}}, daily)
}

func TestWriteXLSX_NoSheets(t *testing.T) {
	_, err := WriteXLSX(nil)
	assert.Error(t, err)
}
