package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVTypesCells(t *testing.T) {
	data := []byte("Defect Type,Count,Critical,Noted On\nscratch,12,true,2026-01-15\ndent,3.5,false,\n")
	rows, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "scratch", rows[0]["defect_type"])
	assert.Equal(t, 12.0, rows[0]["count"])
	assert.Equal(t, true, rows[0]["critical"])
	// dates stay strings; the table adapter infers them
	assert.Equal(t, "2026-01-15", rows[0]["noted_on"])
	assert.Nil(t, rows[1]["noted_on"])
	assert.Equal(t, 3.5, rows[1]["count"])
}

func TestParseCSVSkipsMalformedRows(t *testing.T) {
	data := []byte("a,b\n1,2\n\"broken\n3,4\n")
	rows, err := ParseCSV(data)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Len(t, row, 2)
	}
}

func TestParseCSVNoHeader(t *testing.T) {
	_, err := ParseCSV(nil)
	assert.Error(t, err)
}

func TestParseJSONRowsBareArray(t *testing.T) {
	rows, err := ParseJSONRows([]byte(`[{"x": 1}, {"x": 2}]`))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1.0, rows[0]["x"])
}

func TestParseJSONRowsWrapped(t *testing.T) {
	rows, err := ParseJSONRows([]byte(`{"data": [{"y": "a"}]}`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0]["y"])
}

func TestParseJSONRowsRejectsScalar(t *testing.T) {
	_, err := ParseJSONRows([]byte(`42`))
	assert.Error(t, err)
}
