package main

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pkordes/tripjournal/internal/export"
	"github.com/pkordes/tripjournal/internal/fixtures"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExport_memoryCSVToStdout(t *testing.T) {
	out, err := run(t, "export", "--backend", "memory", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, export.Columns, records[0])
	assert.Len(t, records, 1+len(fixtures.Expenses()))
}

func TestExport_memoryXLSXToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.xlsx")

	out, err := run(t, "export", "--backend", "memory", "--format", "xlsx", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 14 rows")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 15)
}

func TestExport_rejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "export", "--backend", "memory", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown export format")
}

func TestMigrate_requiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Chdir(t.TempDir())

	_, err := run(t, "migrate", "status")
	assert.ErrorContains(t, err, "no database")
}
