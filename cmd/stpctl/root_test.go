package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stpflow/internal/services"
	"stpflow/pkg/contracts/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMonthsCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := run(t, "months")
		require.NoError(t, err)
		assert.Contains(t, out, "2024-07  July 2024\n")
		assert.Contains(t, out, "2024-10  October 2024\n")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "months", "--json")
		require.NoError(t, err)

		var months []domain.MonthOption
		require.NoError(t, json.Unmarshal([]byte(out), &months))
		require.Len(t, months, 4)
		assert.Equal(t, "2024-09", months[2].MonthKey)
	})
}

func TestBundleCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		check   func(t *testing.T, out string)
	}{
		{
			name: "json bundle",
			args: []string{"bundle", "2024-08", "--json"},
			check: func(t *testing.T, out string) {
				var b domain.MonthBundle
				require.NoError(t, json.Unmarshal([]byte(out), &b))
				assert.True(t, b.Found)
				assert.Equal(t, int64(19724), b.KPIs.TotalInflow)
				assert.InDelta(t, -0.5, b.KPIs.InflowChange, 1e-9)
			},
		},
		{
			name: "text bundle",
			args: []string{"bundle", "2024-08"},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "August 2024 (2024-08), 31 days reported, deltas vs 2024-07")
				assert.Contains(t, out, "-0.5%")
				assert.Contains(t, out, "inflow")
			},
		},
		{
			name: "first month has no previous",
			args: []string{"bundle", "2024-07"},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "no previous month")
			},
		},
		{
			name: "unknown month",
			args: []string{"bundle", "2030-01"},
			check: func(t *testing.T, out string) {
				assert.Equal(t, "No readings for January 2030 (2030-01)\n", out)
			},
		},
		{
			name:    "invalid key",
			args:    []string{"bundle", "2024-7"},
			wantErr: services.ErrInvalidMonthKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestFileSourceFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readings.tsv")
	content := "Date\tTankers\tTanker Volume (m3)\tDirect Sewage (m3)\tTotal Inlet (m3)\tTotal Treated (m3)\tTotal Output (m3)\n" +
		"1/3/2025\t4\t80\t120\t200\t190\t180\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := run(t, "months", "--source", "file", "--path", path)
	require.NoError(t, err)
	assert.Equal(t, "2025-03  March 2025\n", out)

	_, err = run(t, "months", "--source", "file")
	assert.Error(t, err, "file source needs a path")

	_, err = run(t, "months", "--capacity", "0")
	assert.Error(t, err)
}
