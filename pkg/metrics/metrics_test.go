package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"skipmark/pkg/domain"
	"skipmark/pkg/metrics"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// hasFamily reports whether a gathered metric family name starts with prefix;
// exporters append unit and type suffixes such as _total or _seconds.
func hasFamily(t *testing.T, r *metrics.Recorder, prefix string) bool {
	t.Helper()

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	for _, f := range families {
		if strings.HasPrefix(f.GetName(), prefix) {
			return true
		}
	}

	return false
}

func TestRecorder_Record(t *testing.T) {
	r, err := metrics.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })

	r.Record(context.Background(), &domain.Report{
		Destination:   domain.Destination{Mode: domain.OutputStream},
		ReferenceKeys: 2,
		Lines:         3,
		Marked:        1,
		Passed:        2,
		Duration:      20 * time.Millisecond,
	})

	require.True(t, hasFamily(t, r, "skipmark_runs"))
	require.True(t, hasFamily(t, r, "skipmark_lines"))
	require.True(t, hasFamily(t, r, "skipmark_run_duration"))
	require.True(t, hasFamily(t, r, "skipmark_reference_keys"))
}

func TestRecorder_RecordFailure(t *testing.T) {
	r, err := metrics.New()
	require.NoError(t, err)

	r.Record(context.Background(), nil)
	require.True(t, hasFamily(t, r, "skipmark_runs"))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r, err := metrics.New()
	require.NoError(t, err)
	r.Record(context.Background(), &domain.Report{Lines: 1, Marked: 1})

	path := filepath.Join(t.TempDir(), "skipmark.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "skipmark_lines")
	require.Contains(t, string(data), `result="marked"`)
}

func TestRecorder_WriteTextfile_BadDir(t *testing.T) {
	r, err := metrics.New()
	require.NoError(t, err)

	require.Error(t, r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "skipmark.prom")))
}
