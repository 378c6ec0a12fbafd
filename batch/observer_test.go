package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &m), raw)
		lines = append(lines, m)
	}
	return lines
}

func TestLogObserverJobFinishedLevels(t *testing.T) {
	cases := []struct {
		outcome Outcome
		err     error
		level   string
	}{
		{OutcomeCompleted, nil, "info"},
		{OutcomeFailed, errors.New("encoder exited"), "error"},
		{OutcomeCanceled, nil, "warn"},
	}
	for _, c := range cases {
		t.Run(c.outcome.String(), func(t *testing.T) {
			var buf bytes.Buffer
			obs := NewLogObserver(zerolog.New(&buf))
			obs.JobFinished(JobResult{
				JobEvent: JobEvent{Index: 1, Total: 3, Path: "out/a.mp4"},
				Outcome:  c.outcome,
				Err:      c.err,
				Frames:   12,
			})

			lines := logLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, c.level, lines[0]["level"])
			assert.Equal(t, "out/a.mp4", lines[0]["path"])
			assert.Equal(t, "[2/3] "+c.outcome.String(), lines[0]["message"])
			if c.err != nil {
				assert.Equal(t, c.err.Error(), lines[0]["error"])
			} else {
				assert.NotContains(t, lines[0], "error")
			}
		})
	}
}

func TestLogObserverReportsReporterFailures(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(zerolog.New(&buf))
	obs.JobFinished(JobResult{
		JobEvent:       JobEvent{Total: 1, Path: "out/b.mp4"},
		Outcome:        OutcomeCompleted,
		ReportFailures: 2,
	})

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.EqualValues(t, 2, lines[0]["failures"])
	assert.Equal(t, "info", lines[1]["level"])
}
