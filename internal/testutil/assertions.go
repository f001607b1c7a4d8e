package testutil

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LogRecords decodes the JSON log lines of a run.
func LogRecords(t *testing.T, result *HarnessResult) []map[string]any {
	t.Helper()

	var records []map[string]any
	sc := bufio.NewScanner(strings.NewReader(result.LogOutput))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), "log line is not JSON: %s", line)
		records = append(records, rec)
	}
	require.NoError(t, sc.Err())
	return records
}

// CountLogs counts log records with message msg whose attributes include
// every key/value pair in attrs.
func CountLogs(t *testing.T, result *HarnessResult, msg string, attrs map[string]string) int {
	t.Helper()

	n := 0
	for _, rec := range LogRecords(t, result) {
		if rec["msg"] != msg {
			continue
		}
		match := true
		for k, v := range attrs {
			if s, _ := rec[k].(string); s != v {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n
}

// AssertAnalyzedTimes checks how often the module at path was read.
func AssertAnalyzedTimes(t *testing.T, result *HarnessResult, path string, want int) {
	t.Helper()
	got := CountLogs(t, result, "Analyze: Reading module.", map[string]string{"path": path})
	assert.Equal(t, want, got, "module %s analyzed %d times, want %d", path, got, want)
}

// AssertNoFile checks that the run left no file at name.
func AssertNoFile(t *testing.T, result *HarnessResult, name string) {
	t.Helper()
	AssertNoFileExists(t, result.Fs, name)
}

// AssertNoFileExists checks that fsys holds no file at name.
func AssertNoFileExists(t *testing.T, fsys afero.Fs, name string) {
	t.Helper()
	exists, err := afero.Exists(fsys, name)
	require.NoError(t, err)
	assert.False(t, exists, "expected no file at %s", name)
}
