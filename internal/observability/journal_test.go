package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_Record(t *testing.T) {
	var buf bytes.Buffer
	j := NewJournal(&buf)

	j.Record(JournalEvent{
		Type:     "figure",
		Session:  "abc",
		Action:   "render",
		Status:   "success",
		Metadata: map[string]any{"figure": "sine.yaml"},
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "figure", entry["type"])
	assert.Equal(t, "abc", entry["session"])
	assert.Equal(t, "render", entry["action"])
	assert.Equal(t, "success", entry["status"])
	assert.Contains(t, entry, "time")
	assert.Equal(t, map[string]any{"figure": "sine.yaml"}, entry["metadata"])
}

func TestOpenJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	j, err := OpenJournal(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		journalMu.Lock()
		journalInst = nil
		journalMu.Unlock()
	})

	assert.Same(t, j, GetJournal())

	RecordRender("s1", "plot.yaml", nil, map[string]any{"series": 2})
	RecordReplot("s1", "data.txt", errors.New("file vanished"))
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var render, replot map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &render))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &replot))

	assert.Equal(t, "success", render["status"])
	assert.Equal(t, "plot.yaml", render["metadata"].(map[string]any)["figure"])
	assert.Equal(t, float64(2), render["metadata"].(map[string]any)["series"])

	assert.Equal(t, "failure", replot["status"])
	assert.Equal(t, "file vanished", replot["metadata"].(map[string]any)["error"])
}

func TestGetJournal_DiscardsByDefault(t *testing.T) {
	journalMu.Lock()
	journalInst = nil
	journalMu.Unlock()

	assert.NotPanics(t, func() {
		RecordRender("", "x.yaml", nil, nil)
	})
}
