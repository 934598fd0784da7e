package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendReviewLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "review.log")

	up, err := json.Marshal(ReviewEvent{Action: ActionUpserted, ISBN: "1", Username: "alice", Review: "Great", OccurredAt: "2026-01-01T00:00:00Z"})
	require.NoError(t, err)
	del, err := json.Marshal(ReviewEvent{Action: ActionDeleted, ISBN: "1", Username: "alice", OccurredAt: "2026-01-01T00:01:00Z"})
	require.NoError(t, err)

	require.NoError(t, AppendReviewLog(path, up))
	require.NoError(t, AppendReviewLog(path, del))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[2026-01-01T00:00:00Z] review.upserted | isbn=1 | user="alice" | review="Great"`, lines[0])
	assert.Equal(t, `[2026-01-01T00:01:00Z] review.deleted | isbn=1 | user="alice"`, lines[1])
}

func TestAppendReviewLogRejectsBadPayloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.log")
	assert.Error(t, AppendReviewLog(path, []byte("{")))
	assert.Error(t, AppendReviewLog(path, []byte(`{"action":"review.deleted"}`)))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
