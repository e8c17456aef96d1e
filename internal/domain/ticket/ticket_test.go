package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "boardsync/internal/domain/ticket/valueobjects"
)

func TestNewTicketIsUnsaved(t *testing.T) {
	tk := New("A fresh card", "https://trello.com/c/abcd1234/a-fresh-card")

	assert.False(t, tk.Exists())
	assert.Equal(t, vo.StatusNew, tk.Status())
	assert.Equal(t, "A fresh card", tk.Summary())
	assert.Equal(t, "https://trello.com/c/abcd1234/a-fresh-card", tk.PeerLink())
}

func TestSetID(t *testing.T) {
	tk := New("A fresh card", "")

	require.NoError(t, tk.SetID(1500))
	assert.True(t, tk.Exists())
	assert.Equal(t, 1500, tk.ID())

	assert.Error(t, tk.SetID(1501), "id must be immutable once set")
	assert.Equal(t, 1500, tk.ID())
}

func TestSetIDZeroRejected(t *testing.T) {
	tk := New("A fresh card", "")
	assert.Error(t, tk.SetID(0))
}

func TestReconstructValidation(t *testing.T) {
	_, err := Reconstruct(0, "summary", vo.StatusNew, "", "", "", "", "", "", nil, nil, "")
	assert.Error(t, err)

	_, err = Reconstruct(1500, "", vo.StatusNew, "", "", "", "", "", "", nil, nil, "")
	assert.Error(t, err)

	tk, err := Reconstruct(1500, "summary", vo.StatusDone, "alice", "fixed", "Zandmotor", "high", " tag", "link", nil, nil, "body")
	require.NoError(t, err)
	assert.Equal(t, "fixed", tk.Resolution())
	assert.Equal(t, "alice", tk.Owner())
}

func TestClearResolution(t *testing.T) {
	tk, err := Reconstruct(1500, "summary", vo.StatusDone, "", "fixed", "", "", "", "", nil, nil, "")
	require.NoError(t, err)

	tk.ClearResolution()
	assert.Empty(t, tk.Resolution())
}

func TestAppendKeyword(t *testing.T) {
	tk := New("summary", "")

	tk.AppendKeyword("urgent")
	tk.AppendKeyword("urgent")

	assert.Equal(t, " urgent urgent", tk.Keywords())
}
