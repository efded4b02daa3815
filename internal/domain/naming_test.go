package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Add login", "add-login"},
		{"punctuation dropped", "Fix bug #42!", "fix-bug-42"},
		{"repeated spaces kept", "a  b", "a--b"},
		{"existing hyphens", "re-run CI", "re-run-ci"},
		{"unicode letters", "Café menü", "café-menü"},
		{"tabs dropped", "a\tb", "ab"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title))
		})
	}
}

func TestSlug_Deterministic(t *testing.T) {
	title := "Ship the Release: v2 (final)"
	assert.Equal(t, Slug(title), Slug(title))
}

func TestBranchName(t *testing.T) {
	assert.Equal(t, "feature/7-add-login", BranchName(7, "Add login"))
	assert.Equal(t, "feature/12-", BranchName(12, "???"))
}

func TestParseBranchTaskID(t *testing.T) {
	tests := []struct {
		name   string
		branch string
		wantID int64
		wantOK bool
	}{
		// Valid feature branches
		{"simple", "feature/1-add-login", 1, true},
		{"large id", "feature/999-x", 999, true},
		{"empty slug", "feature/12-", 12, true},

		// Invalid branches
		{"main branch", "main", 0, false},
		{"no id", "feature/foo", 0, false},
		{"empty string", "", 0, false},
		{"no dash", "feature/12", 0, false},
		{"wrong prefix", "bugfix/1-x", 0, false},
		{"zero id", "feature/0-x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotOK := ParseBranchTaskID(tt.branch)
			if gotID != tt.wantID {
				t.Errorf("ParseBranchTaskID(%q) ID = %d, want %d", tt.branch, gotID, tt.wantID)
			}
			if gotOK != tt.wantOK {
				t.Errorf("ParseBranchTaskID(%q) OK = %v, want %v", tt.branch, gotOK, tt.wantOK)
			}
		})
	}
}

func TestParseBranchTaskID_RoundTrip(t *testing.T) {
	id, ok := ParseBranchTaskID(BranchName(42, "Write docs"))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestDefaultCommitMessage(t *testing.T) {
	assert.Equal(t, "Closes #3: Fix typo", DefaultCommitMessage(3, "Fix typo"))
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "0123456", ShortHash("0123456789abcdef0123456789abcdef01234567"))
	assert.Equal(t, "abc", ShortHash("abc"))
	assert.Empty(t, ShortHash(""))
}

func TestPaths(t *testing.T) {
	boardDir := BoardDir("/repo")
	assert.Equal(t, "/repo/.projectboard", boardDir)
	assert.Equal(t, "/repo/.projectboard/board.sqlite", DatabasePath(boardDir))
	assert.Equal(t, "/repo/.projectboard/config.toml", ConfigPath(boardDir))
	assert.Equal(t, "/repo/.projectboard/logs/pb.log", GlobalLogPath(boardDir))
	assert.Equal(t, "/repo/.projectboard/logs/task-5.log", TaskLogPath(boardDir, 5))
	assert.Equal(t, "/home/u/.config/git-board", GlobalConfigDir("/home/u/.config"))
}
