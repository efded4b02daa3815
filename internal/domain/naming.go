package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// BoardDirName is the directory holding the board inside the working tree.
const BoardDirName = ".projectboard"

// Slug derives a branch-name-safe form of a task title:
// lower-cased, spaces replaced by hyphens, every other rune that is not a
// letter, digit or hyphen dropped.
func Slug(title string) string {
	lowered := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BranchName returns the feature branch name for a task.
// Format: feature/<id>-<slug>
func BranchName(taskID int64, title string) string {
	return fmt.Sprintf("feature/%d-%s", taskID, Slug(title))
}

// branchPattern matches feature branch names: feature/<id>-<slug>
var branchPattern = regexp.MustCompile(`^feature/(\d+)-`)

// ParseBranchTaskID extracts the task ID from a branch name.
// Returns the task ID and true if the branch follows the feature naming convention,
// or 0 and false if not.
func ParseBranchTaskID(branch string) (int64, bool) {
	matches := branchPattern.FindStringSubmatch(branch)
	if matches == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// DefaultCommitMessage returns the commit message used when completing a task
// without an explicit message.
func DefaultCommitMessage(taskID int64, title string) string {
	return fmt.Sprintf("Closes #%d: %s", taskID, title)
}

// ReviewTitle returns the title of the review request opened for a task.
func ReviewTitle(taskID int64, title string) string {
	return fmt.Sprintf("Task #%d: %s", taskID, title)
}

// ShortHash abbreviates a commit hash to its first seven characters.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// BoardDir returns the board directory of a working tree.
func BoardDir(repoRoot string) string {
	return filepath.Join(repoRoot, BoardDirName)
}

// DatabasePath returns the path to the board database.
func DatabasePath(boardDir string) string {
	return filepath.Join(boardDir, "board.sqlite")
}

// ConfigPath returns the path to the repository config file.
func ConfigPath(boardDir string) string {
	return filepath.Join(boardDir, ConfigFileName)
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(boardDir string) string {
	return filepath.Join(boardDir, "logs", "pb.log")
}

// TaskLogPath returns the path to the task log file.
func TaskLogPath(boardDir string, taskID int64) string {
	return filepath.Join(boardDir, "logs", fmt.Sprintf("task-%d.log", taskID))
}

// GlobalConfigDir returns the global config directory under the given config home.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "git-board")
}
