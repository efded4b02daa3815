// Package domain contains core business entities and interfaces.
package domain

import "time"

// Project is the board bound to one git working tree.
type Project struct {
	Name     string `json:"name" yaml:"name"`         // Directory name of the working tree
	RepoPath string `json:"repoPath" yaml:"repoPath"` // Absolute path of the working tree
	ID       int64  `json:"id" yaml:"id"`
}

// Task represents a unit of work on the board.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created     time.Time `json:"created" yaml:"created"`                             // Creation time
	Updated     time.Time `json:"updated" yaml:"updated"`                             // Refreshed on every mutation
	Title       string    `json:"title" yaml:"title"`                                 // Title (required)
	Description string    `json:"description,omitempty" yaml:"description,omitempty"` // Description (optional)
	Assignee    string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`       // Assignee (optional)
	BranchName  string    `json:"branch,omitempty" yaml:"branch,omitempty"`           // Set once when work starts
	PRURL       string    `json:"pr,omitempty" yaml:"pr,omitempty"`                   // Review link, set on submit
	ID          int64     `json:"id" yaml:"id"`
	ColumnID    int64     `json:"columnID" yaml:"columnID"`
	PRFallback  bool      `json:"prFallback,omitempty" yaml:"prFallback,omitempty"` // PRURL needs a manual follow-up
}

// HasBranch returns true if work on the task has started.
func (t *Task) HasBranch() bool {
	return t.BranchName != ""
}

// HasReviewRequest returns true if the task has been submitted for review.
func (t *Task) HasReviewRequest() bool {
	return t.PRURL != ""
}

// Comment represents a note attached to a task.
// Fields are ordered to minimize memory padding.
type Comment struct {
	Created time.Time `json:"created" yaml:"created"`
	Author  string    `json:"author" yaml:"author"`
	Text    string    `json:"text" yaml:"text"`
	ID      int64     `json:"id" yaml:"id"`
	TaskID  int64     `json:"taskID" yaml:"taskID"`
}

// Idea is a pre-task note. It is either deleted or promoted into exactly one Backlog task.
type Idea struct {
	Created time.Time `json:"created" yaml:"created"`
	Content string    `json:"content" yaml:"content"`
	ID      int64     `json:"id" yaml:"id"`
}

// Activity is one append-only audit trail entry.
type Activity struct {
	Created  time.Time `json:"created" yaml:"created"`
	Event    EventType `json:"event" yaml:"event"`
	Metadata string    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ID       int64     `json:"id" yaml:"id"`
}
