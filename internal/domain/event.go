package domain

// EventType tags an activity log entry.
type EventType string

const (
	EventProjectInitialized EventType = "project_initialized"
	EventTaskCreated        EventType = "task_created"
	EventTaskStarted        EventType = "task_started"
	EventTaskCompleted      EventType = "task_completed"
	EventTaskSubmitted      EventType = "task_submitted"
	EventTaskMoved          EventType = "task_moved"
	EventCommentAdded       EventType = "comment_added"
	EventIdeaCreated        EventType = "idea_created"
	EventIdeaPromoted       EventType = "idea_promoted"
	EventIdeaDeleted        EventType = "idea_deleted"
)

// AllEvents returns every known event type.
func AllEvents() []EventType {
	return []EventType{
		EventProjectInitialized,
		EventTaskCreated,
		EventTaskStarted,
		EventTaskCompleted,
		EventTaskSubmitted,
		EventTaskMoved,
		EventCommentAdded,
		EventIdeaCreated,
		EventIdeaPromoted,
		EventIdeaDeleted,
	}
}

// IsValid returns true if the event type is part of the taxonomy.
func (e EventType) IsValid() bool {
	for _, known := range AllEvents() {
		if e == known {
			return true
		}
	}
	return false
}
