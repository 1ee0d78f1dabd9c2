package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAssignmentCreated = "assignment.created"
	EventTypeAssignmentUpdated = "assignment.updated"
	EventTypeAssignmentDeleted = "assignment.deleted"
)

type AssignmentEvent struct {
	BaseEvent
	AssignmentID string `json:"assignment_id"`
	EngineerID   string `json:"engineer_id"`
	ProjectID    string `json:"project_id"`
}

func newAssignmentEvent(eventType, assignmentID, engineerID, projectID string) *AssignmentEvent {
	return &AssignmentEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"assignment_id": assignmentID,
				"engineer_id":   engineerID,
				"project_id":    projectID,
			},
		},
		AssignmentID: assignmentID,
		EngineerID:   engineerID,
		ProjectID:    projectID,
	}
}

func NewAssignmentCreatedEvent(assignmentID, engineerID, projectID string) *AssignmentEvent {
	return newAssignmentEvent(EventTypeAssignmentCreated, assignmentID, engineerID, projectID)
}

func NewAssignmentUpdatedEvent(assignmentID, engineerID, projectID string) *AssignmentEvent {
	return newAssignmentEvent(EventTypeAssignmentUpdated, assignmentID, engineerID, projectID)
}

func NewAssignmentDeletedEvent(assignmentID, engineerID, projectID string) *AssignmentEvent {
	return newAssignmentEvent(EventTypeAssignmentDeleted, assignmentID, engineerID, projectID)
}
