package models

// allowedTransitions is the task status state machine. Staying in the same
// status is always allowed and is not listed.
var allowedTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusOpen:            {TaskStatusInProgress, TaskStatusPendingApproval},
	TaskStatusInProgress:      {TaskStatusOpen, TaskStatusPendingApproval},
	TaskStatusPendingApproval: {TaskStatusInProgress, TaskStatusClosed},
	TaskStatusClosed:          {TaskStatusInProgress},
}

// CanTransition reports whether a task may move from one status to another.
func CanTransition(from, to TaskStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Capabilities are advisory flags telling a presenter which actions to offer
// an actor for a task. They mirror the workflow checks but are not enforced
// by generic updates.
type Capabilities struct {
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
	CanClose   bool `json:"can_close"`
	CanApprove bool `json:"can_approve"`
}

// CapabilitiesFor computes what actor may do with task.
func CapabilitiesFor(task Task, actor User) Capabilities {
	ownsTask := actor.IsDeveloper() && task.AssigneeID != 0 && task.AssigneeID == actor.ID
	return Capabilities{
		CanEdit:   ownsTask,
		CanDelete: ownsTask,
		CanClose: ownsTask &&
			(task.Status == TaskStatusOpen || task.Status == TaskStatusInProgress),
		CanApprove: actor.IsManager() && task.Status == TaskStatusPendingApproval,
	}
}
