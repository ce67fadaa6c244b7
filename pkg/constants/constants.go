package constants

type TaskStatus string

const (
	StatusOpen       TaskStatus = "OPEN"
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusOpen, StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type AuditAction string

const (
	ActionCreateTask AuditAction = "CREATE_TASK"
	ActionUpdateTask AuditAction = "UPDATE_TASK"
	ActionDeleteTask AuditAction = "DELETE_TASK"
	ActionUploadFile AuditAction = "UPLOAD_FILE"
)
