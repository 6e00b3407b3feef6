package prescription

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}
