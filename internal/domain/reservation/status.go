package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Statuses is the full enumeration. Admin actors may set any of these;
// there is no transition graph.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if Status(s) == v {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}
