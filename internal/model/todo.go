package model

// UnknownUserName is shown for a todo whose owner is not (yet) known.
const UnknownUserName = "Unknown"

// Todo is a task record fetched from the remote API.
type Todo struct {
	ID        int
	UserID    int
	Title     string
	Completed bool
}

// CompletedLabel returns the display label for the completion flag.
func (t Todo) CompletedLabel() string {
	if t.Completed {
		return "Yes"
	}
	return "No"
}

// User is read-only reference data that provides the display name
// for a todo's owner.
type User struct {
	ID       int
	Name     string
	Username string
	Email    string
}
