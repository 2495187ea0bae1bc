package placeholder

// Todo is a single entry of GET /todos.
type Todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// User is a single entry of GET /users. The API returns more fields
// (address, phone, company); only the ones shown are decoded.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
