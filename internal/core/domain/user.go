package domain

// User is a registered passenger. Email and phone are not required to be
// unique; two users may share contact details.
type User struct {
	ID    string `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
