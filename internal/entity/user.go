package entity

// User is the single persisted entity. PasswordHash always holds the bcrypt
// digest (or the federated-login sentinel), never a plaintext password, and
// is excluded from every JSON response.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	ImageURL     *string `json:"imageUrl"`
}
