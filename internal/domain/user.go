package domain

// User is one registered account. Password holds the stored digest, never
// the plaintext.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// Redacted returns a copy safe to hand to clients.
func (u User) Redacted() User {
	u.Password = ""
	return u
}
