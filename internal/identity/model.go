package identity

import "time"

// User statuses. A record is created pending and must be activated by an
// external approval process before it can sign in.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// User represents a registered account holder.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Role      string
	PINHash   string
	Status    string
	Balance   int64
	CreatedAt time.Time
}

// Profile is the outward projection of a user record. It deliberately has no
// credential field, so the stored digest can never reach a response body.
type Profile struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Balance int64  `json:"balance"`
}

// Profile returns the redacted projection of the user.
func (u User) Profile() Profile {
	return Profile{
		Email:   u.Email,
		Phone:   u.Phone,
		Role:    u.Role,
		Name:    u.Name,
		Status:  u.Status,
		Balance: u.Balance,
	}
}
