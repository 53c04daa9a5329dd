// Package user manages the register's staff accounts and login. Passwords
// are stored as argon2id hashes and sessions are stateless jwx-signed access
// tokens; a single terminal does not need refresh rotation.
package user

// Staff roles, as shown on the users screen.
const (
	RoleAdmin = "แอดมิน"
	RoleSales = "พนักงานขาย"
)

// User is one staff account. PasswordHash never leaves the repository layer;
// handlers return the Public view.
type User struct {
	ID           string `json:"id"`
	EmpName      string `json:"empName"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
	PasswordHash string `json:"passwordHash"`
}

// Public is the safe subset of a user returned to clients.
type Public struct {
	ID       string `json:"id"`
	EmpName  string `json:"empName"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

// View strips credential material from the account.
func (u User) View() Public {
	return Public{ID: u.ID, EmpName: u.EmpName, Username: u.Username, Role: u.Role, Active: u.Active}
}
