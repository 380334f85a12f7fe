package models

// User roles as issued by the backend in the credential claims.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a user of the store.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Role     string `json:"role"`
	Password string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, server side only
}

// Credential is what a successful login or registration yields: the bearer
// token plus the cached user record it belongs to.
type Credential struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
