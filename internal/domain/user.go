package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDesigner Role = "designer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               Role      `json:"role"`
	WalletBalanceCents int64     `json:"wallet_balance_cents"`
	CreatedOn          time.Time `json:"created_on"`
}
