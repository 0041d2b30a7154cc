package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/eldad2003/pharmverse-edu-hub/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"

	// AdminUsername is the display name of every admin session.
	AdminUsername = "Admin"
)

// YearGroups are the cohorts a portal is partitioned by.
var YearGroups = []string{"Pharm D1", "Pharm D2", "Pharm D3", "Pharm D4", "Pharm D5", "Pharm D6"}

func IsYearGroup(yg string) bool {
	for _, g := range YearGroups {
		if g == yg {
			return true
		}
	}
	return false
}

// Credential is a registered student's stored login record.
// Passwords are kept as entered: the stored layout is shared with existing clients.
type Credential struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	YearGroup string `json:"yearGroup"`
	Role      string `json:"role"`
}

// NewStudent contains information needed to register a new student.
type NewStudent struct {
	Username        string `json:"username" validate:"required,notblank"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm"`
	YearGroup       string `json:"yearGroup" validate:"yeargroup"`
}

// Validate applies, in order: password confirmation, year group presence, then field rules.
func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Username = core.CleanString(ns.Username)
	ns.YearGroup = core.CleanString(ns.YearGroup)

	if ns.Password != ns.PasswordConfirm {
		return ErrPasswordMismatch
	}
	if ns.YearGroup == "" {
		return ErrMissingYearGroup
	}
	return validate.Struct(ns)
}

// LoginRequest is what the login form submits.
type LoginRequest struct {
	Role      string `json:"role"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	YearGroup string `json:"yearGroup"`
}

// Clean normalizes the request the same way NewStudent.Validate normalizes a registration.
func (lr *LoginRequest) Clean() {
	lr.Role = core.CleanString(lr.Role, true /* lower */)
	lr.Username = core.CleanString(lr.Username)
	lr.YearGroup = core.CleanString(lr.YearGroup)
}
