package domain

import (
	"context"
	"strings"
)

// UserInfo is the resource server's view of a console user.
type UserInfo struct {
	Username            string    `json:"username"`
	Enabled             bool      `json:"enabled"`
	Authority           string    `json:"authority"`
	FullName            string    `json:"fullName"`
	Picture             string    `json:"picture"`
	Email               string    `json:"email"`
	EmailVerified       bool      `json:"emailVerified"`
	Gender              string    `json:"gender"`
	Birthdate           string    `json:"birthdate"`
	PhoneNumber         string    `json:"phoneNumber"`
	PhoneNumberVerified bool      `json:"phoneNumberVerified"`
	Address             string    `json:"address"`
	Position            string    `json:"position"`
	Department          string    `json:"department"`
	Note                string    `json:"note"`
	UpdatedAt           Timestamp `json:"updatedAt"`
	CreatedAt           Timestamp `json:"createdAt"`
}

// Status maps the enabled flag onto the form's status values.
func (u UserInfo) Status() string {
	if u.Enabled {
		return "active"
	}
	return "inactive"
}

// UserForm is the add/edit user payload.
type UserForm struct {
	FullName    string `json:"fullName" validate:"min=2"`
	Email       string `json:"email" validate:"required,email"`
	DOB         *Date  `json:"dob,omitempty" validate:"omitempty,past_date"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=active inactive"`
	Address     string `json:"address,omitempty"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Department  string `json:"department" validate:"required"`
	Note        string `json:"note,omitempty" validate:"max=500"`
}

// FormFromUserInfo pre-fills the edit form.
func FormFromUserInfo(u *UserInfo) *UserForm {
	form := &UserForm{
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        strings.ToLower(Identity{Role: u.Authority}.RoleName()),
		Status:      u.Status(),
		Address:     u.Address,
		Gender:      u.Gender,
		Department:  u.Department,
		Note:        u.Note,
	}
	if dob, err := ParseDate(u.Birthdate); err == nil && !dob.IsZero() {
		form.DOB = &dob
	}
	return form
}

type UserRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[UserInfo], error)
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
	Create(ctx context.Context, u *UserForm) error
	Update(ctx context.Context, username string, u *UserForm) error
}

type UserUsecase interface {
	ListUsers(ctx context.Context, q ListQuery) (*Page[UserInfo], error)
	GetUser(ctx context.Context, username string) (*UserInfo, error)
	CreateUser(ctx context.Context, u *UserForm) error
	UpdateUser(ctx context.Context, username string, u *UserForm) error
}
