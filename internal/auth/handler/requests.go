package handler

import (
	"strings"

	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/strutil"
	"propertyhub/pkg/validation"
)

// SignUpRequest is the payload for POST /auth/signup.
type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Name            string `json:"name" validate:"required,notblank,max=120"`
	Phone           string `json:"phone" validate:"max=30"`
}

func (r *SignUpRequest) Normalize() {
	strutil.TrimStrings(&r.Email, &r.Name, &r.Phone)
	r.Email = strings.ToLower(r.Email)
}

func (r *SignUpRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return dErrors.New(dErrors.CodeValidation, "passwords do not match")
	}
	return nil
}

// SignInRequest is the payload for POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *SignInRequest) Normalize() {
	strutil.TrimStrings(&r.Email)
	r.Email = strings.ToLower(r.Email)
}

func (r *SignInRequest) Validate() error {
	return validation.Validate(r)
}

// ChangePasswordRequest is the payload for POST /auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (r *ChangePasswordRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.NewPassword != r.ConfirmPassword {
		return dErrors.New(dErrors.CodeValidation, "passwords do not match")
	}
	return nil
}

// UpdateProfileRequest is the payload for PUT /auth/profile.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=120"`
	Phone string `json:"phone" validate:"max=30"`
}

func (r *UpdateProfileRequest) Normalize() {
	strutil.TrimStrings(&r.Name, &r.Phone)
}

func (r *UpdateProfileRequest) Validate() error {
	return validation.Validate(r)
}
