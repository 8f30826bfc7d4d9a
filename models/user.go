package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// User represents a managed user account
type User struct {
	ID          int64     `json:"id" db:"id"`
	Forename    string    `json:"forename" db:"forename"`
	Surname     string    `json:"surname" db:"surname"`
	Email       string    `json:"email" db:"email"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.Forename + " " + u.Surname)
}

// UserForm represents form data for creating/updating users.
// DateOfBirth is carried as the raw form value and parsed during validation.
type UserForm struct {
	Forename    string `json:"forename" validate:"required,max=50"`
	Surname     string `json:"surname" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	IsActive    bool   `json:"is_active"`
}

var formValidator = validator.New()

// Validate validates the user form data and returns human-readable
// field messages. An empty slice means the form is valid.
func (f *UserForm) Validate() []string {
	var errors []string

	if err := formValidator.Struct(f); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				errors = append(errors, fieldError(fe))
			}
		} else {
			errors = append(errors, err.Error())
		}
	}

	// Date format gets checked separately, there is no validator tag for
	// a date carried in a form string.
	if f.DateOfBirth != "" {
		dob, err := ParseDate(f.DateOfBirth)
		if err != nil {
			errors = append(errors, "Date of birth must be a valid date (YYYY-MM-DD)")
		} else if dob.After(time.Now()) {
			errors = append(errors, "Date of birth cannot be in the future")
		}
	}

	return errors
}

// ToUser converts a validated form into a User entity. Callers must run
// Validate first; an unparseable date of birth comes back zero-valued.
func (f *UserForm) ToUser() *User {
	dob, _ := ParseDate(f.DateOfBirth)
	return &User{
		Forename:    strings.TrimSpace(f.Forename),
		Surname:     strings.TrimSpace(f.Surname),
		Email:       strings.TrimSpace(f.Email),
		DateOfBirth: dob,
		IsActive:    f.IsActive,
	}
}

// FormFromUser builds a form pre-filled from an existing user, for edit pages.
func FormFromUser(u *User) *UserForm {
	return &UserForm{
		Forename:    u.Forename,
		Surname:     u.Surname,
		Email:       u.Email,
		DateOfBirth: FormatDate(u.DateOfBirth),
		IsActive:    u.IsActive,
	}
}

// fieldError converts a single validation error into a human-readable message
func fieldError(fe validator.FieldError) string {
	field := displayFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Please enter a valid email address"
	case "max":
		return field + " must be under " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}

// displayFieldName maps struct field names to the labels the forms use
func displayFieldName(name string) string {
	switch name {
	case "DateOfBirth":
		return "Date of birth"
	default:
		return name
	}
}
