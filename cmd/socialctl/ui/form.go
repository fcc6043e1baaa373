package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SuperuserInput holds the fields for a new admin account
type SuperuserInput struct {
	Email    string
	Name     string
	Password string
}

// Complete reports whether every field was supplied
func (in SuperuserInput) Complete() bool {
	return strings.TrimSpace(in.Email) != "" &&
		strings.TrimSpace(in.Name) != "" &&
		in.Password != ""
}

// Validate applies the same limits as registration
func (in SuperuserInput) Validate() error {
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	return ValidatePassword(in.Password)
}

func ValidateEmail(s string) error {
	if err := validate.Var(strings.TrimSpace(s), "required,email,max=255"); err != nil {
		return errors.New("a valid email of at most 255 characters is required")
	}
	return nil
}

func ValidateName(s string) error {
	if err := validate.Var(strings.TrimSpace(s), "required,max=200"); err != nil {
		return errors.New("name is required and must be at most 200 characters")
	}
	return nil
}

func ValidatePassword(s string) error {
	if err := validate.Var(s, "required,max=128"); err != nil {
		return errors.New("password is required and must be at most 128 characters")
	}
	return nil
}

// RunSuperuserForm prompts for whatever the flags left empty
func RunSuperuserForm(in *SuperuserInput) error {
	var confirm string

	fields := make([]huh.Field, 0, 4)
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("admin@example.com").
			Value(&in.Email).
			Validate(ValidateEmail))
	}
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Value(&in.Name).
			Validate(ValidateName))
	}
	if in.Password == "" {
		fields = append(fields,
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&in.Password).
				Validate(ValidatePassword),
			huh.NewInput().
				Title("Password (again)").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(s string) error {
					if s != in.Password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		)
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huh.ThemeCatppuccin()).
		Run()
}

// Confirm asks a yes/no question, defaulting to no
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).WithTheme(huh.ThemeCatppuccin()).Run()
	return ok, err
}
