// Package models defines the identity records shared by the session core:
// the authenticated User and the pre-signup OnboardingData draft.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
)

// User is the identity record for a signed-in account. It is owned by the
// session manager once loaded and mutated only through its UpdateUser
// operation.
type User struct {
	ID                  int64          `json:"id"`
	Email               string         `json:"email"`
	Name                string         `json:"name"`
	Role                string         `json:"role,omitempty"`
	BusinessName        string         `json:"business_name,omitempty"`
	Industry            string         `json:"industry,omitempty"`
	TeamSize            string         `json:"team_size,omitempty"`
	IsActive            bool           `json:"is_active"`
	EmailVerified       bool           `json:"email_verified"`
	OnboardingCompleted bool           `json:"onboarding_completed"`
	OnboardingStep      int            `json:"onboarding_step"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

// UnmarshalJSON accepts the id either as a JSON number or as a string of
// digits. Legacy records were written by code that did not normalize the id
// type, so both shapes exist in the wild.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		ID any `json:"id"`
		*alias
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch v := aux.ID.(type) {
	case nil:
		u.ID = 0
	case float64:
		u.ID = int64(v)
	case string:
		if v == "" {
			u.ID = 0
			break
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", v, err)
		}
		u.ID = id
	default:
		return fmt.Errorf("invalid user id type %T", v)
	}

	return nil
}

// Validate reports whether the record carries the fields every
// authenticated view depends on: a non-zero id and a non-empty email.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Email, validation.Required),
	)
}
