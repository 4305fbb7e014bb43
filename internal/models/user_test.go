package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUser_UnmarshalJSON_NumericID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"email":"a@b.com","name":"Ada"}`), &u))
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, "a@b.com", u.Email)
	require.Equal(t, "Ada", u.Name)
}

func TestUser_UnmarshalJSON_StringID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"42","email":"a@b.com"}`), &u))
	require.Equal(t, int64(42), u.ID)
}

func TestUser_UnmarshalJSON_MissingID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b.com"}`), &u))
	require.Zero(t, u.ID)
}

func TestUser_UnmarshalJSON_BadID(t *testing.T) {
	var u User
	require.Error(t, json.Unmarshal([]byte(`{"id":"seven"}`), &u))
	require.Error(t, json.Unmarshal([]byte(`{"id":true}`), &u))
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid", User{ID: 1, Email: "a@b.com"}, false},
		{"missing id", User{Email: "a@b.com"}, true},
		{"missing email", User{ID: 1}, true},
		{"empty", User{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.user.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOnboardingData_IsZero(t *testing.T) {
	require.True(t, OnboardingData{}.IsZero())
	require.False(t, OnboardingData{BusinessName: "Acme"}.IsZero())
	require.False(t, OnboardingData{Services: []string{"email-assistant"}}.IsZero())
	require.False(t, OnboardingData{TermsAccepted: true}.IsZero())
}
