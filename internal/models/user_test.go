package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid user",
			user:    User{Email: "test@example.com", Name: "Jane Doe"},
			wantErr: false,
		},
		{
			name:    "invalid email",
			user:    User{Email: "invalid-email", Name: "Jane Doe"},
			wantErr: true,
			errMsg:  "invalid email format",
		},
		{
			name:    "empty email",
			user:    User{Email: "", Name: "Jane Doe"},
			wantErr: true,
			errMsg:  "email is required",
		},
		{
			name:    "blank name",
			user:    User{Email: "test@example.com", Name: "   "},
			wantErr: true,
			errMsg:  "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUser_IsLocked(t *testing.T) {
	now := time.Now()

	assert.False(t, (&User{}).IsLocked())
	assert.True(t, (&User{LockedAt: &now}).IsLocked())
}

func TestUser_IncrementFailedAttemptsLocksAtLimit(t *testing.T) {
	user := User{}

	for i := 1; i < MaxFailedLoginAttempts; i++ {
		user.IncrementFailedAttempts()
		assert.Equal(t, i, user.FailedLoginAttempts)
		assert.False(t, user.IsLocked())
	}

	user.IncrementFailedAttempts()
	assert.Equal(t, MaxFailedLoginAttempts, user.FailedLoginAttempts)
	assert.True(t, user.IsLocked())
}

func TestUser_Unlock(t *testing.T) {
	now := time.Now()
	user := User{FailedLoginAttempts: MaxFailedLoginAttempts, LockedAt: &now}

	user.Unlock()

	assert.Nil(t, user.LockedAt)
	assert.Zero(t, user.FailedLoginAttempts)
}

func TestUser_ResetFailedAttemptsKeepsLock(t *testing.T) {
	now := time.Now()
	user := User{FailedLoginAttempts: 2, LockedAt: &now}

	user.ResetFailedAttempts()

	assert.Zero(t, user.FailedLoginAttempts)
	assert.True(t, user.IsLocked())
}

func TestUser_BeforeCreate(t *testing.T) {
	user := User{Email: "  Jane@Example.COM ", Name: "Jane"}

	err := user.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NotZero(t, user.CreatedAt)
	assert.NotZero(t, user.UpdatedAt)
}

func TestUser_UpdateLastLogin(t *testing.T) {
	user := User{Email: "test@example.com", Name: "Jane"}
	assert.Nil(t, user.LastLoginAt)

	before := time.Now()
	user.UpdateLastLogin()

	require.NotNil(t, user.LastLoginAt)
	assert.False(t, user.LastLoginAt.Before(before))
}
