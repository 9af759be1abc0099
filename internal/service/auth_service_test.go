package service

import (
	"context"
	"testing"

	"Chirpio/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGuard() AuthService {
	sessions := &fakeSessions{users: map[string]string{
		"tok-verified":   "u-verified",
		"tok-unverified": "u-unverified",
		"tok-orphan":     "u-orphan",
		"tok-lost":       "u-lost",
	}}
	orgs := &fakeOrgs{
		members: map[string]string{
			"u-verified":   "org-ok",
			"u-unverified": "org-pending",
			"u-lost":       "org-deleted",
		},
		orgs: map[string]*model.Organisation{
			"org-ok":      {BaseModel: model.BaseModel{ID: "org-ok"}, Verified: true},
			"org-pending": {BaseModel: model.BaseModel{ID: "org-pending"}, Verified: false},
		},
	}
	return NewAuthService(sessions, orgs, zap.NewNop())
}

func TestAuthorize(t *testing.T) {
	guard := newGuard()

	tests := []struct {
		name  string
		token string
		want  *AppError
	}{
		{"missing token", "", ErrUnauthenticated},
		{"rejected token", "tok-forged", ErrAuthenticationFailed},
		{"no membership", "tok-orphan", ErrNoMembership},
		{"organisation missing", "tok-lost", ErrOrganisationNotFound},
		{"not verified", "tok-unverified", ErrNotVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac, err := guard.Authorize(context.Background(), tt.token)
			assert.Nil(t, ac)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("verified organisation", func(t *testing.T) {
		ac, err := guard.Authorize(context.Background(), "tok-verified")
		require.NoError(t, err)
		assert.Equal(t, AuthContext{UserID: "u-verified", OrganisationID: "org-ok"}, *ac)
	})
}

func TestAuthorize_StatusCodes(t *testing.T) {
	assert.Equal(t, 401, ErrUnauthenticated.Status)
	assert.Equal(t, 401, ErrAuthenticationFailed.Status)
	assert.Equal(t, 403, ErrNoMembership.Status)
	assert.Equal(t, 403, ErrOrganisationNotFound.Status)
	assert.Equal(t, 403, ErrNotVerified.Status)
}

func TestResolveUser_TransportFailure(t *testing.T) {
	guard := NewAuthService(&fakeSessions{err: errBoom}, &fakeOrgs{}, zap.NewNop())
	_, err := guard.ResolveUser(context.Background(), "any")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAuthorize_MembershipLookupError(t *testing.T) {
	guard := NewAuthService(
		&fakeSessions{users: map[string]string{"t": "u"}},
		&fakeOrgs{err: errBoom},
		zap.NewNop(),
	)
	_, err := guard.Authorize(context.Background(), "t")
	assert.ErrorIs(t, err, ErrNoMembership)
}

func TestAsAppError(t *testing.T) {
	assert.Equal(t, ErrUpstream, AsAppError(errBoom))

	custom := ErrInvalidPlatforms.WithMessage("Invalid platforms: tiktok")
	got := AsAppError(custom)
	assert.Equal(t, "Invalid platforms: tiktok", got.Message)
	assert.ErrorIs(t, custom, ErrInvalidPlatforms)
	assert.NotErrorIs(t, custom, ErrInvalidSchedule)
}
