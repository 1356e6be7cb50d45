package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/geoip"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*AuthService, *TrustService) {
	db := setupTestDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	trust := NewTrustService(db, geoip.Static{})
	return NewAuthService(db, cfg, trust, NewMediaService(db, NewContentRegistry())), trust
}

func registerRequest(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: username,
		Email:    username + "@Example.com",
		Password: "correct-horse",
	}
}

func TestRegisterTrusted(t *testing.T) {
	svc, trust := newAuth(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest("wendy"), "10.3.3.3", "fp-w")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "wendy@example.com", resp.User.Email)

	ips, err := trust.IPHistory(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Len(t, ips, 1)

	_, err = svc.Register(ctx, registerRequest("wendy"), "10.3.3.3", "fp-w")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterHeldFromSuspiciousIP(t *testing.T) {
	svc, trust := newAuth(t)
	ctx := context.Background()

	existing := createUser(t, svc.db, "xavier")
	require.NoError(t, trust.RecordActivity(ctx, existing.ID, "10.4.4.4", ""))
	_, err := trust.MarkIPSuspicious(ctx, "10.4.4.4")
	require.NoError(t, err)

	resp, err := svc.Register(ctx, registerRequest("yara"), "10.4.4.4", "fp-y")
	assert.ErrorIs(t, err, ErrRegistrationHeld)
	assert.Nil(t, resp)

	var user models.User
	require.NoError(t, svc.db.Where("username = ?", "yara").First(&user).Error)
	assert.False(t, user.IsActive)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "yara@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterHeldFromBlockedDevice(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	other := createUser(t, svc.db, "zoe")
	require.NoError(t, svc.db.Create(&models.TrackedDevice{
		UserID:            other.ID,
		DeviceFingerprint: "fp-bad",
		LastSeen:          time.Now().UTC(),
		IsBlocked:         true,
	}).Error)

	_, err := svc.Register(ctx, registerRequest("adam"), "10.5.5.5", "fp-bad")
	assert.ErrorIs(t, err, ErrRegistrationHeld)
}

func TestLoginAndRefresh(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("bella"), "10.6.6.6", "fp-b")
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "bella@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "BELLA@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// refresh tokens are single use
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: refreshed.RefreshToken}))
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUsernameAvailable(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	createUser(t, svc.db, "carl")

	ok, err := svc.UsernameAvailable(ctx, "carl")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.UsernameAvailable(ctx, "carla")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.UsernameAvailable(ctx, "no spaces")
	assert.Error(t, err)
}

func TestUpdateAvatarIndexesMedia(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	u := createUser(t, svc.db, "dora")

	_, err := svc.UpdateAvatar(ctx, u.ID, "avatars/dora.jpg")
	require.NoError(t, err)
	_, err = svc.UpdateAvatar(ctx, u.ID, "avatars/dora2.jpg")
	require.NoError(t, err)

	entries, err := svc.media.List(ctx, content.RefOf(u))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = svc.UpdateAvatar(ctx, 999, "avatars/x.jpg")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
