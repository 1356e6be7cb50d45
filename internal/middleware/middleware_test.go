package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordedActivity struct {
	userID      uint
	ip          string
	fingerprint string
}

type fakeRecorder struct {
	calls []recordedActivity
	err   error
}

func (r *fakeRecorder) RecordActivity(_ context.Context, userID uint, ip, fingerprint string) error {
	r.calls = append(r.calls, recordedActivity{userID, ip, fingerprint})
	return r.err
}

func withUser(sub string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}))
		return c.Next()
	}
}

func TestTrackActivityRecordsAfterHandler(t *testing.T) {
	rec := &fakeRecorder{}
	app := fiber.New()
	app.Get("/", withUser("7"), TrackActivity(rec), func(c *fiber.Ctx) error {
		assert.Empty(t, rec.calls)
		return c.SendStatus(fiber.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("User-Agent", "agent")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, uint(7), rec.calls[0].userID)
	assert.Len(t, rec.calls[0].fingerprint, 64)
}

func TestTrackActivityFailureKeepsResponse(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("db down")}
	app := fiber.New()
	app.Get("/", withUser("7"), TrackActivity(rec), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, rec.calls, 1)
}

func TestTrackActivitySkipsAnonymous(t *testing.T) {
	rec := &fakeRecorder{}
	app := fiber.New()
	app.Get("/", TrackActivity(rec), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Empty(t, rec.calls)
}

func TestAdminRequiredConfigLists(t *testing.T) {
	cfg := &config.Config{AdminEmails: "root@example.com, ops@example.com", AdminUserIDs: "9"}
	app := fiber.New()
	app.Get("/by-id", withUser("9"), AdminRequired(nil, cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/anon", AdminRequired(nil, cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/by-id", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/anon", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestParseCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseCSV(" a, ,b "))
	assert.Nil(t, parseCSV(""))
}

func TestActiveUserRejectsInactiveAccounts(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}))

	active := models.User{Username: "on", Email: "on@example.com", Password: "x", IsActive: true}
	inactive := models.User{Username: "off", Email: "off@example.com", Password: "x", IsActive: false}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&inactive).Error)

	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/active", withUser(strconv.FormatUint(uint64(active.ID), 10)), ActiveUser(db), ok)
	app.Get("/inactive", withUser(strconv.FormatUint(uint64(inactive.ID), 10)), ActiveUser(db), ok)
	app.Get("/missing", withUser("999"), ActiveUser(db), ok)

	for path, want := range map[string]int{
		"/active":   fiber.StatusOK,
		"/inactive": fiber.StatusUnauthorized,
		"/missing":  fiber.StatusUnauthorized,
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
