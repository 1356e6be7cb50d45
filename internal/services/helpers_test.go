package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/geoip"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every :memory: connection is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "x",
		Role:     "user",
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createRefreshToken(t *testing.T, db *gorm.DB, userID uint, raw string) *models.RefreshToken {
	t.Helper()
	token := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(token).Error)
	return token
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeLocator struct {
	mu    sync.Mutex
	loc   geoip.Location
	calls int
}

func (l *fakeLocator) Locate(context.Context, string) geoip.Location {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.loc
}
