package content

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func (w *widget) ContentKind() string { return "widget" }
func (w *widget) ContentID() uint     { return w.ID }
func (w *widget) String() string      { return fmt.Sprintf("Widget %s", w.Name) }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		kind, id string
		want     Ref
		wantErr  bool
	}{
		{"user", "42", Ref{Kind: "user", ID: 42}, false},
		{" User ", "7", Ref{Kind: "user", ID: 7}, false},
		{"", "1", Ref{}, true},
		{"user", "0", Ref{}, true},
		{"user", "-3", Ref{}, true},
		{"user", "abc", Ref{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.id, func(t *testing.T) {
			got, err := ParseRef(tt.kind, tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefString(t *testing.T) {
	assert.Equal(t, "faq:3", Ref{Kind: "faq", ID: 3}.String())
	assert.True(t, Ref{}.IsZero())
}

func TestFieldFilter(t *testing.T) {
	all := FieldFilter{}
	assert.True(t, all.Allows("avatar"))

	only := FieldFilter{Include: []string{"avatar"}}
	assert.True(t, only.Allows("avatar"))
	assert.False(t, only.Allows("banner"))

	both := FieldFilter{Include: []string{"avatar", "banner"}, Exclude: []string{"banner"}}
	assert.True(t, both.Allows("avatar"))
	assert.False(t, both.Allows("banner"))

	except := FieldFilter{Exclude: []string{"banner"}}
	assert.True(t, except.Allows("cover"))
	assert.False(t, except.Allows("banner"))
}

func TestRegistryResolveAndDescribe(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	r := NewRegistry()
	r.Register(&Kind{Name: "widget", Label: "Widget", Lookup: ModelLookup[widget]()})

	w := widget{Name: "sprocket"}
	require.NoError(t, db.Create(&w).Error)
	ref := RefOf(&w)

	entity, ok, err := r.Resolve(ctx, db, ref)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Widget sprocket", entity.String())

	desc := r.Describe(ctx, db, ref)
	assert.True(t, desc.Exists)
	assert.Equal(t, "Widget sprocket", desc.Label)
	assert.Equal(t, fmt.Sprintf("/api/admin/content/widget/%d", w.ID), desc.Link)

	require.NoError(t, db.Delete(&w).Error)

	_, ok, err = r.Resolve(ctx, db, ref)
	require.NoError(t, err)
	assert.False(t, ok)

	desc = r.Describe(ctx, db, ref)
	assert.False(t, desc.Exists)
	assert.Equal(t, MissingLabel, desc.Label)
	assert.Empty(t, desc.Link)
}

func TestRegistryUnknownKind(t *testing.T) {
	db := setupTestDB(t)
	r := NewRegistry()
	r.Register(&Kind{Name: "widget", Lookup: ModelLookup[widget](), Media: FieldFilter{Include: []string{"icon"}}})

	_, ok, err := r.Resolve(context.Background(), db, Ref{Kind: "gadget", ID: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, r.Exists("widget"))
	assert.False(t, r.Exists("gadget"))
	assert.Equal(t, []string{"widget"}, r.Names())
	assert.Equal(t, []string{"icon"}, r.MediaFilter("widget").Include)
	assert.Empty(t, r.MediaFilter("gadget").Include)
}
