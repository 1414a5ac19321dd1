package settings

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assetly-backend/internal/domain"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Settings{}))
	return &Service{DB: db}
}

func strp(s string) *string { return &s }

func TestGet_CreatesDefaultRow(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	st, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.OCRAPIKey)
	assert.Empty(t, st.DeepSeekAPIKey)

	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.ID, again.ID, "repeated Get must reuse the single row")
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	st, err := svc.Update(ctx, UpdateInput{OCRAPIKey: strp("ocr-key-1")})
	require.NoError(t, err)
	assert.Equal(t, "ocr-key-1", st.OCRAPIKey)

	st, err = svc.Update(ctx, UpdateInput{DeepSeekAPIKey: strp("ds-key-1")})
	require.NoError(t, err)
	assert.Equal(t, "ocr-key-1", st.OCRAPIKey, "untouched field must survive")
	assert.Equal(t, "ds-key-1", st.DeepSeekAPIKey)
}

func TestProfile_RoundTrip(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	p, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p, "fresh settings have no profile")

	_, err = svc.Update(ctx, UpdateInput{Profile: &domain.Profile{
		BirthDate:  "1996-05-20",
		Education:  "master",
		Occupation: "software engineer",
		Location:   "Shanghai",
	}})
	require.NoError(t, err)

	p, err = svc.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "1996-05-20", p.BirthDate)
	assert.Equal(t, "Shanghai", p.Location)
}
