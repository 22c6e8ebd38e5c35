package database_test

import (
	"context"
	"testing"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/testutil"
	"github.com/albretostimbung/naraicoderbe/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.Setup(t)

	require.NoError(t, database.Seed(context.Background(), db))
	assert.Equal(t, int64(6), count(t, db, &model.Setting{}))
	assert.Equal(t, int64(3), count(t, db, &model.Partner{}))
	assert.Equal(t, int64(2), count(t, db, &model.Event{}))
	assert.Equal(t, int64(1), count(t, db, &model.User{}))

	require.NoError(t, database.Seed(context.Background(), db))
	assert.Equal(t, int64(6), count(t, db, &model.Setting{}))
	assert.Equal(t, int64(3), count(t, db, &model.Partner{}))
	assert.Equal(t, int64(2), count(t, db, &model.Event{}))
	assert.Equal(t, int64(1), count(t, db, &model.User{}))
}

func TestSeedUsesExistingOrganizer(t *testing.T) {
	db := testutil.Setup(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", model.RoleAdmin)

	require.NoError(t, database.Seed(context.Background(), db))
	assert.Equal(t, int64(1), count(t, db, &model.User{}))

	var events []model.Event
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, owner.ID, e.OrganizerID)
		assert.Equal(t, "published", e.Status)
		assert.NotEmpty(t, e.Slug)
		require.NotNil(t, e.RegistrationDeadline)
		assert.True(t, e.RegistrationDeadline.Before(e.StartDate))
	}
}

func TestSeedLeavesPopulatedTablesAlone(t *testing.T) {
	db := testutil.Setup(t)
	require.NoError(t, db.Create(&model.Partner{Name: "Local Partner", PartnershipType: "startup", IsActive: true}).Error)

	require.NoError(t, database.Seed(context.Background(), db))
	assert.Equal(t, int64(1), count(t, db, &model.Partner{}))
	assert.Equal(t, int64(6), count(t, db, &model.Setting{}))
}
