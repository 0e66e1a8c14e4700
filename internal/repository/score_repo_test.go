package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model"
	"github.com/satyanetra/trust_go_server/internal/pkg/ids"
	"github.com/satyanetra/trust_go_server/internal/testutil"
)

func TestScoreRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScoreRepository(db)
	product := testutil.TestProduct(t, db)

	score := &model.Score{
		ID:           ids.ScoreID(),
		ProductID:    product.ID,
		OverallScore: 81,
	}

	err := repo.Create(score)
	require.NoError(t, err)
	assert.NotZero(t, score.CreatedAt)
}

func TestScoreRepository_GetLatestByProductID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScoreRepository(db)
	product := testutil.TestProduct(t, db)

	testutil.TestScore(t, db, product.ID, 60,
		testutil.WithCreatedAt(time.Now().Add(-time.Hour)))
	latest := testutil.TestScore(t, db, product.ID, 81)

	found, err := repo.GetLatestByProductID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, found.ID)
	assert.Equal(t, 81, found.OverallScore)
}

func TestScoreRepository_GetLatestByProductID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScoreRepository(db)

	_, err := repo.GetLatestByProductID("prod_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestScoreRepository_CountByProductID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScoreRepository(db)
	product := testutil.TestProduct(t, db)

	testutil.TestScore(t, db, product.ID, 60)
	testutil.TestScore(t, db, product.ID, 81)

	count, err := repo.CountByProductID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
