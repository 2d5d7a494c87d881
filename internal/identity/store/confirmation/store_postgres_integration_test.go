//go:build integration

package confirmation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"keyproof/internal/identity/models"
	"keyproof/internal/identity/store/confirmation"
	"keyproof/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *confirmation.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = confirmation.NewPostgresStore(s.postgres.DB,
		confirmation.WithPostgresClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }))
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "keybase_confirmations"))
}

func (s *PostgresStoreSuite) TestMissingRecord() {
	keys, err := s.store.GetKeys(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Nil(keys)
}

func (s *PostgresStoreSuite) TestUpsertOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.store.SetKeys(ctx, "alice", []models.Key{"k1", "k2"}))
	s.Require().NoError(s.store.SetKeys(ctx, "alice", []models.Key{"k3"}))

	keys, err := s.store.GetKeys(ctx, "alice")
	s.Require().NoError(err)
	s.Equal([]models.Key{"k3"}, keys)
}

func (s *PostgresStoreSuite) TestEnsureSchemaIsIdempotent() {
	s.NoError(s.store.EnsureSchema(context.Background()))
}
