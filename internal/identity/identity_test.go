package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"keyproof/internal/identity/confirmation"
	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports/mocks"
	"keyproof/internal/identity/profile"
	"keyproof/internal/platform/config"
	"keyproof/internal/platform/logger"
	"keyproof/pkg/platform/sentinel"
)

type pipeline struct {
	svc       *Service
	nodes     *mocks.MockNodeSource
	providers *mocks.MockProviderSource
	repos     *mocks.MockRepoContentSource
	users     *mocks.MockUserInfoSource
	lookup    *mocks.MockProfileLookupSource
	pages     *mocks.MockWebPageSource
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	ctrl := gomock.NewController(t)
	p := &pipeline{
		nodes:     mocks.NewMockNodeSource(ctrl),
		providers: mocks.NewMockProviderSource(ctrl),
		repos:     mocks.NewMockRepoContentSource(ctrl),
		users:     mocks.NewMockUserInfoSource(ctrl),
		lookup:    mocks.NewMockProfileLookupSource(ctrl),
		pages:     mocks.NewMockWebPageSource(ctrl),
	}
	svc, err := New(context.Background(), &config.Config{}, Backends{}, Sources{
		Nodes:     p.nodes,
		Providers: p.providers,
		Repos:     p.repos,
		Users:     p.users,
		Lookup:    p.lookup,
		Pages:     p.pages,
	}, logger.Discard(), nil)
	require.NoError(t, err)
	p.svc = svc
	return p
}

func TestRunUnknownDriver(t *testing.T) {
	p := newPipeline(t)

	_, err := p.svc.Run(context.Background(), "nightly")

	assert.ErrorIs(t, err, ErrUnknownDriver)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestSourcesSweepFeedsTheReadModel(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	p.providers.EXPECT().ListAddresses(gomock.Any()).Return(nil, nil).AnyTimes()
	p.nodes.EXPECT().ListHeartbeats(gomock.Any()).Return([]models.NodeEntry{{Key: "k1", Identity: "alpha"}}, nil).AnyTimes()
	p.repos.EXPECT().GetFile(gomock.Any(), "alpha", "multiversx", "keys.json").Return(`["k1"]`, true, nil)
	p.repos.EXPECT().GetFile(gomock.Any(), "alpha", "elrond", "keys.json").Return("", false, nil)

	before, err := p.svc.ConfirmationMap(ctx)
	require.NoError(t, err)
	assert.False(t, before["k1"].Confirmed)

	report, err := p.svc.Run(ctx, DriverSources)
	require.NoError(t, err)
	assert.Equal(t, 1, report.(confirmation.SweepReport).Confirmed)

	after, err := p.svc.ConfirmationMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.KeyState{Identity: "alpha", Confirmed: true}, after["k1"])

	// The durable record now carries the store driver on its own.
	report, err = p.svc.Run(ctx, DriverStore)
	require.NoError(t, err)
	assert.Equal(t, 1, report.(confirmation.SweepReport).Confirmed)
}

func TestProfilesDriver(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	p.nodes.EXPECT().ListAll(gomock.Any()).Return([]models.NodeEntry{{Key: "k1", Identity: "alpha"}}, nil).AnyTimes()
	p.lookup.EXPECT().Lookup(gomock.Any(), "alpha").
		Return(&models.LookupResult{StatusOK: true, FullName: "Alpha"}, nil)

	report, err := p.svc.Run(ctx, DriverProfiles)
	require.NoError(t, err)
	assert.Equal(t, 1, report.(profile.RefreshReport).Resolved)

	profiles, err := p.svc.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Profile{{Identity: "alpha", Name: "Alpha"}}, profiles)
}

func TestConfirmIdentity(t *testing.T) {
	p := newPipeline(t)
	p.repos.EXPECT().GetFile(gomock.Any(), "beta", gomock.Any(), "keys.json").Return(`["b1"]`, true, nil).Times(2)

	result := p.svc.ConfirmIdentity(context.Background(), "beta")

	assert.True(t, result.Confirmed())
	assert.Equal(t, []models.Key{"b1"}, result.Keys)
}
