// Package clitest builds a command Context backed by in-memory fakes.
package clitest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/ai"
	"github.com/julianstephens/harmony/internal/ai/aitest"
	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/config"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/state"
)

// Now is the fixed clock every Env uses: Monday 2024-01-01 09:00 UTC.
var Now = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type Env struct {
	Ctx   *cli.Context
	Out   *bytes.Buffer
	Store *cloud.MemoryStore
	AI    *aitest.Fake
}

// New opens a Context for the local user whose document starts as initial.
func New(t *testing.T, initial ...state.State) *Env {
	t.Helper()
	store := cloud.NewMemoryStore()
	if len(initial) > 0 {
		require.NoError(t, cloud.NewSyncer(store).Push(context.Background(), constants.LocalUserID, initial[0]))
	}

	env := &Env{Out: &bytes.Buffer{}, Store: store, AI: &aitest.Fake{}}
	env.Ctx = &cli.Context{
		Config: config.Config{
			Models: config.Models{
				Routine:   constants.DefaultRoutineModel,
				Breakdown: constants.DefaultBreakdownModel,
				Chat:      constants.DefaultChatModel,
			},
			Sync: config.Sync{Schedule: constants.DefaultSyncSchedule},
		},
		ConfigDir: t.TempDir(),
		Store:     store,
		APIKey:    "test-key",
		Out:       env.Out,
		Now:       func() time.Time { return Now },
		NewAI: func(context.Context, string) (ai.Service, error) {
			return env.AI, nil
		},
	}
	require.NoError(t, env.Ctx.Open(context.Background()))
	return env
}

// Saved reads back the persisted state for the local user.
func (e *Env) Saved(t *testing.T) state.State {
	t.Helper()
	st, err := cloud.NewSyncer(e.Store).Pull(context.Background(), constants.LocalUserID)
	require.NoError(t, err)
	require.NotNil(t, st)
	return *st
}
