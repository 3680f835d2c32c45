// Package cloudtest holds behaviour checks shared by every DocumentStore
// implementation.
package cloudtest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/cloud"
)

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// RunStoreTests exercises get and merge-set semantics against an
// initialized store.
func RunStoreTests(t *testing.T, store cloud.DocumentStore) {
	ctx := context.Background()

	t.Run("missing document is nil", func(t *testing.T) {
		doc, err := store.Get(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("merge keeps unspecified fields", func(t *testing.T) {
		user := "merge-user"
		require.NoError(t, store.MergeSet(ctx, user, cloud.Document{
			"tasks":   raw(t, []map[string]any{{"id": "t1"}}),
			"routine": raw(t, []map[string]any{{"id": "r1"}}),
		}))
		require.NoError(t, store.MergeSet(ctx, user, cloud.Document{
			"tasks": raw(t, []map[string]any{{"id": "t2"}}),
		}))

		doc, err := store.Get(ctx, user)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.JSONEq(t, `[{"id":"t2"}]`, string(doc["tasks"]))
		assert.JSONEq(t, `[{"id":"r1"}]`, string(doc["routine"]))
	})

	t.Run("users are isolated", func(t *testing.T) {
		require.NoError(t, store.MergeSet(ctx, "alice", cloud.Document{"tasks": raw(t, []string{"a"})}))
		require.NoError(t, store.MergeSet(ctx, "bob", cloud.Document{"tasks": raw(t, []string{"b"})}))

		doc, err := store.Get(ctx, "alice")
		require.NoError(t, err)
		assert.JSONEq(t, `["a"]`, string(doc["tasks"]))
	})

	t.Run("empty array clears a field", func(t *testing.T) {
		user := "clear-user"
		require.NoError(t, store.MergeSet(ctx, user, cloud.Document{"projects": raw(t, []string{"p"})}))
		require.NoError(t, store.MergeSet(ctx, user, cloud.Document{"projects": raw(t, []string{})}))

		doc, err := store.Get(ctx, user)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(doc["projects"]))
	})
}
