package cloud_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/cloud/cloudtest"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

func sampleState() state.State {
	return state.State{
		Tasks:    []models.Task{{ID: "t1", Title: "Gym", DurationMinutes: 30, Category: models.CategoryPersonal, Date: "2024-01-02", StartTime: "18:00"}},
		Projects: []models.Project{{ID: "p1", Title: "Thesis", StartDate: "2024-01-01", Deadline: "2024-01-10"}},
		Routine:  []models.RoutineItem{{ID: "r1", Label: "Work", StartTime: "09:00", EndTime: "17:00", Days: []int{1, 2, 3}}},
		OffTimes: []models.OffTime{{ID: "o1", Label: "Day Off", Kind: models.OffTimeSingle, StartDate: "2024-01-05", EndDate: "2024-01-05"}},
		Chat:     []models.ChatMessage{{Role: models.RoleUser, Text: "hi", Timestamp: 1}},
		View:     models.ViewRoutine,
	}
}

func TestMemoryStoreConformance(t *testing.T) {
	cloudtest.RunStoreTests(t, cloud.NewMemoryStore())
}

func TestEncodeDecodeKeepsDocumentShape(t *testing.T) {
	doc, err := cloud.EncodeState(sampleState())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"tasks", "projects", "routine", "offTimes", "chatHistory"}, keys(doc))
	assert.Contains(t, string(doc["tasks"]), `"durationMinutes":30`)
	assert.Contains(t, string(doc["offTimes"]), `"type":"single"`)

	back, err := cloud.DecodeState(doc)
	require.NoError(t, err)
	want := sampleState()
	want.View = ""
	assert.Equal(t, want, back)
}

func TestEncodeWritesEmptyArrays(t *testing.T) {
	doc, err := cloud.EncodeState(state.State{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(doc["tasks"]))
	assert.JSONEq(t, `[]`, string(doc["chatHistory"]))
}

func TestSyncerRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := cloud.NewSyncer(cloud.NewMemoryStore())

	assert.Nil(t, s.Load(ctx, "u1"))

	s.Save(ctx, "u1", sampleState())
	got := s.Load(ctx, "u1")
	require.NotNil(t, got)
	assert.Len(t, got.Tasks, 1)
	assert.Equal(t, "Thesis", got.Projects[0].Title)
}

func TestSyncerSwallowsStoreErrors(t *testing.T) {
	ctx := context.Background()
	mem := cloud.NewMemoryStore()
	s := cloud.NewSyncer(mem)
	s.Save(ctx, "u1", sampleState())

	mem.Err = errors.New("unavailable")
	assert.Nil(t, s.Load(ctx, "u1"))
	assert.NotPanics(t, func() { s.Save(ctx, "u1", state.State{}) })

	_, err := s.Pull(ctx, "u1")
	assert.Error(t, err)
	assert.Error(t, s.Push(ctx, "u1", state.State{}))
}

func TestHydrateAndAutoSave(t *testing.T) {
	ctx := context.Background()
	mem := cloud.NewMemoryStore()
	s := cloud.NewSyncer(mem)
	s.Save(ctx, "u1", sampleState())

	store := state.NewStore(state.State{})
	assert.False(t, s.Hydrate(ctx, "nobody", store))
	require.True(t, s.Hydrate(ctx, "u1", store))
	assert.Len(t, store.Snapshot().Tasks, 1)

	s.AutoSave(ctx, "u1", store)
	require.NoError(t, store.Dispatch(state.DeleteProject{ID: "p1"}))

	saved := s.Load(ctx, "u1")
	require.NotNil(t, saved)
	assert.Empty(t, saved.Projects)
	assert.Len(t, saved.Routine, 1)
}

func TestMerge(t *testing.T) {
	a := cloud.Document{"tasks": []byte(`[1]`), "routine": []byte(`[2]`)}
	b := cloud.Document{"tasks": []byte(`[3]`)}
	m := cloud.Merge(a, b)
	assert.Equal(t, `[3]`, string(m["tasks"]))
	assert.Equal(t, `[2]`, string(m["routine"]))
	assert.Equal(t, `[1]`, string(a["tasks"]))
}

func keys(d cloud.Document) []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}
