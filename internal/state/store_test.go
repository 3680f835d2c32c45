package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/models"
)

func TestStoreDefaultsToDashboard(t *testing.T) {
	s := NewStore(State{})
	assert.Equal(t, models.ViewDashboard, s.Snapshot().View)
}

func TestStoreDispatchNotifiesListeners(t *testing.T) {
	s := NewStore(State{})
	var got []State
	s.Subscribe(func(st State) { got = append(got, st) })

	require.NoError(t, s.Dispatch(AddProject{Project: project("p")}))
	require.Len(t, got, 1)
	assert.Len(t, got[0].Projects, 1)

	// rejected actions do not notify
	assert.Error(t, s.Dispatch(DeleteProject{ID: "missing"}))
	assert.Len(t, got, 1)
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore(State{Tasks: []models.Task{task("a", "2024-01-01", "", "")}})
	snap := s.Snapshot()
	snap.Tasks[0].Title = "changed"
	assert.Equal(t, "task a", s.Snapshot().Tasks[0].Title)
}

func TestStoreReplaceKeepsView(t *testing.T) {
	s := NewStore(State{})
	require.NoError(t, s.Dispatch(SetView{View: models.ViewRoutine}))
	s.Replace(State{Projects: []models.Project{project("p")}})

	snap := s.Snapshot()
	assert.Equal(t, models.ViewRoutine, snap.View)
	assert.Len(t, snap.Projects, 1)
}

func TestStoreConcurrentDispatch(t *testing.T) {
	s := NewStore(State{})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Dispatch(AddTask{Task: models.NewTask(models.TaskDraft{}, "2024-01-01")})
		}()
	}
	wg.Wait()
	assert.Len(t, s.Snapshot().Tasks, 20)
}
