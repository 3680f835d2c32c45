package offtimes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/cli/clitest"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

func TestOffTimeAddDefaults(t *testing.T) {
	tests := []struct {
		kind  string
		label string
	}{
		{"single", "Day Off"},
		{"range", "Vacation"},
		{"weekend", "Weekend Off"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			env := clitest.New(t)
			require.NoError(t, (&OffTimeAddCmd{Kind: tt.kind}).Run(env.Ctx))

			saved := env.Saved(t)
			require.Len(t, saved.OffTimes, 1)
			o := saved.OffTimes[0]
			assert.Equal(t, tt.label, o.Label)
			assert.Equal(t, "2024-01-01", o.StartDate)
			assert.Equal(t, "2024-01-01", o.EndDate)
		})
	}
}

func TestOffTimeAddRange(t *testing.T) {
	env := clitest.New(t)
	require.NoError(t, (&OffTimeAddCmd{Kind: "range", Label: "Trip", Start: "2024-03-01", End: "2024-03-08"}).Run(env.Ctx))

	o := env.Saved(t).OffTimes[0]
	assert.Equal(t, "Trip", o.Label)
	assert.Equal(t, "2024-03-01", o.StartDate)
	assert.Equal(t, "2024-03-08", o.EndDate)
}

func TestOffTimeSetStartMirrorsSingle(t *testing.T) {
	env := clitest.New(t, state.State{OffTimes: []models.OffTime{
		{ID: "o1-single", Label: "Day Off", Kind: models.OffTimeSingle, StartDate: "2024-01-01", EndDate: "2024-01-01"},
		{ID: "o2-range", Label: "Vacation", Kind: models.OffTimeRange, StartDate: "2024-01-01", EndDate: "2024-01-07"},
	}})

	require.NoError(t, (&OffTimeSetStartCmd{ID: "o1", Date: "2024-02-14"}).Run(env.Ctx))
	require.NoError(t, (&OffTimeSetStartCmd{ID: "o2", Date: "2024-01-03"}).Run(env.Ctx))

	saved := env.Saved(t).OffTimes
	assert.Equal(t, "2024-02-14", saved[0].StartDate)
	assert.Equal(t, "2024-02-14", saved[0].EndDate)
	assert.Equal(t, "2024-01-03", saved[1].StartDate)
	assert.Equal(t, "2024-01-07", saved[1].EndDate)

	require.NoError(t, (&OffTimeSetEndCmd{ID: "o2", Date: "2024-01-10"}).Run(env.Ctx))
	assert.Equal(t, "2024-01-10", env.Saved(t).OffTimes[1].EndDate)
}

func TestOffTimeSetEndOnlyForRanges(t *testing.T) {
	env := clitest.New(t, state.State{OffTimes: []models.OffTime{
		{ID: "o1-single", Label: "Day Off", Kind: models.OffTimeSingle, StartDate: "2024-01-01", EndDate: "2024-01-01"},
		{ID: "o2-range", Label: "Vacation", Kind: models.OffTimeRange, StartDate: "2024-01-05", EndDate: "2024-01-07"},
	}})

	err := (&OffTimeSetEndCmd{ID: "o1", Date: "2024-01-04"}).Run(env.Ctx)
	assert.ErrorContains(t, err, "only range off-times")
	assert.Equal(t, "2024-01-01", env.Saved(t).OffTimes[0].EndDate)

	err = (&OffTimeSetEndCmd{ID: "o2", Date: "2024-01-02"}).Run(env.Ctx)
	assert.Error(t, err)
	assert.Equal(t, "2024-01-07", env.Saved(t).OffTimes[1].EndDate)
}

func TestOffTimeAddRejectsBackwardsRange(t *testing.T) {
	env := clitest.New(t)
	err := (&OffTimeAddCmd{Kind: "range", Start: "2024-03-08", End: "2024-03-01"}).Run(env.Ctx)
	assert.Error(t, err)
}

func TestOffTimeListAndDelete(t *testing.T) {
	env := clitest.New(t)
	require.NoError(t, (&OffTimeListCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "No off-times.")

	require.NoError(t, (&OffTimeAddCmd{Kind: "weekend"}).Run(env.Ctx))
	id := env.Saved(t).OffTimes[0].ID

	env.Out.Reset()
	require.NoError(t, (&OffTimeListCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "every weekend")

	require.NoError(t, (&OffTimeDeleteCmd{ID: id}).Run(env.Ctx))
	assert.Empty(t, env.Saved(t).OffTimes)
}
