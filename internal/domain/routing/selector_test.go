package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBest_DrivingPicksFastest(t *testing.T) {
	candidates := []CandidateRoute{
		{Distance: 10000, Duration: 1200},
		{Distance: 12000, Duration: 900},
		{Distance: 9000, Duration: 1500},
	}

	best, err := SelectBest(candidates, ProfileDriving)
	require.NoError(t, err)
	assert.Equal(t, 900.0, best.Duration)
}

func TestSelectBest_WalkingPicksShortest(t *testing.T) {
	candidates := []CandidateRoute{
		{Distance: 5000, Duration: 3600},
		{Distance: 3000, Duration: 4000},
		{Distance: 4000, Duration: 3000},
	}

	best, err := SelectBest(candidates, ProfileWalking)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, best.Distance)
}

func TestSelectBest_CyclingPenalizesLongDetour(t *testing.T) {
	// B is nominally faster but 50% longer than A. The detour exceeds the
	// 20%-over-shortest threshold by enough that the penalty pushes B's
	// score (1700 * 1.09 = 1853) above A's raw duration, so A must win.
	a := CandidateRoute{Distance: 10000, Duration: 1800}
	b := CandidateRoute{Distance: 15000, Duration: 1700}

	best, err := SelectBest([]CandidateRoute{a, b}, ProfileCycling)
	require.NoError(t, err)
	assert.Equal(t, a, best)
}

func TestSelectBest_CyclingFavorsSpeedWhenDistancesComparable(t *testing.T) {
	// B is only 10% longer, under the detour threshold: no penalty, so the
	// faster route wins.
	a := CandidateRoute{Distance: 10000, Duration: 1800}
	b := CandidateRoute{Distance: 11000, Duration: 1700}

	best, err := SelectBest([]CandidateRoute{a, b}, ProfileCycling)
	require.NoError(t, err)
	assert.Equal(t, b, best)
}

func TestSelectBest_SingleCandidateReturnedForAnyProfile(t *testing.T) {
	only := CandidateRoute{Distance: 7500, Duration: 600}

	for _, profile := range []TransportProfile{ProfileDriving, ProfileWalking, ProfileCycling, TransportProfile("hovercraft")} {
		best, err := SelectBest([]CandidateRoute{only}, profile)
		require.NoError(t, err)
		assert.Equal(t, only, best)
	}
}

func TestSelectBest_UnknownProfileFallsBackToDriving(t *testing.T) {
	candidates := []CandidateRoute{
		{Distance: 1000, Duration: 500},
		{Distance: 9000, Duration: 300},
	}

	best, err := SelectBest(candidates, TransportProfile("skateboard"))
	require.NoError(t, err)
	assert.Equal(t, 300.0, best.Duration, "unknown profiles use the driving rule (minimum duration)")
}

func TestSelectBest_TieGoesToFirstCandidate(t *testing.T) {
	first := CandidateRoute{Distance: 5000, Duration: 1000}
	second := CandidateRoute{Distance: 6000, Duration: 1000}

	best, err := SelectBest([]CandidateRoute{first, second}, ProfileDriving)
	require.NoError(t, err)
	assert.Equal(t, first, best)
}

func TestSelectBest_EmptyCandidatesFails(t *testing.T) {
	_, err := SelectBest(nil, ProfileDriving)
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = SelectBest([]CandidateRoute{}, ProfileWalking)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestSummarize_ConvertsAndRounds(t *testing.T) {
	s := Summarize(CandidateRoute{Distance: 3456, Duration: 100}, ProfileDriving)

	assert.Equal(t, 3.46, s.DistanceKm, "kilometers rounded to two decimals")
	assert.Equal(t, 1.7, s.DurationMinutes, "minutes rounded to one decimal")
	assert.Equal(t, ProfileDriving, s.Profile)
}

func TestParseProfile(t *testing.T) {
	assert.Equal(t, ProfileWalking, ParseProfile("walking"))
	assert.Equal(t, ProfileCycling, ParseProfile("cycling"))
	assert.Equal(t, ProfileDriving, ParseProfile("driving"))

	// Unknown and case-mismatched tags default to driving.
	assert.Equal(t, ProfileDriving, ParseProfile("transit"))
	assert.Equal(t, ProfileDriving, ParseProfile("Walking"))
	assert.Equal(t, ProfileDriving, ParseProfile(""))
}
