package routing

import (
	"errors"
	"math"
)

// ErrNoCandidates is returned when selection is invoked with an empty
// candidate slice. Callers are responsible for signaling "no route found"
// upstream; reaching the selector with nothing to select is a contract
// violation, never answered with a made-up default.
var ErrNoCandidates = errors.New("no candidates to select from")

// Cycling detour penalty: routes more than 20% longer than the shortest
// alternative are penalized with a 0.3 weight on the excess. The constants
// are behavior-compatible with the provider-tuned originals; treat them as
// tunables for future calibration.
const (
	cyclingDetourThreshold = 1.2
	cyclingDetourWeight    = 0.3
)

// scoreFunc assigns a score to one candidate; lower is better.
type scoreFunc func(c CandidateRoute) float64

// scorerFactory builds a scoring closure for a full candidate set, so
// scorers that need aggregate context (cycling's fleet-wide minimum
// distance) compute it once.
type scorerFactory func(candidates []CandidateRoute) scoreFunc

var profileScorers = map[TransportProfile]scorerFactory{
	// Driving favors the fastest route outright. It is also the fallback
	// for tags the map does not know.
	ProfileDriving: func([]CandidateRoute) scoreFunc {
		return func(c CandidateRoute) float64 { return c.Duration }
	},

	// Walking favors the shortest route.
	ProfileWalking: func([]CandidateRoute) scoreFunc {
		return func(c CandidateRoute) float64 { return c.Distance }
	},

	// Cycling favors speed but penalizes large detours: a route much longer
	// than the shortest alternative loses even if nominally faster.
	ProfileCycling: func(candidates []CandidateRoute) scoreFunc {
		minDistance := math.Inf(1)
		for _, c := range candidates {
			if c.Distance < minDistance {
				minDistance = c.Distance
			}
		}
		return func(c CandidateRoute) float64 {
			penalty := math.Max(0, (c.Distance-minDistance*cyclingDetourThreshold)/minDistance) * cyclingDetourWeight
			return c.Duration * (1 + penalty)
		}
	},
}

// SelectBest chooses the best candidate for the given profile. Ties are
// broken by input order: the first minimal candidate wins. Input candidates
// are never mutated.
func SelectBest(candidates []CandidateRoute, profile TransportProfile) (CandidateRoute, error) {
	if len(candidates) == 0 {
		return CandidateRoute{}, ErrNoCandidates
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	factory, ok := profileScorers[profile]
	if !ok {
		factory = profileScorers[ProfileDriving]
	}
	score := factory(candidates)

	best := candidates[0]
	bestScore := score(best)
	for _, c := range candidates[1:] {
		if s := score(c); s < bestScore {
			best = c
			bestScore = s
		}
	}
	return best, nil
}

// Summarize converts a selected route to presentation units: kilometers
// rounded to two decimals, minutes rounded to one. No selection logic.
func Summarize(route CandidateRoute, profile TransportProfile) Summary {
	return Summary{
		DistanceKm:      math.Round(route.Distance/1000*100) / 100,
		DurationMinutes: math.Round(route.Duration/60*10) / 10,
		Profile:         profile,
	}
}
