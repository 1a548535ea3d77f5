package routing

import "fmt"

// Synthesize expands a route's maneuver steps into display-ready navigation
// steps. Exactly one NavigationStep is produced per ManeuverStep, in the
// same order; steps are never dropped, merged or fabricated.
func Synthesize(route CandidateRoute) []NavigationStep {
	steps := make([]NavigationStep, len(route.Steps))
	for i, step := range route.Steps {
		steps[i] = NavigationStep{
			Instruction:      GenerateInstruction(step),
			Distance:         step.Distance,
			Duration:         step.Duration,
			ManeuverType:     step.Maneuver.Type,
			ManeuverModifier: step.Maneuver.Modifier,
			RoadName:         step.Name,
		}
	}
	return steps
}

// GenerateInstruction renders a single maneuver step as human-readable text.
// The case table below is an observable contract consumed for display;
// clients match on the exact strings, so keep the wording stable. Anything
// the table does not cover falls through to the generic distance line.
func GenerateInstruction(step ManeuverStep) string {
	maneuverType := step.Maneuver.Type
	modifier := step.Maneuver.Modifier
	roadName := step.Name

	switch maneuverType {
	case "depart":
		if roadName != "" {
			return fmt.Sprintf("Start on %s", roadName)
		}
		return "Start your journey"

	case "arrive":
		return "Arrive at destination"

	case "turn":
		if modifier == "left" || modifier == "right" {
			if roadName != "" {
				return fmt.Sprintf("Turn %s onto %s", modifier, roadName)
			}
			return fmt.Sprintf("Turn %s", modifier)
		}
		// Turns without a left/right modifier fall through to the fallback.

	case "continue":
		if roadName != "" {
			return fmt.Sprintf("Continue on %s", roadName)
		}
		return "Continue straight"

	case "merge":
		if roadName != "" {
			return fmt.Sprintf("Merge onto %s", roadName)
		}
		return "Merge"

	case "roundabout":
		if roadName != "" {
			return fmt.Sprintf("Take the roundabout onto %s", roadName)
		}
		return "Take the roundabout"
	}

	return fmt.Sprintf("Continue for %d meters", int(step.Distance))
}
