package osrm

import "fmt"

// Fixed lookup from OSRM maneuver type/modifier to a human-readable phrase.
// Unrecognized combinations fall through to a generic instruction.
var turnPhrases = map[string]string{
	"left":         "Turn left",
	"right":        "Turn right",
	"slight left":  "Turn slightly left",
	"slight right": "Turn slightly right",
	"sharp left":   "Make a sharp left",
	"sharp right":  "Make a sharp right",
	"straight":     "Continue straight",
	"uturn":        "Make a U-turn",
}

// Instruction translates one maneuver triple into display text.
func Instruction(maneuverType, modifier, road string) string {
	switch maneuverType {
	case "depart":
		return withRoad("Depart", road)
	case "arrive":
		return "Arrive at destination"
	case "roundabout", "rotary":
		return withRoad("Take the roundabout", road)
	case "turn", "end of road", "fork":
		if phrase, ok := turnPhrases[modifier]; ok {
			return withRoad(phrase, road)
		}
		return withRoad("Turn", road)
	case "continue", "new name":
		return withRoad("Continue straight", road)
	case "merge":
		return withRoad("Merge", road)
	case "on ramp":
		return withRoad("Take the ramp", road)
	case "off ramp":
		return withRoad("Take the exit", road)
	default:
		return withRoad("Continue", road)
	}
}

func withRoad(phrase, road string) string {
	if road == "" {
		return phrase
	}
	return fmt.Sprintf("%s onto %s", phrase, road)
}

func maneuverDescriptor(maneuverType, modifier string) string {
	if modifier == "" {
		return maneuverType
	}
	return maneuverType + " " + modifier
}
