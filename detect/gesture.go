// Package detect carries hand tracker output into the simulation: typed detection
// frames, the recognised gesture categories and the websocket feed they arrive on.
package detect

// Gesture is a recognised hand gesture category.
type Gesture uint8

const (
	GestureNone Gesture = iota // Unrecognised or absent; never triggers anything
	GestureClosedFist
	GestureOpenPalm
	GesturePointingUp
	GestureThumbDown
	GestureThumbUp
	GestureVictory
	GestureILoveYou
)

// gestureNames holds the tracker category name for each gesture.
var gestureNames = [...]string{
	GestureNone:       "None",
	GestureClosedFist: "Closed_Fist",
	GestureOpenPalm:   "Open_Palm",
	GesturePointingUp: "Pointing_Up",
	GestureThumbDown:  "Thumb_Down",
	GestureThumbUp:    "Thumb_Up",
	GestureVictory:    "Victory",
	GestureILoveYou:   "ILoveYou",
}

// ParseGesture maps a tracker category name to a Gesture.
// Unknown labels map to GestureNone.
func ParseGesture(label string) Gesture {
	for i, name := range gestureNames {
		if name == label {
			return Gesture(i)
		}
	}
	return GestureNone
}

// String returns the tracker category name.
func (g Gesture) String() string {
	if int(g) < len(gestureNames) {
		return gestureNames[g]
	}
	return gestureNames[GestureNone]
}
