package engine

import "strings"

// Rooms of the base that ship with HomeQuest. Missions may use any room name;
// these only get aliases.
const (
	RoomKitchen  = "kitchen"
	RoomBathroom = "bathroom"
	RoomBedroom  = "bedroom"
	RoomLiving   = "living-room"
	RoomLaundry  = "laundry"
	RoomGarden   = "garden"
	RoomGarage   = "garage"
	RoomOffice   = "office"
)

// ParseRoom normalizes a room name. Empty input means "no room".
func ParseRoom(input string) string {
	s := strings.Join(strings.Fields(strings.ToLower(input)), "-")
	switch s {
	case "kitchen", "k":
		return RoomKitchen
	case "bathroom", "bath", "wc":
		return RoomBathroom
	case "bedroom", "bed":
		return RoomBedroom
	case "living-room", "living", "lounge":
		return RoomLiving
	case "laundry", "laundry-room":
		return RoomLaundry
	case "garden", "yard":
		return RoomGarden
	case "garage":
		return RoomGarage
	case "office", "study":
		return RoomOffice
	default:
		return s
	}
}
