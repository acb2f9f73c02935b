package deployment

// ZoneCode identifies one of the fixed yard areas of a deployment.
type ZoneCode string

const (
	ZoneFrontYard    ZoneCode = "FY"
	ZoneBackYard     ZoneCode = "BY"
	ZoneSideWalkway  ZoneCode = "SW"
)

// ZoneDef describes a fixed zone: its display name and its single power
// receptacle. The zone set is created with the deployment and never changes.
type ZoneDef struct {
	Code         ZoneCode
	Name         string
	ReceptacleID string
}

// Zones returns the fixed zone set, in board order.
func Zones() []ZoneDef {
	return []ZoneDef{
		{Code: ZoneFrontYard, Name: "Front Yard", ReceptacleID: "RCP-FY-1"},
		{Code: ZoneBackYard, Name: "Back Yard", ReceptacleID: "RCP-BY-1"},
		{Code: ZoneSideWalkway, Name: "Side Walkway", ReceptacleID: "RCP-SW-1"},
	}
}

// ValidZone reports whether code names one of the fixed zones.
func ValidZone(code ZoneCode) bool {
	for _, z := range Zones() {
		if z.Code == code {
			return true
		}
	}
	return false
}
