package models

import "time"

// SkillType is the specialisation a mechanic advertises.
type SkillType string

const (
	SkillGeneralRepair SkillType = "GENERAL_REPAIR"
	SkillTyres         SkillType = "TYRES"
	SkillElectrical    SkillType = "ELECTRICAL"
	SkillEngine        SkillType = "ENGINE"
	SkillBattery       SkillType = "BATTERY"
)

// SkillTypes lists the known skills in display order.
var SkillTypes = []SkillType{
	SkillGeneralRepair,
	SkillTyres,
	SkillElectrical,
	SkillEngine,
	SkillBattery,
}

var skillLabels = map[SkillType]string{
	SkillGeneralRepair: "General Repair",
	SkillTyres:         "Tyres",
	SkillElectrical:    "Electrical",
	SkillEngine:        "Engine",
	SkillBattery:       "Battery",
}

// Label returns the human readable name, or the raw value for unknown skills.
func (s SkillType) Label() string {
	if l, ok := skillLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is a known skill.
func (s SkillType) Valid() bool {
	_, ok := skillLabels[s]
	return ok
}

// MechanicProfile is the mechanic-owned availability and location record.
type MechanicProfile struct {
	ID           int64     `json:"id"`
	User         *User     `json:"user"`
	SkillType    SkillType `json:"skill_type"`
	Availability bool      `json:"availability"`
	Latitude     *Decimal  `json:"latitude"`
	Longitude    *Decimal  `json:"longitude"`
	RatingAvg    Decimal   `json:"rating_avg"`
	RatingCount  int       `json:"rating_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasLocation reports whether both coordinates are set.
func (p *MechanicProfile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// MechanicProfileUpdate is the body of POST /mechanic/profile/update/.
type MechanicProfileUpdate struct {
	SkillType    SkillType `json:"skill_type"`
	Availability bool      `json:"availability"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
}

// MechanicCandidate is a nearby mechanic with the backend-computed distance
// to the requesting customer.
type MechanicCandidate struct {
	ID           int64     `json:"id"`
	User         User      `json:"user"`
	SkillType    SkillType `json:"skill_type"`
	Availability bool      `json:"availability"`
	Latitude     *Decimal  `json:"latitude"`
	Longitude    *Decimal  `json:"longitude"`
	RatingAvg    Decimal   `json:"rating_avg"`
	RatingCount  int       `json:"rating_count"`
	DistanceKm   *Decimal  `json:"distance_km"`
}

// Distance returns the distance in kilometres, 0 when the backend sent none.
func (c MechanicCandidate) Distance() float64 {
	if c.DistanceKm == nil {
		return 0
	}
	return c.DistanceKm.Float64()
}
