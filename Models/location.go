package Models

import (
	"math"

	"gorm.io/gorm"
)

// Location types used across the cleaning plans.
const (
	LocationInfirmary = "infirmerie"
	LocationClassroom = "classe"
	LocationSanitary  = "sanitaire"
	LocationOffice    = "bureau"
	LocationWorkshop  = "atelier"
)

// defaultDurations holds the fallback cleaning time (minutes) per location
// type when no surface data is available.
var defaultDurations = map[string]int{
	LocationInfirmary: 20,
	LocationClassroom: 15,
	LocationSanitary:  30,
	LocationOffice:    10,
	LocationWorkshop:  25,
}

type Location struct {
	gorm.Model
	PublicID            string  `json:"public_id" gorm:"uniqueIndex"`
	Name                string  `json:"name"`
	Floor               string  `json:"floor"`
	Type                string  `json:"type"`
	SurfaceArea         float64 `json:"surface_area"`
	CleaningCoefficient float64 `json:"cleaning_coefficient"`
	OrganizationID      uint    `json:"organization_id" gorm:"index"`
}

// DefaultDuration computes the cleaning time in minutes for the location:
// ceil(surface * coefficient) when surface data exists, otherwise the
// per-type fallback (15 for unknown types).
func (l *Location) DefaultDuration() int {
	if l.SurfaceArea > 0 && l.CleaningCoefficient > 0 {
		return int(math.Ceil(l.SurfaceArea * l.CleaningCoefficient))
	}
	if d, ok := defaultDurations[l.Type]; ok {
		return d
	}
	return 15
}
