package model

// Dimension is one of the six survey dimensions a template may
// constrain on. The set is closed; requirement maps are keyed by it.
type Dimension string

const (
	DimHomeType    Dimension = "homeType"
	DimHeating     Dimension = "heating"
	DimCooling     Dimension = "cooling"
	DimWaterHeater Dimension = "waterHeater"
	DimFeatures    Dimension = "features"
	DimEquipment   Dimension = "equipment"
)

var Dimensions = []Dimension{
	DimHomeType,
	DimHeating,
	DimCooling,
	DimWaterHeater,
	DimFeatures,
	DimEquipment,
}

// Multi reports whether the dimension is multi-select.
func (d Dimension) Multi() bool {
	return d == DimFeatures || d == DimEquipment
}

// HouseholdProfile holds the survey answers. Empty strings and empty
// slices mean "unanswered"; an unanswered dimension never constrains
// template selection.
type HouseholdProfile struct {
	HomeType    string   `json:"homeType,omitempty" yaml:"homeType,omitempty"`
	Heating     string   `json:"heating,omitempty" yaml:"heating,omitempty"`
	Cooling     string   `json:"cooling,omitempty" yaml:"cooling,omitempty"`
	WaterHeater string   `json:"waterHeater,omitempty" yaml:"waterHeater,omitempty"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
	Equipment   []string `json:"equipment,omitempty" yaml:"equipment,omitempty"`
}

// Values returns the selected values for a dimension. Single-select
// dimensions yield zero or one value.
func (p HouseholdProfile) Values(d Dimension) []string {
	switch d {
	case DimHomeType:
		return single(p.HomeType)
	case DimHeating:
		return single(p.Heating)
	case DimCooling:
		return single(p.Cooling)
	case DimWaterHeater:
		return single(p.WaterHeater)
	case DimFeatures:
		return p.Features
	case DimEquipment:
		return p.Equipment
	}
	return nil
}

func single(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

// TaskTemplate is an immutable catalog entry.
type TaskTemplate struct {
	Title         string                 `json:"title" yaml:"title"`
	Category      Category               `json:"category" yaml:"category"`
	FrequencyDays int                    `json:"frequencyDays" yaml:"frequency_days"`
	Notes         string                 `json:"notes,omitempty" yaml:"notes,omitempty"`
	Essential     bool                   `json:"essential,omitempty" yaml:"essential,omitempty"`
	Requires      map[Dimension][]string `json:"requires,omitempty" yaml:"requires,omitempty"`
}
