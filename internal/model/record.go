package model

// SceneAnalysisRecord is the structured result of analyzing one street
// camera image. Field names and grouping mirror the scene_analysis tool
// schema; one record is persisted as JSON per analyzed image.
type SceneAnalysisRecord struct {
	Timestamp         string            `json:"timestamp"`
	DayOfWeek         string            `json:"day_of_week"`
	Daylight          string            `json:"daylight"`
	Activity          Activity          `json:"activity"`
	Atmosphere        Atmosphere        `json:"atmosphere"`
	BuildingOccupancy BuildingOccupancy `json:"building_occupancy"`
	StreetFeatures    StreetFeatures    `json:"street_features"`
	Seasonal          Seasonal          `json:"seasonal"`
	UrbanVibe         UrbanVibe         `json:"urban_vibe"`
}

// Activity holds counts of what is visibly moving through the scene.
type Activity struct {
	Vehicles         int `json:"vehicles"`
	Pedestrians      int `json:"pedestrians"`
	Taxis            int `json:"taxis"`
	DeliveryVehicles int `json:"delivery_vehicles"`
	BikesScooters    int `json:"bikes_scooters"`
}

// Atmosphere describes weather and road state.
type Atmosphere struct {
	VisibilityMiles float64 `json:"visibility_miles"`
	Precipitation   string  `json:"precipitation"`
	RoadCondition   string  `json:"road_condition"`
	SkyCondition    string  `json:"sky_condition"`
	FogHaze         bool    `json:"fog_haze"`
}

// BuildingOccupancy estimates how lit the surrounding buildings are.
type BuildingOccupancy struct {
	ResidentialWindowsLitPct int `json:"residential_windows_lit_pct"`
	OfficeWindowsLitPct      int `json:"office_windows_lit_pct"`
}

// StreetFeatures flags fixed street furniture state.
type StreetFeatures struct {
	StreetLightsOn       bool `json:"street_lights_on"`
	HolidayDecorationsOn bool `json:"holiday_decorations_on"`
	WellsFargoSignOn     bool `json:"wells_fargo_sign_on"`
	SidewalksCleared     bool `json:"sidewalks_cleared"`
	TrashBinsVisible     bool `json:"trash_bins_visible"`
}

// Seasonal captures season indicators.
type Seasonal struct {
	TreeFoliage               string `json:"tree_foliage"`
	HolidayDecorationsPresent bool   `json:"holiday_decorations_present"`
	SeasonEstimate            string `json:"season_estimate"`
}

// UrbanVibe is the subjective read of the scene.
type UrbanVibe struct {
	ActivityLevel  string `json:"activity_level"`
	HustleScore    int    `json:"hustle_score"`
	CozyFactor     int    `json:"cozy_factor"`
	WouldGoOutside bool   `json:"would_go_outside"`
}
