package schema

// ToolName is the name of the structured-output tool the model is forced to call.
const ToolName = "scene_analysis"

// ToolDescription steers the model toward recording the analysis via the tool.
const ToolDescription = "Record the structured analysis of the street camera image"

// Property is a JSON-schema node. Leaf nodes carry a primitive type, an
// optional closed enum set and a description used to steer the model;
// object nodes carry nested properties and their required keys.
type Property struct {
	Type        string               `json:"type,omitempty"`
	Description string               `json:"description,omitempty"`
	Enum        []string             `json:"enum,omitempty"`
	Properties  map[string]*Property `json:"properties,omitempty"`
	Required    []string             `json:"required,omitempty"`
}

// Definition returns the canonical scene analysis schema. It is built from
// literals only, so every invocation yields a structurally identical object.
func Definition() *Property {
	return &Property{
		Type: "object",
		Properties: map[string]*Property{
			"timestamp": {
				Type:        "string",
				Description: "ISO 8601 timestamp estimated from the image (YYYY-MM-DDTHH:MM:SS)",
			},
			"day_of_week": {
				Type: "string",
				Enum: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			},
			"daylight": {
				Type: "string",
				Enum: []string{"night", "dawn", "morning", "midday", "afternoon", "dusk"},
			},
			"activity": {
				Type: "object",
				Properties: map[string]*Property{
					"vehicles":          {Type: "integer", Description: "Total vehicles visible"},
					"pedestrians":       {Type: "integer", Description: "Total pedestrians visible"},
					"taxis":             {Type: "integer", Description: "Taxis or rideshare vehicles visible"},
					"delivery_vehicles": {Type: "integer", Description: "Delivery trucks/vans visible"},
					"bikes_scooters":    {Type: "integer", Description: "Bikes or scooters visible"},
				},
				Required: []string{"vehicles", "pedestrians", "taxis", "delivery_vehicles", "bikes_scooters"},
			},
			"atmosphere": {
				Type: "object",
				Properties: map[string]*Property{
					"visibility_miles": {Type: "number", Description: "Estimated visibility in miles"},
					"precipitation": {
						Type: "string",
						Enum: []string{"none", "light_rain", "heavy_rain", "light_snow", "heavy_snow", "sleet", "fog"},
					},
					"road_condition": {
						Type: "string",
						Enum: []string{"dry", "wet", "snow_covered", "icy", "slushy", "flooded"},
					},
					"sky_condition": {
						Type: "string",
						Enum: []string{"clear", "partly_cloudy", "overcast", "heavy_clouds", "not_visible"},
					},
					"fog_haze": {Type: "boolean", Description: "Whether fog or haze is present"},
				},
				Required: []string{"visibility_miles", "precipitation", "road_condition", "sky_condition", "fog_haze"},
			},
			"building_occupancy": {
				Type: "object",
				Properties: map[string]*Property{
					"residential_windows_lit_pct": {Type: "integer", Description: "Percentage of residential windows that appear lit (0-100)"},
					"office_windows_lit_pct":      {Type: "integer", Description: "Percentage of office windows that appear lit (0-100)"},
				},
				Required: []string{"residential_windows_lit_pct", "office_windows_lit_pct"},
			},
			"street_features": {
				Type: "object",
				Properties: map[string]*Property{
					"street_lights_on":       {Type: "boolean"},
					"holiday_decorations_on": {Type: "boolean", Description: "Whether holiday decorations/lights are illuminated"},
					"wells_fargo_sign_on":    {Type: "boolean", Description: "Whether the Wells Fargo sign is lit up"},
					"sidewalks_cleared":      {Type: "boolean", Description: "Whether sidewalks appear cleared of snow/debris"},
					"trash_bins_visible":     {Type: "boolean"},
				},
				Required: []string{"street_lights_on", "holiday_decorations_on", "wells_fargo_sign_on", "sidewalks_cleared", "trash_bins_visible"},
			},
			"seasonal": {
				Type: "object",
				Properties: map[string]*Property{
					"tree_foliage": {
						Type: "string",
						Enum: []string{"bare", "budding", "full", "autumn_colors", "mixed"},
					},
					"holiday_decorations_present": {Type: "boolean", Description: "Whether any holiday decorations are visible (lit or not)"},
					"season_estimate": {
						Type: "string",
						Enum: []string{"winter", "spring", "summer", "fall"},
					},
				},
				Required: []string{"tree_foliage", "holiday_decorations_present", "season_estimate"},
			},
			"urban_vibe": {
				Type: "object",
				Properties: map[string]*Property{
					"activity_level": {
						Type: "string",
						Enum: []string{"dead", "low", "moderate", "busy", "hectic"},
					},
					"hustle_score":     {Type: "integer", Description: "1-10 scale of how busy/hustling the scene feels"},
					"cozy_factor":      {Type: "integer", Description: "1-10 scale of how cozy/inviting the scene feels"},
					"would_go_outside": {Type: "boolean", Description: "Whether the conditions look inviting enough to go outside"},
				},
				Required: []string{"activity_level", "hustle_score", "cozy_factor", "would_go_outside"},
			},
		},
		Required: []string{"timestamp", "day_of_week", "daylight", "activity", "atmosphere", "building_occupancy", "street_features", "seasonal", "urban_vibe"},
	}
}
