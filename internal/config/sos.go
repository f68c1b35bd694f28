package config

// SOSConfig bounds the nearest-help-center search performed on every trigger.
type SOSConfig struct {
	SearchRadiusKM   float64 `yaml:"search_radius_km"`
	MaxNotifyCenters int     `yaml:"max_notify_centers"`
}

func loadSOSConfig() *SOSConfig {
	return &SOSConfig{
		SearchRadiusKM:   getEnvAsFloat64("SOS_SEARCH_RADIUS_KM", 10.0),
		MaxNotifyCenters: getEnvAsInt("SOS_MAX_NOTIFY_CENTERS", 5),
	}
}
