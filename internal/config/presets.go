package config

import (
	"sort"

	"github.com/san-kum/posecam/internal/curve"
)

func menuCollection() CollectionConfig {
	return CollectionConfig{
		Name:            "Menu Camera Poses",
		Description:     "Collection of camera poses for menu transitions",
		DefaultDuration: 1.0,
		DefaultCurve:    curve.Spec{Name: DefaultCurve},
		Poses: []PoseConfig{
			{Name: "MainMenu", Position: [3]float64{0, 1.6, -8}, Duration: ptr(1.2)},
			{Name: "Options", Position: [3]float64{6, 2, -4}, Rotation: [3]float64{-35, 5, 0}, Curve: curve.Spec{Name: "ease_in_out_cubic"}},
			{Name: "Settings", Position: [3]float64{-6, 2, -4}, Rotation: [3]float64{35, 5, 0}, Curve: curve.Spec{Name: "ease_in_out_cubic"}},
			{Name: "Credits", Position: [3]float64{0, 8, -2}, Rotation: [3]float64{0, 60, 0}, Duration: ptr(2.0), Curve: curve.Spec{Name: "ease_out_back"}},
		},
	}
}

var Presets = map[string]*Config{
	"menu": {
		Dt: DefaultDt, MaxDuration: DefaultMaxDuration, Overshoot: "extrapolate", Start: "MainMenu",
		Collection: menuCollection(),
	},
	"preview": {
		Dt: DefaultDt, MaxDuration: DefaultMaxDuration, Overshoot: "clamp", Start: "Middle",
		Collection: CollectionConfig{
			Name:            "Preview Poses",
			DefaultDuration: 1.0,
			DefaultCurve:    curve.Spec{Name: "linear"},
			Poses: []PoseConfig{
				{Name: "Left", Position: [3]float64{-5, 1, -5}, Rotation: [3]float64{45, 0, 0}},
				{Name: "Middle", Position: [3]float64{0, 1, -7}},
				{Name: "Right", Position: [3]float64{5, 1, -5}, Rotation: [3]float64{-45, 0, 0}},
				{Name: "Top", Position: [3]float64{0, 10, 0}, Rotation: [3]float64{0, 90, 0}},
			},
		},
	},
	"orbit": {
		Dt: DefaultDt, MaxDuration: DefaultMaxDuration, Overshoot: "extrapolate", Start: "South",
		Collection: CollectionConfig{
			Name:            "Orbit",
			DefaultDuration: 1.5,
			DefaultCurve:    curve.Spec{Name: "ease_in_out"},
			Poses: []PoseConfig{
				{Name: "South", Position: [3]float64{0, 2, -8}},
				{Name: "East", Position: [3]float64{8, 2, 0}, Rotation: [3]float64{-90, 0, 0}},
				{Name: "North", Position: [3]float64{0, 2, 8}, Rotation: [3]float64{180, 0, 0}},
				{Name: "West", Position: [3]float64{-8, 2, 0}, Rotation: [3]float64{90, 0, 0}, Curve: curve.Spec{Name: "bounce"}},
			},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
