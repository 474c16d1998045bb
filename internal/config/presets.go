package config

import "github.com/san-kum/gravbench/internal/engine"

// Presets are named run profiles. Only the fields that differ from the
// defaults are worth varying: everything else is the reference tuning.
var Presets = map[string]func() engine.Params{
	"quick": func() engine.Params {
		p := engine.DefaultParams()
		p.DurationSec = 10
		return p
	},
	"standard": func() engine.Params {
		return engine.DefaultParams()
	},
	"marathon": func() engine.Params {
		p := engine.DefaultParams()
		p.DurationSec = 120
		return p
	},
	"gentle": func() engine.Params {
		p := engine.DefaultParams()
		p.DurationSec = 15
		p.InitialPopulation = 500
		p.RampHighAdd = 250
		p.RampDefaultAdd = 100
		p.RampLowAdd = 25
		return p
	},
}

func GetPreset(name string) (engine.Params, bool) {
	f, ok := Presets[name]
	if !ok {
		return engine.Params{}, false
	}
	return f(), true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
