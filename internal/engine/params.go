package engine

import "fmt"

// Reference tuning. Exposed as named constants so callers and tests can refer
// to them without carrying a full Params value around.
const (
	DefaultDurationSec         = 30.0
	DefaultSamplingIntervalMs  = 500
	DefaultInitialPopulation   = 2500
	DefaultG                   = 0.5
	DefaultCenterPull          = 0.00001
	DefaultSofteningSq         = 100.0
	DefaultStressCoeff         = 1e-5
	DefaultBoundaryDistance    = 4000.0
	DefaultBoundaryRestitution = -0.8
	DefaultStrideThreshold     = 8000
	DefaultStrideDivisor       = 4000
	DefaultRampHighFPS         = 45.0
	DefaultRampHighAdd         = 1000
	DefaultRampLowFPS          = 15.0
	DefaultRampLowAdd          = 100
	DefaultRampDefaultAdd      = 400
	DefaultDt                  = 0.5
	DefaultSpawnRadius         = 400.0
	DefaultSpawnSpeed          = 2.0
	DefaultMassMin             = 1.0
	DefaultMassMax             = 4.0
	DefaultSizeMin             = 2.0
	DefaultSizeMax             = 6.0
	DefaultStressFullScale     = 20000
)

// Params holds every tunable of the benchmark. The yaml tags are consumed by
// internal/config; the engine itself never touches the filesystem.
type Params struct {
	DurationSec        float64 `yaml:"duration_sec"`
	SamplingIntervalMs int     `yaml:"sampling_interval_ms"`
	InitialPopulation  int     `yaml:"initial_population"`

	G                   float64 `yaml:"g"`
	CenterPull          float64 `yaml:"center_pull"`
	SofteningSq         float64 `yaml:"softening_sq"`
	StressCoeff         float64 `yaml:"stress_coeff"`
	BoundaryDistance    float64 `yaml:"boundary_distance"`
	BoundaryRestitution float64 `yaml:"boundary_restitution"`
	StrideThreshold     int     `yaml:"stride_threshold"`
	StrideDivisor       int     `yaml:"stride_divisor"`
	Dt                  float64 `yaml:"dt"`

	RampHighFPS    float64 `yaml:"ramp_high_fps"`
	RampHighAdd    int     `yaml:"ramp_high_add"`
	RampLowFPS     float64 `yaml:"ramp_low_fps"`
	RampLowAdd     int     `yaml:"ramp_low_add"`
	RampDefaultAdd int     `yaml:"ramp_default_add"`

	SpawnRadius float64 `yaml:"spawn_radius"`
	SpawnSpeed  float64 `yaml:"spawn_speed"`
	MassMin     float64 `yaml:"mass_min"`
	MassMax     float64 `yaml:"mass_max"`
	SizeMin     float64 `yaml:"size_min"`
	SizeMax     float64 `yaml:"size_max"`

	// StressFullScale is the population at which the reported stress level
	// saturates at 1.0.
	StressFullScale int `yaml:"stress_full_scale"`

	Seed int64 `yaml:"seed"`
}

func DefaultParams() Params {
	return Params{
		DurationSec:         DefaultDurationSec,
		SamplingIntervalMs:  DefaultSamplingIntervalMs,
		InitialPopulation:   DefaultInitialPopulation,
		G:                   DefaultG,
		CenterPull:          DefaultCenterPull,
		SofteningSq:         DefaultSofteningSq,
		StressCoeff:         DefaultStressCoeff,
		BoundaryDistance:    DefaultBoundaryDistance,
		BoundaryRestitution: DefaultBoundaryRestitution,
		StrideThreshold:     DefaultStrideThreshold,
		StrideDivisor:       DefaultStrideDivisor,
		Dt:                  DefaultDt,
		RampHighFPS:         DefaultRampHighFPS,
		RampHighAdd:         DefaultRampHighAdd,
		RampLowFPS:          DefaultRampLowFPS,
		RampLowAdd:          DefaultRampLowAdd,
		RampDefaultAdd:      DefaultRampDefaultAdd,
		SpawnRadius:         DefaultSpawnRadius,
		SpawnSpeed:          DefaultSpawnSpeed,
		MassMin:             DefaultMassMin,
		MassMax:             DefaultMassMax,
		SizeMin:             DefaultSizeMin,
		SizeMax:             DefaultSizeMax,
		StressFullScale:     DefaultStressFullScale,
	}
}

func (p Params) Validate() error {
	if p.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", p.Dt)
	}
	if p.DurationSec <= 0 {
		return fmt.Errorf("duration must be positive, got %f", p.DurationSec)
	}
	if p.SamplingIntervalMs <= 0 {
		return fmt.Errorf("sampling interval must be positive, got %d", p.SamplingIntervalMs)
	}
	if p.InitialPopulation < 0 {
		return fmt.Errorf("initial population must be non-negative, got %d", p.InitialPopulation)
	}
	if p.StrideDivisor <= 0 {
		return fmt.Errorf("stride divisor must be positive, got %d", p.StrideDivisor)
	}
	if p.StressFullScale <= 0 {
		return fmt.Errorf("stress full scale must be positive, got %d", p.StressFullScale)
	}
	if p.MassMin <= 0 || p.MassMax < p.MassMin {
		return fmt.Errorf("mass range [%f,%f) invalid", p.MassMin, p.MassMax)
	}
	if p.SizeMin <= 0 || p.SizeMax < p.SizeMin {
		return fmt.Errorf("size range [%f,%f) invalid", p.SizeMin, p.SizeMax)
	}
	return nil
}
