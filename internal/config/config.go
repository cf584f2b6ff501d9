// Package config loads the digitizer configuration: control points, file
// paths, capture tolerances and the reference place table.
package config

import (
	"fmt"
	"math"
	"strings"

	"map-digitizer/internal/georef"
	"map-digitizer/pkg/geometry"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Recovery policies for a persisted file that exists but cannot be parsed.
const (
	OnMalformedAbort = "abort"
	OnMalformedEmpty = "empty"
)

// Config holds all digitizer configuration.
type Config struct {
	ImagePath        string `mapstructure:"image_path"`
	GeoJSONPath      string `mapstructure:"geojson_path"`
	NamedGeoJSONPath string `mapstructure:"named_geojson_path"`
	ChartPath        string `mapstructure:"chart_path"`
	PreviewPath      string `mapstructure:"preview_path"`

	ControlPoints []ControlPoint `mapstructure:"control_points"`

	// ClosureTolerance is a fraction of the visible image width.
	ClosureTolerance float64 `mapstructure:"closure_tolerance"`
	ZoomStep         float64 `mapstructure:"zoom_step"`
	OnMalformed      string  `mapstructure:"on_malformed"`

	Places []Place     `mapstructure:"places"`
	Chart  ChartConfig `mapstructure:"chart"`
}

// ControlPoint is one pixel/geographic correspondence. Pixel is [x, y] and
// Geo is [lat, lon].
type ControlPoint struct {
	Name  string     `mapstructure:"name"`
	Pixel [2]float64 `mapstructure:"pixel"`
	Geo   [2]float64 `mapstructure:"geo"`
}

// Place is a named reference point used to label polygons.
type Place struct {
	Name string  `mapstructure:"name"`
	Lat  float64 `mapstructure:"lat"`
	Lon  float64 `mapstructure:"lon"`
}

// ChartConfig controls the HTML choropleth.
type ChartConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// Pairs converts the configured control points for fitting.
func (c *Config) Pairs() []georef.ControlPointPair {
	out := make([]georef.ControlPointPair, len(c.ControlPoints))
	for i, cp := range c.ControlPoints {
		out[i] = georef.ControlPointPair{
			Name:  cp.Name,
			Pixel: geometry.Point2D{X: cp.Pixel[0], Y: cp.Pixel[1]},
			Geo:   geometry.Point2D{X: cp.Geo[0], Y: cp.Geo[1]},
		}
	}
	return out
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables (DIGITIZER_GEOJSON_PATH -> geojson_path). When path
// is empty, digitizer.yaml is searched in . and ./configs.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // OK if missing

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("digitizer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("DIGITIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("image_path", "map.jpg")
	v.SetDefault("geojson_path", "poltava_regions.geojson")
	v.SetDefault("named_geojson_path", "poltava_governorate_named.geojson")
	v.SetDefault("chart_path", "poltava_map_interactive.html")
	v.SetDefault("preview_path", "poltava_regions_preview.png")
	v.SetDefault("closure_tolerance", 0.02)
	v.SetDefault("zoom_step", 1.1)
	v.SetDefault("on_malformed", OnMalformedAbort)
	v.SetDefault("chart.title", "Полтавська губернія (1821)")
	v.SetDefault("chart.width", 700)
	v.SetDefault("chart.height", 600)
	v.SetDefault("control_points", defaultControlPoints())
	v.SetDefault("places", defaultPlaces())
}

// Defaults are plain maps so viper decodes them the same way as file values.
func defaultControlPoints() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "Poltava", "pixel": []float64{3351, 2787}, "geo": []float64{49.5883, 34.5514}},
		{"name": "Pyriatyn", "pixel": []float64{1965, 2120}, "geo": []float64{50.2395, 32.5071}},
		{"name": "Hadiach", "pixel": []float64{3048, 1960}, "geo": []float64{50.3678, 33.9797}},
		{"name": "Kremenchuk", "pixel": []float64{2590, 3254}, "geo": []float64{49.0658, 33.4100}},
		{"name": "Pryluky", "pixel": []float64{1881, 1769}, "geo": []float64{50.5885, 32.3876}},
	}
}

func defaultPlaces() []map[string]interface{} {
	places := []Place{
		{"Золотоніський", 49.6689, 32.0475},
		{"Гадяцький", 50.3678, 33.9797},
		{"Зіньківський", 50.2046, 34.3639},
		{"Кобеляцький", 49.1430, 34.2000},
		{"Костянтиноградський", 49.3717, 35.4567},
		{"Кременчуцький", 49.0658, 33.4100},
		{"Лохвицький", 50.3578, 33.2658},
		{"Лубенський", 50.0161, 32.9886},
		{"Миргородський", 49.9658, 33.6114},
		{"Переяславський", 50.0661, 31.4422},
		{"Полтавський", 49.5894, 34.5511},
		{"Прилуцький", 50.5885, 32.3876},
		{"Пирятинський", 50.2395, 32.5071},
		{"Роменський", 50.7428, 33.4878},
		{"Хорольський", 49.7822, 33.2741},
	}
	out := make([]map[string]interface{}, len(places))
	for i, p := range places {
		out[i] = map[string]interface{}{"name": p.Name, "lat": p.Lat, "lon": p.Lon}
	}
	return out
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.ImagePath == "" {
		errs = append(errs, "image_path is required")
	}
	if c.GeoJSONPath == "" {
		errs = append(errs, "geojson_path is required")
	}
	if len(c.ControlPoints) < 3 {
		errs = append(errs, fmt.Sprintf("control_points needs at least 3 pairs, got %d", len(c.ControlPoints)))
	}
	for i, cp := range c.ControlPoints {
		for _, v := range [...]float64{cp.Pixel[0], cp.Pixel[1], cp.Geo[0], cp.Geo[1]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, fmt.Sprintf("control_points[%d] (%s) has a non-finite coordinate", i, cp.Name))
				break
			}
		}
		if cp.Geo[0] < -90 || cp.Geo[0] > 90 {
			errs = append(errs, fmt.Sprintf("control_points[%d] (%s) latitude %v out of range", i, cp.Name, cp.Geo[0]))
		}
	}
	if c.ClosureTolerance <= 0 || c.ClosureTolerance >= 1 {
		errs = append(errs, fmt.Sprintf("closure_tolerance must be in (0, 1), got %v", c.ClosureTolerance))
	}
	if c.ZoomStep <= 1 {
		errs = append(errs, fmt.Sprintf("zoom_step must be greater than 1, got %v", c.ZoomStep))
	}
	switch c.OnMalformed {
	case OnMalformedAbort, OnMalformedEmpty:
	default:
		errs = append(errs, fmt.Sprintf("on_malformed must be %q or %q, got %q", OnMalformedAbort, OnMalformedEmpty, c.OnMalformed))
	}
	for i, p := range c.Places {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("places[%d] has no name", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
