// Package config arma la configuración de la aplicación desde env vars,
// un .env opcional y defaults razonables.
package config

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa rutas de datasets y ajustes generales.
type Config struct {
	AppName string

	DataDir          string
	DogDataFile      string
	DistrictFile     string
	ClosenessFile    string
	TraitsFile       string
	TranslationsFile string

	LogLevel  string
	LogFormat string

	// Opcional: API de matriz de distancias para regenerar ClosenessFile.
	DistanceAPIBaseURL string
	DistanceAPIKey     string

	// Suavizado de RecommendBreeds (0 = promedio simple).
	PriorScore  float64
	PriorWeight float64
}

// Load lee .env si existe y resuelve la configuración vía viper.
// Las env vars usan prefijo DOGREC_ (ej. DOGREC_DATA_DIR).
func Load() (Config, error) {
	// .env es opcional; si no está, seguimos con el ambiente actual
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DOGREC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", "dog-breed-recommender")
	v.SetDefault("data_dir", "data")
	v.SetDefault("dog_data_file", "zurich_dog_data_2017.csv")
	v.SetDefault("district_file", "district_quarters_2017.csv")
	v.SetDefault("closeness_file", "district_closeness_2017.csv")
	v.SetDefault("traits_file", "breed_traits.csv")
	v.SetDefault("translations_file", "breed_translations.csv")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("prior_score", 0.0)
	v.SetDefault("prior_weight", 0.0)

	cfg := Config{
		AppName:            v.GetString("app_name"),
		DataDir:            v.GetString("data_dir"),
		DogDataFile:        v.GetString("dog_data_file"),
		DistrictFile:       v.GetString("district_file"),
		ClosenessFile:      v.GetString("closeness_file"),
		TraitsFile:         v.GetString("traits_file"),
		TranslationsFile:   v.GetString("translations_file"),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		DistanceAPIBaseURL: v.GetString("distance_api_base_url"),
		DistanceAPIKey:     v.GetString("distance_api_key"),
		PriorScore:         v.GetFloat64("prior_score"),
		PriorWeight:        v.GetFloat64("prior_weight"),
	}
	return cfg, nil
}

// DogDataPath resuelve la ruta del dataset de perros dentro de DataDir.
func (c Config) DogDataPath() string { return c.resolve(c.DogDataFile) }

func (c Config) DistrictPath() string     { return c.resolve(c.DistrictFile) }
func (c Config) ClosenessPath() string    { return c.resolve(c.ClosenessFile) }
func (c Config) TraitsPath() string       { return c.resolve(c.TraitsFile) }
func (c Config) TranslationsPath() string { return c.resolve(c.TranslationsFile) }

func (c Config) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
