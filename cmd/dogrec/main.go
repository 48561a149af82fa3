package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dog-breed-recommender/internal/adapters/storage/csvfile"
	"dog-breed-recommender/internal/adapters/storage/memory"
	"dog-breed-recommender/internal/config"
	"dog-breed-recommender/internal/domain/records"
	"dog-breed-recommender/internal/domain/recommend"
	"dog-breed-recommender/internal/domain/similarity"
	"dog-breed-recommender/internal/domain/traits"
	"dog-breed-recommender/internal/domain/translations"
	"dog-breed-recommender/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app agrupa todo lo que los subcomandos necesitan ya cargado.
type app struct {
	cfg   config.Config
	log   logger.Logger
	repo  records.Repository
	sim   *similarity.Engine
	rec   *recommend.Service
	cat   *traits.Catalog
	trans *translations.Table
}

func newRootCmd() *cobra.Command {
	var format string

	root := &cobra.Command{
		Use:           "dogrec",
		Short:         "Recomendador de razas de perro sobre el dataset abierto de Zürich",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&format, "format", "text", "formato de salida: text|json")

	root.AddCommand(
		newBreedsCmd(&format),
		newDistrictsCmd(&format),
		newDemographicsCmd(&format),
		newPreferenceCmd(&format),
		newTreeCmd(&format),
		newFetchDistancesCmd(),
	)
	return root
}

// loadApp carga config, logger y datasets. Los archivos opcionales
// (cercanía, rasgos, traducciones) solo generan un warning si faltan.
func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	districts, err := csvfile.LoadDistricts(cfg.DistrictPath())
	if err != nil {
		return nil, fmt.Errorf("load districts: %w", err)
	}
	recs, err := csvfile.LoadDogRecords(cfg.DogDataPath())
	if err != nil {
		return nil, fmt.Errorf("load dog records: %w", err)
	}

	repo, err := memory.Load(districts, recs)
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	log.Info("dataset loaded", map[string]any{
		"snapshot_id": repo.SnapshotID(),
		"records":     len(recs),
		"districts":   len(districts),
		"breeds":      len(repo.AllBreeds()),
	})

	a := &app{cfg: cfg, log: log, repo: repo}

	var simOpts []similarity.Option
	if geo, err := csvfile.LoadCloseness(cfg.ClosenessPath()); err != nil {
		log.Warn("district closeness table unavailable, falling back to breed-profile closeness",
			map[string]any{"err": err.Error()})
	} else {
		simOpts = append(simOpts, similarity.WithGeoCloseness(geo))
	}

	if breeds, err := csvfile.LoadBreedTraits(cfg.TraitsPath()); err != nil {
		log.Warn("breed traits unavailable, preference scoring disabled",
			map[string]any{"err": err.Error()})
	} else if cat, err := traits.NewCatalog(breeds); err != nil {
		return nil, fmt.Errorf("breed traits: %w", err)
	} else {
		a.cat = cat
		simOpts = append(simOpts, similarity.WithTraitSource(cat))
	}

	if pairs, err := csvfile.LoadTranslations(cfg.TranslationsPath()); err != nil {
		log.Debug("breed translations unavailable", map[string]any{"err": err.Error()})
	} else {
		a.trans = translations.New(pairs)
	}

	a.sim = similarity.NewEngine(repo, simOpts...)
	a.rec = recommend.NewService(repo, a.sim, recommend.Options{
		PriorScore:  cfg.PriorScore,
		PriorWeight: cfg.PriorWeight,
	}, log)

	return a, nil
}

// translate devuelve el nombre de raza traducido si hay tabla cargada.
func (a *app) translate(breed string) string {
	return a.trans.Lookup(breed)
}
