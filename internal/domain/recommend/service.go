package recommend

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"dog-breed-recommender/internal/domain/records"
	"dog-breed-recommender/internal/domain/similarity"
	"dog-breed-recommender/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrBreedNotFound se devuelve al consultar una raza que no existe
	// en el store.
	ErrBreedNotFound = errors.New("breed not found")

	// ErrNoRecords se devuelve al pedir recomendaciones sobre un store vacío.
	ErrNoRecords = errors.New("no records loaded")
)

// DefaultTopK es el tamaño de ranking por defecto.
const DefaultTopK = 5

// DistrictScore es una entrada del ranking de distritos para una raza.
type DistrictScore struct {
	District   records.District
	Proportion float64
}

// BreedScore es una entrada del ranking de razas recomendadas.
type BreedScore struct {
	Breed string
	Score float64
}

// Options ajusta la agregación de RecommendBreeds.
//
// PriorScore/PriorWeight habilitan un suavizado bayesiano
// (sum + PriorScore*PriorWeight) / (n + PriorWeight) que favorece razas
// con más muestras. Con PriorWeight 0 (default) se usa el promedio simple.
type Options struct {
	PriorScore  float64
	PriorWeight float64
}

type Service struct {
	repo records.Repository
	sim  *similarity.Engine
	opts Options
	log  logger.Logger
}

func NewService(repo records.Repository, sim *similarity.Engine, opts Options, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		sim:  sim,
		opts: opts,
		log:  log.With(map[string]any{"snapshot_id": repo.SnapshotID()}),
	}
}

// TopDistricts devuelve hasta k distritos ordenados por proporción
// descendente de la raza dada; empates se resuelven por ID ascendente.
// Falla con ErrBreedNotFound si la raza no existe en el store.
func (s *Service) TopDistricts(breed string, k int) ([]DistrictScore, error) {
	breed = strings.TrimSpace(breed)
	if breed == "" {
		return nil, ErrInvalidInput
	}
	if k <= 0 {
		k = DefaultTopK
	}

	if len(s.repo.RecordsForBreed(breed)) == 0 {
		return nil, ErrBreedNotFound
	}

	out := make([]DistrictScore, 0)
	for _, d := range s.repo.Districts() {
		p := s.repo.BreedProportions(d.ID)[breed]
		if p > 0 {
			out = append(out, DistrictScore{District: d, Proportion: p})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Proportion != out[j].Proportion {
			return out[i].Proportion > out[j].Proportion
		}
		return out[i].District.ID < out[j].District.ID
	})

	if len(out) > k {
		out = out[:k]
	}

	s.log.Debug("top districts computed", map[string]any{
		"query_id": uuid.NewString(),
		"breed":    breed,
		"k":        k,
		"results":  len(out),
	})
	return out, nil
}

// RecommendBreeds agrega ProfileCloseness por raza (promedio, opcionalmente
// suavizado) y devuelve hasta k razas en orden descendente; empates se
// resuelven alfabéticamente. Falla con ErrNoRecords sobre un store vacío.
func (s *Service) RecommendBreeds(q similarity.UserProfile, k int) ([]BreedScore, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	breeds := s.repo.AllBreeds()
	if len(breeds) == 0 {
		return nil, ErrNoRecords
	}

	queryID := uuid.NewString()

	out := make([]BreedScore, 0, len(breeds))
	for _, breed := range breeds {
		owners := s.repo.RecordsForBreed(breed)
		var sum float64
		for _, owner := range owners {
			sum += s.sim.ProfileCloseness(q, owner)
		}

		score := (sum + s.opts.PriorScore*s.opts.PriorWeight) /
			(float64(len(owners)) + s.opts.PriorWeight)
		out = append(out, BreedScore{Breed: breed, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Breed < out[j].Breed
	})

	if len(out) > k {
		out = out[:k]
	}

	s.log.Debug("breed recommendations computed", map[string]any{
		"query_id": queryID,
		"k":        k,
		"results":  len(out),
	})
	return out, nil
}
