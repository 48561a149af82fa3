package similarity

import (
	"errors"
	"math"

	"dog-breed-recommender/internal/domain/records"
)

var (
	// ErrDistrictNotFound se devuelve al comparar un distrito sin registros.
	ErrDistrictNotFound = errors.New("district not found")
)

// Pesos del score demográfico. Vienen del modelo original calibrado a mano:
// la edad y el distrito pesan el doble que el género.
const (
	weightAge        = 0.4
	weightGender     = 0.2
	weightDistrict   = 0.4
	weightPreference = 0.4
)

// UserProfile es el perfil de consulta. Efímero, se arma por request.
type UserProfile struct {
	AgeBucket  records.AgeBucket
	Gender     records.Gender
	DistrictID int

	// Preferences mapea rasgo -> valor deseado (1 a 5). Opcional.
	Preferences map[string]int
}

// TraitSource resuelve el valor (1 a 5) de un rasgo para una raza.
// Lo implementa el catálogo de rasgos; opcional para el engine.
type TraitSource interface {
	TraitValue(breed, trait string) (int, bool)
}

// Engine calcula cercanía entre distritos y entre perfiles.
type Engine struct {
	repo records.Repository

	// geo, si está cargado, reemplaza la cercanía coseno entre distritos
	// distintos al puntuar perfiles (distancias viales normalizadas).
	geo map[[2]int]float64

	traits TraitSource
}

type Option func(*Engine)

// WithGeoCloseness carga una tabla de cercanía geográfica [0,1] por par
// de distritos. La clave se normaliza con el ID menor primero.
func WithGeoCloseness(table map[[2]int]float64) Option {
	return func(e *Engine) {
		e.geo = make(map[[2]int]float64, len(table))
		for k, v := range table {
			e.geo[pairKey(k[0], k[1])] = v
		}
	}
}

// WithTraitSource habilita el componente de preferencias del score.
func WithTraitSource(src TraitSource) Option {
	return func(e *Engine) { e.traits = src }
}

func NewEngine(repo records.Repository, opts ...Option) *Engine {
	e := &Engine{repo: repo}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DistrictCloseness devuelve la similitud coseno entre los vectores de
// proporción de razas de dos distritos. Simétrica; 1.0 para un distrito
// contra sí mismo; 0.0 si no comparten razas. Falla con
// ErrDistrictNotFound si alguno no tiene registros.
func (e *Engine) DistrictCloseness(a, b int) (float64, error) {
	pa := e.repo.BreedProportions(a)
	if len(pa) == 0 {
		return 0, ErrDistrictNotFound
	}
	pb := e.repo.BreedProportions(b)
	if len(pb) == 0 {
		return 0, ErrDistrictNotFound
	}
	if a == b {
		return 1.0, nil
	}
	return cosine(pa, pb), nil
}

// cosine calcula similitud coseno entre dos vectores dispersos.
func cosine(a, b map[string]float64) float64 {
	var dot float64
	for k, va := range a {
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	if dot == 0 {
		return 0
	}

	var na, nb float64
	for _, v := range a {
		na += v * v
	}
	for _, v := range b {
		nb += v * v
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ProfileCloseness puntúa en [0,1] qué tan parecido es el perfil de
// consulta al dueño de un registro. Promedio ponderado de los componentes
// comparables (edad, género, distrito, preferencias); 0 si no hay ninguno.
func (e *Engine) ProfileCloseness(q UserProfile, owner records.DogRecord) float64 {
	var sum, weight float64

	if !q.AgeBucket.IsZero() && !owner.AgeBucket.IsZero() {
		sum += weightAge * ageScore(q.AgeBucket, owner.AgeBucket)
		weight += weightAge
	}

	if q.Gender != "" && owner.Gender != "" {
		sum += weightGender * genderScore(q.Gender, owner.Gender)
		weight += weightGender
	}

	if q.DistrictID > 0 {
		if score, ok := e.districtScore(q.DistrictID, owner.DistrictID); ok {
			sum += weightDistrict * score
			weight += weightDistrict
		}
	}

	if len(q.Preferences) > 0 && e.traits != nil {
		if score, ok := preferenceScore(q.Preferences, owner.Breed, e.traits); ok {
			sum += weightPreference * score
			weight += weightPreference
		}
	}

	if weight == 0 {
		return 0
	}
	return clamp01(sum / weight)
}

// ageScore decae cuadráticamente con la diferencia entre puntos medios
// de los rangos etarios: 1 - 0.0001*diff^2, acotado en 0.
func ageScore(a, b records.AgeBucket) float64 {
	diff := a.Midpoint() - b.Midpoint()
	return math.Max(0, 1-0.0001*diff*diff)
}

func genderScore(a, b records.Gender) float64 {
	if a == b || a == records.GenderOther || b == records.GenderOther {
		return 1.0
	}
	return 0.5
}

func (e *Engine) districtScore(query, owner int) (float64, bool) {
	if query == owner {
		return 1.0, true
	}
	if e.geo != nil {
		if v, ok := e.geo[pairKey(query, owner)]; ok {
			return clamp01(v), true
		}
	}
	score, err := e.DistrictCloseness(query, owner)
	if err != nil {
		// distrito de consulta sin registros: el componente no aplica
		return 0, false
	}
	return score, true
}

// preferenceScore alinea el vector de preferencias con los rasgos de la
// raza: por rasgo, 1 - |deseado - real|/4, promediado.
func preferenceScore(prefs map[string]int, breed string, src TraitSource) (float64, bool) {
	var sum float64
	var n int
	for trait, want := range prefs {
		got, ok := src.TraitValue(breed, trait)
		if !ok {
			continue
		}
		d := math.Abs(float64(want - got))
		sum += 1 - d/4
		n++
	}
	if n == 0 {
		return 0, false
	}
	return clamp01(sum / float64(n)), true
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
