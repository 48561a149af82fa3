package traits

import (
	"sort"
)

// Sign indica si el usuario considera un rasgo deseable o indeseable.
type Sign string

const (
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
)

// RawAnswers son las respuestas crudas del cuestionario de preferencias,
// cada importancia en escala 1 a 5.
type RawAnswers struct {
	Affectionate   int
	GoodWChildren  int
	GoodWOtherDogs int
	Shedding       int
	Openness       int
	Playfulness    int
	Protective     int
	Adaptability   int
	Trainability   int
	Energy         int

	// Barking y Stimulation dejan al usuario decidir el signo.
	BarkingSign           Sign
	BarkingImportance     int
	StimulationSign       Sign
	StimulationImportance int
}

// Weights mapea rasgo -> peso con signo, listo para la matriz de decisión.
type Weights map[Trait]int

// BuildWeights adapta las respuestas crudas al dataset: el shedding
// siempre resta, barking y stimulation llevan el signo elegido.
func BuildWeights(a RawAnswers) Weights {
	return Weights{
		TraitAffectionate:   a.Affectionate,
		TraitGoodWChildren:  a.GoodWChildren,
		TraitGoodWOtherDogs: a.GoodWOtherDogs,
		TraitShedding:       -a.Shedding,
		TraitOpenness:       a.Openness,
		TraitPlayfulness:    a.Playfulness,
		TraitProtective:     a.Protective,
		TraitAdaptability:   a.Adaptability,
		TraitTrainability:   a.Trainability,
		TraitEnergy:         a.Energy,
		TraitBarking:        signed(a.BarkingSign, a.BarkingImportance),
		TraitStimulation:    signed(a.StimulationSign, a.StimulationImportance),
	}
}

func signed(s Sign, importance int) int {
	if s == SignNegative {
		return -importance
	}
	return importance
}

// MatchScore es una entrada del ranking de la matriz de decisión.
type MatchScore struct {
	Breed string
	Score int
}

// DecisionMatrix puntúa cada raza como suma ponderada de sus rasgos y
// devuelve hasta k razas en orden descendente; empates alfabéticos.
func DecisionMatrix(breeds []Breed, w Weights, k int) []MatchScore {
	if k <= 0 {
		k = 5
	}

	out := make([]MatchScore, 0, len(breeds))
	for _, b := range breeds {
		var score int
		for trait, weight := range w {
			score += weight * b.Scores[trait]
		}
		out = append(out, MatchScore{Breed: b.Name, Score: score})
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
	return out
}

// NormalizedScore es un MatchScore llevado a la escala (0,1).
type NormalizedScore struct {
	Breed string
	Score float64
}

// Normalize lleva los puntajes crudos (sin tope) a (0,1) sobre una
// ventana min/max ensanchada, para que ningún resultado quede en los
// extremos exactos.
func Normalize(scores []MatchScore) []NormalizedScore {
	out := make([]NormalizedScore, 0, len(scores))
	if len(scores) == 0 {
		return out
	}

	min, max := scores[0].Score, scores[0].Score
	for _, s := range scores {
		if s.Score < min {
			min = s.Score
		}
		if s.Score > max {
			max = s.Score
		}
	}

	if min == max {
		for _, s := range scores {
			out = append(out, NormalizedScore{Breed: s.Breed, Score: 0.5})
		}
		return out
	}

	// ventana ensanchada: el techo queda un rango por encima del máximo
	// y el piso dos veces esa distancia por debajo, así el mejor puntaje
	// observado cae en 0.75 y el peor en 0.5
	span := max - min
	hi := max + span
	lo := hi - (hi-min)*2

	for _, s := range scores {
		out = append(out, NormalizedScore{
			Breed: s.Breed,
			Score: float64(s.Score-lo) / float64(hi-lo),
		})
	}
	return out
}
