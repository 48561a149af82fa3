package traits

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Trait identifica un criterio del American Kennel Club.
type Trait string

const (
	TraitAffectionate   Trait = "affectionate_w_family"
	TraitGoodWChildren  Trait = "good_w_young_children"
	TraitGoodWOtherDogs Trait = "good_w_other_dog"
	TraitShedding       Trait = "shedding_level"
	TraitOpenness       Trait = "openness_to_strangers"
	TraitPlayfulness    Trait = "playfulness"
	TraitProtective     Trait = "protective_nature"
	TraitAdaptability   Trait = "adaptability"
	TraitTrainability   Trait = "trainability"
	TraitEnergy         Trait = "energy"
	TraitBarking        Trait = "barking"
	TraitStimulation    Trait = "stimulation_needs"
)

// All devuelve los rasgos en el orden de columnas del dataset.
// El orden importa: el árbol de decisión inserta secuencias en este orden.
func All() []Trait {
	return []Trait{
		TraitAffectionate,
		TraitGoodWChildren,
		TraitGoodWOtherDogs,
		TraitShedding,
		TraitOpenness,
		TraitPlayfulness,
		TraitProtective,
		TraitAdaptability,
		TraitTrainability,
		TraitEnergy,
		TraitBarking,
		TraitStimulation,
	}
}

// Breed guarda el puntaje (1 a 5) de cada rasgo para una raza.
type Breed struct {
	Name   string
	Scores map[Trait]int
}

// Validate chequea que la raza tenga nombre y los 12 rasgos en rango.
func (b Breed) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrInvalidInput
	}
	for _, t := range All() {
		v, ok := b.Scores[t]
		if !ok || v < 1 || v > 5 {
			return ErrInvalidInput
		}
	}
	return nil
}

// Catalog es el conjunto inmutable de razas con sus rasgos.
type Catalog struct {
	byName map[string]Breed
	names  []string
}

func NewCatalog(breeds []Breed) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Breed, len(breeds))}
	for _, b := range breeds {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[b.Name]; dup {
			return nil, ErrInvalidInput
		}
		c.byName[b.Name] = b
		c.names = append(c.names, b.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

func (c *Catalog) Breeds() []Breed {
	out := make([]Breed, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

func (c *Catalog) BreedByName(name string) (Breed, bool) {
	b, ok := c.byName[name]
	return b, ok
}

// TraitValue implementa similarity.TraitSource.
func (c *Catalog) TraitValue(breed, trait string) (int, bool) {
	b, ok := c.byName[breed]
	if !ok {
		return 0, false
	}
	v, ok := b.Scores[Trait(trait)]
	return v, ok
}
