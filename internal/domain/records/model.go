package records

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidRecord se devuelve al cargar un registro incompleto
	// (sin raza o sin distrito válido).
	ErrInvalidRecord = errors.New("invalid record")
)

// Gender define el género declarado del dueño.
type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
	GenderOther  Gender = "O"
)

func ParseGender(s string) (Gender, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "F", "W": // el dataset de Zürich usa "w" (weiblich)
		return GenderFemale, true
	case "M":
		return GenderMale, true
	case "O", "":
		return GenderOther, true
	default:
		return "", false
	}
}

// AgeBucket representa el rango etario declarado del dueño (ej. 21-30).
type AgeBucket struct {
	Lo int
	Hi int
}

// Midpoint devuelve el punto medio del rango, usado para comparar edades.
func (a AgeBucket) Midpoint() float64 {
	return float64(a.Lo+a.Hi) / 2
}

// IsZero reporta si el rango nunca fue seteado.
func (a AgeBucket) IsZero() bool {
	return a.Lo == 0 && a.Hi == 0
}

// District representa un barrio (quartier) de la ciudad.
type District struct {
	ID   int
	Name string
}

// DogRecord representa un perro registrado junto con los datos
// demográficos declarados de su dueño. Inmutable una vez cargado.
type DogRecord struct {
	OwnerID    int
	AgeBucket  AgeBucket
	Gender     Gender
	DistrictID int
	Breed      string
}

// Validate chequea los campos mínimos que exige el store.
func (r DogRecord) Validate() error {
	if strings.TrimSpace(r.Breed) == "" {
		return ErrInvalidRecord
	}
	if r.DistrictID <= 0 {
		return ErrInvalidRecord
	}
	return nil
}
