// Package csvfile carga los datasets CSV ya limpiados (registros de
// perros de Zürich, distritos, distancias entre distritos, rasgos de
// razas y traducciones) hacia los tipos de dominio.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"dog-breed-recommender/internal/domain/records"
	"dog-breed-recommender/internal/domain/traits"
)

var (
	// ErrBadRow se devuelve ante una fila malformada; envuelve el número
	// de línea para diagnóstico.
	ErrBadRow = errors.New("bad csv row")
)

// Columnas del dataset de perros de Zürich (formato 2017).
const (
	colOwnerID  = 0
	colAgeRange = 1
	colGender   = 2
	colDistrict = 4
	colBreed    = 5

	dogRecordColumns = 6
)

// mixedBreed marca las filas de perros mestizos, que se descartan.
const mixedBreed = "Mischling"

// ParseDogRecords lee el dataset de perros. Salta el header, descarta
// filas de mestizos y normaliza el nombre de raza con mayúscula inicial.
func ParseDogRecords(r io.Reader) ([]records.DogRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	out := make([]records.DogRecord, 0)
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRow, line+1, err)
		}
		line++
		if line == 1 { // header
			continue
		}
		if len(row) < dogRecordColumns {
			return nil, fmt.Errorf("%w: line %d: expected %d columns, got %d",
				ErrBadRow, line, dogRecordColumns, len(row))
		}

		breed := capitalize(row[colBreed])
		if strings.Contains(breed, mixedBreed) {
			continue
		}

		ownerID, err := strconv.Atoi(strings.TrimSpace(row[colOwnerID]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: owner id: %v", ErrBadRow, line, err)
		}

		bucket, err := parseAgeBucket(row[colAgeRange])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRow, line, err)
		}

		gender, ok := records.ParseGender(row[colGender])
		if !ok {
			return nil, fmt.Errorf("%w: line %d: gender %q", ErrBadRow, line, row[colGender])
		}

		districtID, err := strconv.Atoi(strings.TrimSpace(row[colDistrict]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: district id: %v", ErrBadRow, line, err)
		}

		out = append(out, records.DogRecord{
			OwnerID:    ownerID,
			AgeBucket:  bucket,
			Gender:     gender,
			DistrictID: districtID,
			Breed:      breed,
		})
	}
	return out, nil
}

// ParseDistricts lee el registro de distritos en formato id,nombre.
func ParseDistricts(r io.Reader) ([]records.District, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}

	out := make([]records.District, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected id,name", ErrBadRow, i+2)
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: district id: %v", ErrBadRow, i+2, err)
		}
		name := strings.TrimSpace(row[1])
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: empty district name", ErrBadRow, i+2)
		}
		out = append(out, records.District{ID: id, Name: name})
	}
	return out, nil
}

// ParseCloseness lee la matriz de distancias viales entre distritos
// (a,b,km) y la normaliza a cercanía [0,1]: 1 para distancia cero, 0
// para el par más lejano del archivo.
func ParseCloseness(r io.Reader) (map[[2]int]float64, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}

	raw := make(map[[2]int]float64, len(rows))
	var maxDist float64
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("%w: line %d: expected a,b,distance", ErrBadRow, i+2)
		}
		a, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRow, i+2, err)
		}
		b, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRow, i+2, err)
		}
		dist, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || dist < 0 {
			return nil, fmt.Errorf("%w: line %d: distance %q", ErrBadRow, i+2, row[2])
		}
		if a > b {
			a, b = b, a
		}
		raw[[2]int{a, b}] = dist
		if dist > maxDist {
			maxDist = dist
		}
	}

	out := make(map[[2]int]float64, len(raw))
	for pair, dist := range raw {
		if maxDist == 0 {
			out[pair] = 1.0
			continue
		}
		out[pair] = 1.0 - dist/maxDist
	}
	return out, nil
}

// ParseBreedTraits lee la tabla de rasgos del AKC: nombre + 12 puntajes.
func ParseBreedTraits(r io.Reader) ([]traits.Breed, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}

	all := traits.All()
	out := make([]traits.Breed, 0, len(rows))
	for i, row := range rows {
		if len(row) < 1+len(all) {
			return nil, fmt.Errorf("%w: line %d: expected name plus %d traits",
				ErrBadRow, i+2, len(all))
		}

		// el dataset original trae non-breaking spaces en los nombres
		name := strings.TrimSpace(strings.ReplaceAll(row[0], "\u00a0", " "))
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: empty breed name", ErrBadRow, i+2)
		}

		scores := make(map[traits.Trait]int, len(all))
		for j, trait := range all {
			v, err := strconv.Atoi(strings.TrimSpace(row[j+1]))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: trait %s: %v", ErrBadRow, i+2, trait, err)
			}
			scores[trait] = v
		}
		out = append(out, traits.Breed{Name: name, Scores: scores})
	}
	return out, nil
}

// ParseTranslations lee pares alemán,inglés de nombres de raza.
func ParseTranslations(r io.Reader) (map[string]string, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected german,english", ErrBadRow, i+2)
		}
		out[strings.TrimSpace(row[0])] = strings.TrimSpace(row[1])
	}
	return out, nil
}

// LoadDogRecords abre y parsea el dataset de perros.
func LoadDogRecords(path string) ([]records.DogRecord, error) {
	return loadWith(path, ParseDogRecords)
}

func LoadDistricts(path string) ([]records.District, error) {
	return loadWith(path, ParseDistricts)
}

func LoadCloseness(path string) (map[[2]int]float64, error) {
	return loadWith(path, ParseCloseness)
}

func LoadBreedTraits(path string) ([]traits.Breed, error) {
	return loadWith(path, ParseBreedTraits)
}

func LoadTranslations(path string) (map[string]string, error) {
	return loadWith(path, ParseTranslations)
}

func loadWith[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

// readAll lee todas las filas saltando el header.
func readAll(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRow, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

// parseAgeBucket parsea rangos etarios del estilo "21-30".
func parseAgeBucket(s string) (records.AgeBucket, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return records.AgeBucket{}, fmt.Errorf("age range %q", s)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return records.AgeBucket{}, fmt.Errorf("age range %q: %v", s, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return records.AgeBucket{}, fmt.Errorf("age range %q: %v", s, err)
	}
	if lo > hi {
		return records.AgeBucket{}, fmt.Errorf("age range %q: inverted", s)
	}
	return records.AgeBucket{Lo: lo, Hi: hi}, nil
}

// capitalize imita la normalización del pipeline original: primera letra
// en mayúscula, el resto en minúscula.
func capitalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
