package memory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"dog-breed-recommender/internal/domain/records"
)

// recordRepo es un store inmutable en memoria. Se construye completo en
// Load y después solo se lee, por eso no necesita mutex.
type recordRepo struct {
	snapshotID string

	all     []records.DogRecord
	byBreed map[string][]records.DogRecord
	breeds  []string

	districts   []records.District
	districtIDs map[int]records.District

	// proporciones por distrito, derivadas una sola vez en Load
	proportions map[int]map[string]float64
}

// Load valida y carga los registros, y deriva las proporciones de raza
// por distrito. Falla con records.ErrInvalidRecord ante un registro sin
// raza o con distrito desconocido.
func Load(districts []records.District, recs []records.DogRecord) (records.Repository, error) {
	r := &recordRepo{
		snapshotID:  uuid.NewString(),
		byBreed:     make(map[string][]records.DogRecord),
		districtIDs: make(map[int]records.District, len(districts)),
		proportions: make(map[int]map[string]float64),
	}

	for _, d := range districts {
		if _, dup := r.districtIDs[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate district %d", records.ErrInvalidRecord, d.ID)
		}
		r.districtIDs[d.ID] = d
		r.districts = append(r.districts, d)
	}
	sort.Slice(r.districts, func(i, j int) bool { return r.districts[i].ID < r.districts[j].ID })

	counts := make(map[int]map[string]int)
	totals := make(map[int]int)

	for i, rec := range recs {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d", err, i)
		}
		if _, ok := r.districtIDs[rec.DistrictID]; !ok {
			return nil, fmt.Errorf("%w: record %d references unknown district %d",
				records.ErrInvalidRecord, i, rec.DistrictID)
		}

		r.all = append(r.all, rec)
		r.byBreed[rec.Breed] = append(r.byBreed[rec.Breed], rec)

		if counts[rec.DistrictID] == nil {
			counts[rec.DistrictID] = make(map[string]int)
		}
		counts[rec.DistrictID][rec.Breed]++
		totals[rec.DistrictID]++
	}

	for breed := range r.byBreed {
		r.breeds = append(r.breeds, breed)
	}
	sort.Strings(r.breeds)

	for districtID, perBreed := range counts {
		total := float64(totals[districtID])
		props := make(map[string]float64, len(perBreed))
		for breed, n := range perBreed {
			props[breed] = float64(n) / total
		}
		r.proportions[districtID] = props
	}

	return r, nil
}

func (r *recordRepo) SnapshotID() string { return r.snapshotID }

func (r *recordRepo) Records() []records.DogRecord {
	out := make([]records.DogRecord, len(r.all))
	copy(out, r.all)
	return out
}

func (r *recordRepo) RecordsForBreed(breed string) []records.DogRecord {
	src := r.byBreed[breed]
	out := make([]records.DogRecord, len(src))
	copy(out, src)
	return out
}

func (r *recordRepo) AllBreeds() []string {
	out := make([]string, len(r.breeds))
	copy(out, r.breeds)
	return out
}

func (r *recordRepo) Districts() []records.District {
	out := make([]records.District, len(r.districts))
	copy(out, r.districts)
	return out
}

func (r *recordRepo) DistrictByID(id int) (records.District, bool) {
	d, ok := r.districtIDs[id]
	return d, ok
}

func (r *recordRepo) BreedProportions(districtID int) map[string]float64 {
	src := r.proportions[districtID]
	out := make(map[string]float64, len(src))
	for breed, p := range src {
		out[breed] = p
	}
	return out
}
