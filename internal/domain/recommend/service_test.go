package recommend

import (
	"errors"
	"math"
	"sort"
	"testing"

	"dog-breed-recommender/internal/domain/records"
	"dog-breed-recommender/internal/domain/similarity"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	districts []records.District
	recs      []records.DogRecord
}

func (r *testRepo) SnapshotID() string { return "test-snapshot" }

func (r *testRepo) Records() []records.DogRecord { return r.recs }

func (r *testRepo) RecordsForBreed(breed string) []records.DogRecord {
	out := make([]records.DogRecord, 0)
	for _, rec := range r.recs {
		if rec.Breed == breed {
			out = append(out, rec)
		}
	}
	return out
}

func (r *testRepo) AllBreeds() []string {
	seen := map[string]bool{}
	for _, rec := range r.recs {
		seen[rec.Breed] = true
	}
	out := make([]string, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

func (r *testRepo) Districts() []records.District { return r.districts }

func (r *testRepo) DistrictByID(id int) (records.District, bool) {
	for _, d := range r.districts {
		if d.ID == id {
			return d, true
		}
	}
	return records.District{}, false
}

func (r *testRepo) BreedProportions(districtID int) map[string]float64 {
	counts := map[string]int{}
	total := 0
	for _, rec := range r.recs {
		if rec.DistrictID == districtID {
			counts[rec.Breed]++
			total++
		}
	}
	out := make(map[string]float64, len(counts))
	for breed, n := range counts {
		out[breed] = float64(n) / float64(total)
	}
	return out
}

func rec(district int, breed string, gender records.Gender) records.DogRecord {
	return records.DogRecord{
		OwnerID:    1,
		AgeBucket:  records.AgeBucket{Lo: 21, Hi: 30},
		Gender:     gender,
		DistrictID: district,
		Breed:      breed,
	}
}

func newTestService(repo *testRepo, opts Options) *Service {
	return NewService(repo, similarity.NewEngine(repo), opts, nil)
}

// specRepo replica el ejemplo D1 {Labrador:0.6, Pudel:0.4},
// D2 {Labrador:0.3, Pudel:0.7} con 10 registros por distrito.
func specRepo() *testRepo {
	r := &testRepo{
		districts: []records.District{{ID: 1, Name: "D1"}, {ID: 2, Name: "D2"}},
	}
	add := func(district, n int, breed string) {
		for i := 0; i < n; i++ {
			r.recs = append(r.recs, rec(district, breed, records.GenderFemale))
		}
	}
	add(1, 6, "Labrador")
	add(1, 4, "Pudel")
	add(2, 3, "Labrador")
	add(2, 7, "Pudel")
	return r
}

// -------------------------
// TopDistricts
// -------------------------

func TestTopDistricts_SpecExample(t *testing.T) {
	svc := newTestService(specRepo(), Options{})

	got, err := svc.TopDistricts("Labrador", 1)
	if err != nil {
		t.Fatalf("TopDistricts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].District.ID != 1 || math.Abs(got[0].Proportion-0.6) > 1e-9 {
		t.Errorf("top = (%d, %v), want (1, 0.6)", got[0].District.ID, got[0].Proportion)
	}
}

func TestTopDistricts_SortedDescendingAndCapped(t *testing.T) {
	svc := newTestService(specRepo(), Options{})

	got, err := svc.TopDistricts("Pudel", 10)
	if err != nil {
		t.Fatalf("TopDistricts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].District.ID != 2 || got[1].District.ID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", got[0].District.ID, got[1].District.ID)
	}
	if got[0].Proportion < got[1].Proportion {
		t.Errorf("not descending: %v then %v", got[0].Proportion, got[1].Proportion)
	}
}

func TestTopDistricts_TieBreakByDistrictID(t *testing.T) {
	r := &testRepo{
		districts: []records.District{{ID: 7, Name: "G"}, {ID: 2, Name: "B"}, {ID: 5, Name: "E"}},
	}
	for _, id := range []int{7, 2, 5} {
		r.recs = append(r.recs, rec(id, "Labrador", records.GenderFemale))
	}
	svc := newTestService(r, Options{})

	got, err := svc.TopDistricts("Labrador", 5)
	if err != nil {
		t.Fatalf("TopDistricts: %v", err)
	}
	wantIDs := []int{2, 5, 7}
	if len(got) != len(wantIDs) {
		t.Fatalf("len = %d, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].District.ID != want {
			t.Errorf("position %d: district %d, want %d", i, got[i].District.ID, want)
		}
	}
}

func TestTopDistricts_UnknownBreedFails(t *testing.T) {
	svc := newTestService(specRepo(), Options{})

	if _, err := svc.TopDistricts("Dackel", 5); !errors.Is(err, ErrBreedNotFound) {
		t.Fatalf("expected ErrBreedNotFound, got %v", err)
	}
}

func TestTopDistricts_EmptyBreedFails(t *testing.T) {
	svc := newTestService(specRepo(), Options{})

	if _, err := svc.TopDistricts("  ", 5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTopDistricts_DefaultK(t *testing.T) {
	r := &testRepo{}
	for id := 1; id <= 8; id++ {
		r.districts = append(r.districts, records.District{ID: id})
		r.recs = append(r.recs, rec(id, "Labrador", records.GenderFemale))
	}
	svc := newTestService(r, Options{})

	got, err := svc.TopDistricts("Labrador", 0)
	if err != nil {
		t.Fatalf("TopDistricts: %v", err)
	}
	if len(got) != DefaultTopK {
		t.Errorf("len = %d, want %d", len(got), DefaultTopK)
	}
}

// -------------------------
// RecommendBreeds
// -------------------------

func TestRecommendBreeds_EmptyStoreFails(t *testing.T) {
	svc := newTestService(&testRepo{}, Options{})

	_, err := svc.RecommendBreeds(similarity.UserProfile{Gender: records.GenderFemale}, 5)
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestRecommendBreeds_RanksByMeanCloseness(t *testing.T) {
	// Pudel: dueños F y F; Labrador: F y M. Una consulta F debe
	// preferir Pudel (género promedio más alto).
	r := &testRepo{districts: []records.District{{ID: 1, Name: "D1"}}}
	r.recs = []records.DogRecord{
		rec(1, "Pudel", records.GenderFemale),
		rec(1, "Pudel", records.GenderFemale),
		rec(1, "Labrador", records.GenderFemale),
		rec(1, "Labrador", records.GenderMale),
	}
	svc := newTestService(r, Options{})

	got, err := svc.RecommendBreeds(similarity.UserProfile{Gender: records.GenderFemale}, 5)
	if err != nil {
		t.Fatalf("RecommendBreeds: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Breed != "Pudel" || got[1].Breed != "Labrador" {
		t.Errorf("order = [%s %s], want [Pudel Labrador]", got[0].Breed, got[1].Breed)
	}
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("Pudel score = %v, want 1.0", got[0].Score)
	}
	if math.Abs(got[1].Score-0.75) > 1e-9 {
		t.Errorf("Labrador score = %v, want 0.75", got[1].Score)
	}
}

func TestRecommendBreeds_TieBreakLexicographic(t *testing.T) {
	r := &testRepo{districts: []records.District{{ID: 1, Name: "D1"}}}
	r.recs = []records.DogRecord{
		rec(1, "Zwergpinscher", records.GenderFemale),
		rec(1, "Beagle", records.GenderFemale),
		rec(1, "Mops", records.GenderFemale),
	}
	svc := newTestService(r, Options{})

	got, err := svc.RecommendBreeds(similarity.UserProfile{Gender: records.GenderFemale}, 5)
	if err != nil {
		t.Fatalf("RecommendBreeds: %v", err)
	}
	want := []string{"Beagle", "Mops", "Zwergpinscher"}
	for i, w := range want {
		if got[i].Breed != w {
			t.Errorf("position %d: %s, want %s", i, got[i].Breed, w)
		}
	}
}

func TestRecommendBreeds_CapsAtK(t *testing.T) {
	r := &testRepo{districts: []records.District{{ID: 1, Name: "D1"}}}
	for _, breed := range []string{"A", "B", "C", "D"} {
		r.recs = append(r.recs, rec(1, breed, records.GenderFemale))
	}
	svc := newTestService(r, Options{})

	got, err := svc.RecommendBreeds(similarity.UserProfile{Gender: records.GenderFemale}, 2)
	if err != nil {
		t.Fatalf("RecommendBreeds: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestRecommendBreeds_PriorFavorsSampledBreeds(t *testing.T) {
	// Sin prior ambos promedian 1.0; con prior bajo, la raza con más
	// muestras queda arriba.
	r := &testRepo{districts: []records.District{{ID: 1, Name: "D1"}}}
	r.recs = []records.DogRecord{
		rec(1, "Raro", records.GenderFemale),
		rec(1, "Comun", records.GenderFemale),
		rec(1, "Comun", records.GenderFemale),
		rec(1, "Comun", records.GenderFemale),
	}
	svc := newTestService(r, Options{PriorScore: 0.5, PriorWeight: 10})

	got, err := svc.RecommendBreeds(similarity.UserProfile{Gender: records.GenderFemale}, 5)
	if err != nil {
		t.Fatalf("RecommendBreeds: %v", err)
	}
	if got[0].Breed != "Comun" {
		t.Errorf("top = %s, want Comun", got[0].Breed)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("scores not separated by prior: %v vs %v", got[0].Score, got[1].Score)
	}
}
