package records

// Repository expone lecturas sobre el conjunto de registros cargado.
// Las implementaciones son inmutables después de construirse, por lo que
// todas las lecturas son seguras en concurrencia sin locks.
type Repository interface {
	// SnapshotID identifica la carga del dataset (para correlación en logs).
	SnapshotID() string

	Records() []DogRecord
	RecordsForBreed(breed string) []DogRecord
	AllBreeds() []string

	Districts() []District
	DistrictByID(id int) (District, bool)

	// BreedProportions devuelve, para un distrito, la fracción de su
	// población canina que pertenece a cada raza. Mapa vacío si el
	// distrito no tiene registros. Invariante: los valores suman 1.0.
	BreedProportions(districtID int) map[string]float64
}
