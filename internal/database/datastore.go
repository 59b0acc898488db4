package database

// DataStore defines the unified interface for all data operations needed by the
// deal service. It is composed of the smaller repository interfaces; both
// Repository and MemStore implement it.
type DataStore interface {
	StageRepository
	DealRepository
}

var (
	_ DataStore = (*Repository)(nil)
	_ DataStore = (*MemStore)(nil)
)
