package interfaces

// Repository is the aggregate interface for all data access
type Repository interface {
	Case() CaseRepository
	Expert() ExpertRepository
	Close() error
}
