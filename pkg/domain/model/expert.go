package model

// Expert represents a registered subject-matter expert, keyed by email
type Expert struct {
	Email    string
	Name     string
	IsOnline bool
}
