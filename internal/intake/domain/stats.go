package domain

// Stats summarises the registrations table for the admin view.
type Stats struct {
	Total     int
	ByFiliere map[string]int
	ByNiveau  map[string]int
	Recent    int // created within the recent window
}
