package usecase

// ListParams carries raw list query parameters. Empty fields take defaults.
type ListParams struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string
	Search    string
	Role      string
}
