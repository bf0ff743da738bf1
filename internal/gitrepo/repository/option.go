package repository

// CreateRepositoryOptions holds parameters for inserting a new Repository.
type CreateRepositoryOptions struct {
	Name         string
	CloneURL     string
	Secret       string
	RefWhitelist []string
}

// GetOneRepositoryOptions holds filter parameters for fetching a single Repository.
// All non-empty fields are applied as AND conditions.
type GetOneRepositoryOptions struct {
	ID   string
	Name string
}

// ListRepositoriesOptions holds pagination parameters. Limit <= 0 returns all.
type ListRepositoriesOptions struct {
	Limit  int
	Offset int
}

// UpdateRepositoryOptions holds parameters for updating an existing Repository.
type UpdateRepositoryOptions struct {
	ID           string
	Name         string
	CloneURL     string
	Secret       *string
	RefWhitelist []string
}
