package dto

// CategoryDTO is the body of both create and update: the catalog API
// replaces name and description together.
type CategoryDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
