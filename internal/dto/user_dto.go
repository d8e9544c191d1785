package dto

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user moderator admin superuser"`
}

type AutocompleteResponse struct {
	Suggestions []string `json:"suggestions"`
}
