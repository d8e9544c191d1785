package dto

type TagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}
