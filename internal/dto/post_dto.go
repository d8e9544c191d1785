package dto

type CreatePostRequest struct {
	Title string   `json:"title" binding:"required,max=255"`
	Text  string   `json:"text" binding:"required"`
	Tags  []string `json:"tags" binding:"dive,min=1,max=50"`
}

type UpdatePostRequest struct {
	Title string   `json:"title" binding:"required,max=255"`
	Text  string   `json:"text" binding:"required"`
	Tags  []string `json:"tags" binding:"dive,min=1,max=50"`
}
