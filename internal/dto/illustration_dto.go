package dto

// IllustrationResponse carries the stored name and delivery URL of a
// generated picture.
type IllustrationResponse struct {
	IllustrationID string `json:"illustration_id"`
	Illustration   string `json:"illustration"`
}
