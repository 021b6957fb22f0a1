package model

// Campus is a campus with a walkable 3D model.
type Campus struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	// FileName is the 3D asset path relative to /public.
	FileName  string  `json:"file_name"`
	Thumbnail *string `json:"thumbnail"`

	// Absolute URLs derived from the configured base URL; never stored.
	ModelURL     string `json:"model_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}
