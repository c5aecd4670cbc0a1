package models

import "time"

// Image stores an uploaded picture for a recipe together with its derived
// thumbnail. Data may be absent when only a thumbnail survives; Thumbnail and
// ThumbnailContentType are absent when derivation was skipped. Size always
// equals len(Data) at ingestion time.
type Image struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	RecipeID             uint      `gorm:"not null;index" json:"recipe_id"`
	Filename             string    `gorm:"size:255;not null" json:"filename"`
	ContentType          string    `gorm:"size:100;not null;default:application/octet-stream" json:"content_type"`
	Size                 uint      `gorm:"not null;default:0" json:"size"`
	Data                 []byte    `json:"-"`
	Thumbnail            []byte    `json:"-"`
	ThumbnailContentType *string   `gorm:"size:100" json:"thumbnail_content_type,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

func (Image) TableName() string {
	return "images"
}
