package domain

import (
	"time"
)

// CREATE TABLE public.destinations (
//     destination_id   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name             TEXT NOT NULL,
//     category_id      BIGINT NOT NULL REFERENCES categories(category_id),
//     description      TEXT,
//     full_description TEXT,
//     image_url        TEXT,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

type Destination struct {
	DestinationID   uint64    `gorm:"primaryKey;column:destination_id;autoIncrement" json:"destination_id"`
	Name            string    `gorm:"column:name;type:text;not null" json:"name"`
	CategoryID      int64     `gorm:"column:category_id;not null" json:"category_id"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	FullDescription string    `gorm:"column:full_description;type:text" json:"full_description,omitempty"`
	ImageURL        string    `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"-"`
}

func (Destination) TableName() string {
	return "destinations"
}

// DestinationDetails is a read model joining the category name, served by the
// destination detail endpoint.
type DestinationDetails struct {
	Destination
	CategoryName string `json:"category_name,omitempty"`
}

// DestinationRef is the minimal projection used as a recommendation
// candidate: the raw id (stringified, matching the model artifact's raw item
// ids) plus its category.
type DestinationRef struct {
	ID         string
	CategoryID int64
}
