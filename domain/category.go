package domain

import (
	"time"
)

// CREATE TABLE public.categories (
//     category_id  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name         TEXT NOT NULL,
//     label        TEXT NOT NULL,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Category struct {
	CategoryID int64     `gorm:"primaryKey;column:category_id;autoIncrement" json:"category_id"`
	Name       string    `gorm:"column:name;type:text;not null" json:"name"`
	Label      string    `gorm:"column:label;type:text;not null" json:"label"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
