package domain

import (
	"time"
)

// CREATE TABLE public.preferences (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id      UUID NOT NULL REFERENCES users(user_id),
//     category_id  BIGINT NOT NULL REFERENCES categories(category_id),
//     weight       NUMERIC NOT NULL DEFAULT 1.0,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Preference struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"column:user_id;not null" json:"user_id"`
	CategoryID int64     `gorm:"column:category_id;not null" json:"category_id"`
	Weight     float64   `gorm:"column:weight;not null;default:1.0" json:"weight"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Preference) TableName() string {
	return "preferences"
}
