package domain

import (
	"time"
)

// CREATE TABLE public.reviews (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id         UUID NOT NULL REFERENCES users(user_id),
//     destination_id  BIGINT NOT NULL REFERENCES destinations(destination_id),
//     rating          INT NOT NULL,
//     review          TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, destination_id)
// );

type Review struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string    `gorm:"column:user_id;not null;uniqueIndex:idx_reviews_user_destination" json:"user_id"`
	DestinationID uint64    `gorm:"column:destination_id;not null;uniqueIndex:idx_reviews_user_destination" json:"destination_id"`
	Rating        int       `gorm:"column:rating;not null" json:"rating"`
	Review        string    `gorm:"column:review;type:text" json:"review,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
