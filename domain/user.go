package domain

import (
	"time"
)

// CREATE TABLE public.users (
//     user_id     UUID PRIMARY KEY,
//     name        TEXT NOT NULL,
//     email       TEXT UNIQUE NOT NULL,
//     password    TEXT NOT NULL,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type User struct {
	UserID    string    `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"column:email;unique;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
