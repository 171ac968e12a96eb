package models

import (
	"time"
)

// User is the directory's profile record. The id is the identity
// provider's subject, assigned outside this system.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Username  string    `json:"username" gorm:"type:text;uniqueIndex;not null"`
	Bio       string    `json:"bio" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Post struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	Title      string    `json:"title" gorm:"type:text;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	AuthorID   string    `json:"user_id" gorm:"type:text;index;not null"`
	AuthorName string    `json:"username" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Comment rows are never hard-deleted; deletion flips IsDeleted so the
// comment stays addressable for moderation while vanishing from listings.
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	PostID     string    `json:"post_id" gorm:"type:text;index;not null"`
	AuthorID   string    `json:"user_id" gorm:"type:text;index;not null"`
	AuthorName string    `json:"username" gorm:"type:text"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	IsDeleted  bool      `json:"is_deleted" gorm:"type:boolean;not null;default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
