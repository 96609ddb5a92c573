package model

import "github.com/google/uuid"

// ChatMessage is one line of the global chat. UserEmail is snapshotted so
// messages render without a user join.
type ChatMessage struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserEmail string    `gorm:"type:varchar(255);not null" json:"user_email"`
	Message   string    `gorm:"type:varchar(500);not null" json:"message" validate:"required,min=1,max=500"`
}
