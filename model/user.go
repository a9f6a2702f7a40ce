package model

import "time"

type User struct {
	UserID             string    `bson:"user_id" json:"user_id"`
	Name               string    `bson:"name" json:"name" validate:"required,min=2,max=50"`
	Email              string    `bson:"email" json:"email" validate:"required,email"`
	Password           string    `bson:"password" json:"-" validate:"required,password"` // Argon2id salt$hash, never serialized
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	LastPasswordChange time.Time `bson:"last_password_change,omitempty" json:"-"`
}
