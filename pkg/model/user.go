package model

import "time"

// User is created lazily on first verified login and never deleted.
// Phone is the login key and is unique across the collection.
type User struct {
	UserID    string    `json:"userId" bson:"user_id"`
	Phone     string    `json:"mobile" bson:"phone" validate:"required"`
	Name      string    `json:"name" bson:"name" validate:"omitempty,max=100"`
	Email     string    `json:"email" bson:"email" validate:"omitempty,email"`
	DOB       string    `json:"dob" bson:"dob" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// ProfileUpdate carries the mutable profile fields. Empty strings clear
// the field, matching the original profile semantics.
type ProfileUpdate struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	DOB   string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
}
