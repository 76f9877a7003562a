package models

import (
	"time"

	"github.com/uptrace/bun"
)

const NameMaxLength = 50

// User is a row of the places table.
type User struct {
	bun.BaseModel `bun:"table:places"`

	ID       int64     `bun:"id,pk,autoincrement"`
	Name     string    `bun:"name,type:varchar(50),notnull"`
	Birth    time.Time `bun:"birth,nullzero"`
	Category *string   `bun:"category"`
	Notes    *string   `bun:"notes"`
}

// UserCreate is the request body of POST /users/.
type UserCreate struct {
	ID       *int64     `json:"id" validate:"omitempty,gte=1"`
	Name     string     `json:"name" validate:"required,max=50"`
	Birth    *Timestamp `json:"birth"`
	Category *string    `json:"category"`
	Notes    *string    `json:"notes"`
}

// UserResponse is the wire shape of a stored user.
type UserResponse struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Birth    *Timestamp `json:"birth"`
	Category *string    `json:"category"`
	Notes    *string    `json:"notes"`
}

func ToUserRow(in UserCreate) User {
	user := User{
		Name:     in.Name,
		Category: in.Category,
		Notes:    in.Notes,
	}
	if in.ID != nil {
		user.ID = *in.ID
	}
	if in.Birth != nil {
		user.Birth = in.Birth.Time
	}
	return user
}

func ToUserResponse(user User) UserResponse {
	out := UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Category: user.Category,
		Notes:    user.Notes,
	}
	if !user.Birth.IsZero() {
		out.Birth = &Timestamp{Time: user.Birth}
	}
	return out
}

func ToUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
