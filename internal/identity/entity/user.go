package entity

import "time"

type User struct {
	ID        int64
	Email     string
	Phone     string
	FullName  string
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserCredential struct {
	User
	Password string // hashed
}

type NewUser struct {
	ID        int64
	Email     string
	Phone     string
	FullName  string
	Password  string // hashed
	Status    UserStatus
	CreatedAt time.Time
}
