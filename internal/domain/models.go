package domain

import "time"

const MaxDescriptionLength = 200

// FirstFilmScreening is the earliest release date a film may carry.
var FirstFilmScreening = NewDate(1895, time.December, 28)

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Rating is an MPA film rating.
type Rating struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type Film struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"notblank"`
	Description string  `json:"description" validate:"max=200"`
	ReleaseDate Date    `json:"releaseDate" validate:"required,releasedate"`
	Duration    int     `json:"duration" validate:"gte=0"`
	Mpa         *Rating `json:"mpa"`
	Genres      []Genre `json:"genres"`
}

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"notblank,nowhitespace"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" validate:"required,notfuture"`
}
