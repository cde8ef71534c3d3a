package models

import "time"

// Coach owns teams and metrics.
type Coach struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	LevelID   *int64    `db:"id_level" json:"id_level,omitempty"`
	PhotoPath *string   `db:"photo_path" json:"photo_path,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Sport scopes teams, exercises and metrics.
type Sport struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	PhotoPath   *string   `db:"photo_path" json:"photo_path,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Team groups athletes under a coach for one sport.
type Team struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CoachID   int64     `db:"id_coach" json:"id_coach"`
	SportID   int64     `db:"id_sport" json:"id_sport"`
	PhotoPath *string   `db:"photo_path" json:"photo_path,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TeamFilter narrows team listings.
type TeamFilter struct {
	ListFilter
	CoachID int64
	SportID int64
}

// Athlete is a person tracked by routines and metrics.
type Athlete struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	BirthDate *Date     `db:"birth_date" json:"birth_date,omitempty"`
	PhotoPath *string   `db:"photo_path" json:"photo_path,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PhotoOwner names the tables that carry a photo_path column.
type PhotoOwner string

const (
	PhotoOwnerTeam     PhotoOwner = "teams"
	PhotoOwnerAthlete  PhotoOwner = "athletes"
	PhotoOwnerCoach    PhotoOwner = "coaches"
	PhotoOwnerSport    PhotoOwner = "sports"
	PhotoOwnerExercise PhotoOwner = "exercises"
)

// Valid reports whether o is a known photo owner.
func (o PhotoOwner) Valid() bool {
	switch o {
	case PhotoOwnerTeam, PhotoOwnerAthlete, PhotoOwnerCoach, PhotoOwnerSport, PhotoOwnerExercise:
		return true
	}
	return false
}
