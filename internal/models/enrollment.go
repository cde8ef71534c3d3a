package models

import "time"

// Enrollment places an athlete on a team.
type Enrollment struct {
	ID        int64     `db:"id" json:"id"`
	TeamID    int64     `db:"id_team" json:"id_team"`
	AthleteID int64     `db:"id_athlete" json:"id_athlete"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EnrollmentDetail adds display names to an enrollment.
type EnrollmentDetail struct {
	Enrollment
	TeamName    string `db:"team_name" json:"team_name"`
	AthleteName string `db:"athlete_name" json:"athlete_name"`
}

// EnrollmentFilter narrows enrollment listings.
type EnrollmentFilter struct {
	TeamID    int64
	AthleteID int64
}
