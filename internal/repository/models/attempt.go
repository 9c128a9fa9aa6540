package models

import "time"

// ReadingAttempt is a row of READING_ATTEMPTS
type ReadingAttempt struct {
	ID             string    `db:"ID"` // ULID, equal to the result id
	TestType       string    `db:"TEST_TYPE"`
	TotalQuestions int       `db:"TOTAL_QUESTIONS"`
	CorrectAnswers int       `db:"CORRECT_ANSWERS"`
	BandScore      float64   `db:"BAND_SCORE"`
	CreatedAt      time.Time `db:"CREATED_AT"`
}
