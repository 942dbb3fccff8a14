package models

import "time"

// Timestamp layouts accepted for contest/user instants. The judge emits
// seconds precision but older dumps carry microseconds.
const (
	TimeLayout     = "2006-01-02 15:04:05"
	TimeLayoutFrac = "2006-01-02 15:04:05.999999"
)

// Contest is the single contest row of a fact dump. StartGz/EndGz are unix
// seconds; Now is the instant the dump was taken and drives the banner grid.
type Contest struct {
	StartGz  int64     `db:"start_gz"`
	EndGz    int64     `db:"end_gz"`
	SolLimit int64     `db:"sol_limit"`
	Code     string    `db:"code"`
	Name     string    `db:"name"`
	Now      time.Time `db:"now"`
}

type Problem struct {
	ID            int64  `db:"id"`
	TimeLimit     int64  `db:"time_limit"`
	Code          string `db:"code"`
	Name          string `db:"name"`
	ProblemTypeID int64  `db:"problem_type_id"`
	Pset          string `db:"pset"`
	StartGz       int64  `db:"start_gz"`
	EndGz         int64  `db:"end_gz"`
	Info          string `db:"info"`
	SetterID      int64  `db:"problem_setter_id"`
	Source        string `db:"source"`
}

type ProblemType struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type User struct {
	ID       int64     `db:"id"`
	Username string    `db:"username"`
	Name     string    `db:"name"`
	School   string    `db:"school"`
	Email    string    `db:"email"`
	Info1    string    `db:"info1"`
	Info2    string    `db:"info2"`
	Start    time.Time `db:"start"`
	End      time.Time `db:"end"`
}

// Submission is one judged attempt. SubmitGz is unix seconds; Date is the
// wall-clock label the judge recorded and is carried verbatim.
type Submission struct {
	UserID       int64   `db:"user_id"`
	ProblemID    int64   `db:"problem_id"`
	SubmitGz     int64   `db:"submit_gz"`
	StatusID     int64   `db:"status_id"`
	LanguageID   int64   `db:"language_id"`
	Score        float64 `db:"score"`
	Time         float64 `db:"time"`
	Date         string  `db:"date"`
	SubmissionID int64   `db:"submission_id"`
}

type Status struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Fixed enumerations the engine injects itself; they are not part of the
// fact dump.
const (
	ProblemTypeClassical = "CLASSICAL"
	ProblemTypeChallenge = "CHALLENGE"

	StatusCorrect = "CORRECT"

	// CorrectStatusID is the status id the installation assigns to accepted
	// submissions.
	CorrectStatusID = 15
)

func InjectedProblemTypes() []ProblemType {
	return []ProblemType{
		{ID: 0, Name: ProblemTypeClassical},
		{ID: 1, Name: ProblemTypeChallenge},
	}
}

func InjectedStatuses(correctID int64) []Status {
	return []Status{
		{ID: correctID, Name: StatusCorrect},
	}
}
