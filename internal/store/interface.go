package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/poangtavla/internal/models"
)

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

// FactStore holds the six entity sets of one contest dump. It is populated
// once by the decoder and read-only afterwards; no derived columns live here.
type FactStore interface {
	Close() error
	EnsureSchema() error

	InsertContest(contest models.Contest) error
	InsertProblems(problems []models.Problem) error
	InsertProblemTypes(types []models.ProblemType) error
	InsertUsers(users []models.User) error
	InsertSubmissions(subs []models.Submission) error
	InsertStatuses(statuses []models.Status) error

	Contest() (models.Contest, error)
	Problems() ([]models.Problem, error)
	Users() ([]models.User, error)
	Submissions() ([]models.Submission, error)
	ProblemTypes() (map[int64]string, error)
	Statuses() (map[int64]string, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplySchema creates the fact tables, translating dialect if needed
func (s *BaseStore) ApplySchema(ddl string, translateSQL func(string) string) error {
	if translateSQL != nil {
		ddl = translateSQL(ddl)
	}
	if _, err := s.DB.Exec(ddl); err != nil {
		return fmt.Errorf("failed to apply fact schema: %w", err)
	}
	return nil
}

func (s *BaseStore) InsertContest(contest models.Contest) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO contest (start_gz, end_gz, sol_limit, code, name, now)
		VALUES (:start_gz, :end_gz, :sol_limit, :code, :name, :now)
	`, contest)
	if err != nil {
		return fmt.Errorf("failed to insert contest: %w", err)
	}
	return nil
}

func (s *BaseStore) InsertProblems(problems []models.Problem) error {
	for _, p := range problems {
		_, err := s.DB.NamedExec(`
			INSERT INTO problem (id, time_limit, code, name, problem_type_id, pset, start_gz, end_gz, info, problem_setter_id, source)
			VALUES (:id, :time_limit, :code, :name, :problem_type_id, :pset, :start_gz, :end_gz, :info, :problem_setter_id, :source)
		`, p)
		if err != nil {
			return fmt.Errorf("failed to insert problem %s: %w", p.Code, err)
		}
	}
	return nil
}

func (s *BaseStore) InsertProblemTypes(types []models.ProblemType) error {
	for _, pt := range types {
		_, err := s.DB.NamedExec(`
			INSERT INTO problem_type (id, name) VALUES (:id, :name)
		`, pt)
		if err != nil {
			return fmt.Errorf("failed to insert problem type %s: %w", pt.Name, err)
		}
	}
	return nil
}

func (s *BaseStore) InsertUsers(users []models.User) error {
	for _, u := range users {
		_, err := s.DB.NamedExec(`
			INSERT INTO contest_user (id, username, name, school, email, info1, info2, start, "end")
			VALUES (:id, :username, :name, :school, :email, :info1, :info2, :start, :end)
		`, u)
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.Username, err)
		}
	}
	return nil
}

func (s *BaseStore) InsertSubmissions(subs []models.Submission) error {
	for _, sub := range subs {
		_, err := s.DB.NamedExec(`
			INSERT INTO submission (user_id, problem_id, submit_gz, status_id, language_id, score, time, date, submission_id)
			VALUES (:user_id, :problem_id, :submit_gz, :status_id, :language_id, :score, :time, :date, :submission_id)
		`, sub)
		if err != nil {
			return fmt.Errorf("failed to insert submission %d: %w", sub.SubmissionID, err)
		}
	}
	return nil
}

func (s *BaseStore) InsertStatuses(statuses []models.Status) error {
	for _, st := range statuses {
		_, err := s.DB.NamedExec(`
			INSERT INTO status (id, name) VALUES (:id, :name)
		`, st)
		if err != nil {
			return fmt.Errorf("failed to insert status %s: %w", st.Name, err)
		}
	}
	return nil
}

func (s *BaseStore) Contest() (models.Contest, error) {
	var contest models.Contest
	err := s.DB.Get(&contest, s.Converter(`
		SELECT start_gz, end_gz, sol_limit, code, name, now FROM contest
	`))
	if err != nil {
		return models.Contest{}, fmt.Errorf("failed to get contest: %w", err)
	}
	return contest, nil
}

func (s *BaseStore) Problems() ([]models.Problem, error) {
	var problems []models.Problem
	err := s.DB.Select(&problems, s.Converter(`
		SELECT id, time_limit, code, name, problem_type_id, pset, start_gz, end_gz, info, problem_setter_id, source
		FROM problem
		ORDER BY id
	`))
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

func (s *BaseStore) Users() ([]models.User, error) {
	var users []models.User
	err := s.DB.Select(&users, s.Converter(`
		SELECT id, username, name, school, email, info1, info2, start, "end"
		FROM contest_user
		ORDER BY username
	`))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *BaseStore) Submissions() ([]models.Submission, error) {
	var subs []models.Submission
	err := s.DB.Select(&subs, s.Converter(`
		SELECT user_id, problem_id, submit_gz, status_id, language_id, score, time, date, submission_id
		FROM submission
		ORDER BY submission_id
	`))
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

func (s *BaseStore) ProblemTypes() (map[int64]string, error) {
	return s.nameTable("problem_type")
}

func (s *BaseStore) Statuses() (map[int64]string, error) {
	return s.nameTable("status")
}

func (s *BaseStore) nameTable(table string) (map[int64]string, error) {
	var rows []struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	err := s.DB.Select(&rows, fmt.Sprintf(`SELECT id, name FROM %s`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	names := make(map[int64]string, len(rows))
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}
