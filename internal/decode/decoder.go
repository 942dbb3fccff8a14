package decode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shrimpsizemoose/poangtavla/internal/models"
	"github.com/shrimpsizemoose/poangtavla/internal/store"
)

// LoadError means the input stream is malformed or truncated. The pipeline
// aborts before any computation and emits nothing.
type LoadError struct {
	Section string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Section, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Decoder consumes the judge's line-oriented fact dump: one contest record,
// then count-prefixed problem, user and submission lists. The ProblemType and
// Status enumerations are injected, not read from input.
type Decoder struct {
	r               *bufio.Reader
	correctStatusID int64
}

func NewDecoder(r io.Reader, correctStatusID int64) *Decoder {
	return &Decoder{
		r:               bufio.NewReader(r),
		correctStatusID: correctStatusID,
	}
}

// Load reads the full dump into fs. On a LoadError the store contents are
// undefined and must not be used.
func (d *Decoder) Load(fs store.FactStore) error {
	contest, err := d.readContest()
	if err != nil {
		return err
	}
	if err := fs.InsertContest(contest); err != nil {
		return err
	}

	problems, err := d.readProblems()
	if err != nil {
		return err
	}
	if err := fs.InsertProblems(problems); err != nil {
		return err
	}
	if err := fs.InsertProblemTypes(models.InjectedProblemTypes()); err != nil {
		return err
	}

	users, err := d.readUsers()
	if err != nil {
		return err
	}
	if err := fs.InsertUsers(users); err != nil {
		return err
	}

	subs, err := d.readSubmissions()
	if err != nil {
		return err
	}
	if err := fs.InsertSubmissions(subs); err != nil {
		return err
	}

	return fs.InsertStatuses(models.InjectedStatuses(d.correctStatusID))
}

func (d *Decoder) readContest() (models.Contest, error) {
	fields, err := d.record("contest", 6)
	if err != nil {
		return models.Contest{}, err
	}

	var c models.Contest
	if c.StartGz, err = parseInt("contest", fields[0]); err != nil {
		return models.Contest{}, err
	}
	if c.EndGz, err = parseInt("contest", fields[1]); err != nil {
		return models.Contest{}, err
	}
	if c.SolLimit, err = parseInt("contest", fields[2]); err != nil {
		return models.Contest{}, err
	}
	c.Code = fields[3]
	c.Name = fields[4]
	if c.Now, err = parseTime("contest", fields[5]); err != nil {
		return models.Contest{}, err
	}
	return c, nil
}

func (d *Decoder) readProblems() ([]models.Problem, error) {
	nRecords, err := d.count("problem")
	if err != nil {
		return nil, err
	}
	nLines, err := d.count("problem")
	if err != nil {
		return nil, err
	}

	problems := make([]models.Problem, 0, nRecords)
	for i := 0; i < nRecords; i++ {
		fields, err := d.lines("problem", nLines, 11)
		if err != nil {
			return nil, err
		}
		var p models.Problem
		if p.ID, err = parseInt("problem", fields[0]); err != nil {
			return nil, err
		}
		if p.TimeLimit, err = parseInt("problem", fields[1]); err != nil {
			return nil, err
		}
		p.Code = fields[2]
		p.Name = fields[3]
		if p.ProblemTypeID, err = parseInt("problem", fields[4]); err != nil {
			return nil, err
		}
		p.Pset = fields[5]
		if p.StartGz, err = parseInt("problem", fields[6]); err != nil {
			return nil, err
		}
		if p.EndGz, err = parseInt("problem", fields[7]); err != nil {
			return nil, err
		}
		p.Info = fields[8]
		if p.SetterID, err = parseInt("problem", fields[9]); err != nil {
			return nil, err
		}
		p.Source = fields[10]
		problems = append(problems, p)
	}
	return problems, nil
}

func (d *Decoder) readUsers() ([]models.User, error) {
	nRecords, err := d.count("user")
	if err != nil {
		return nil, err
	}
	nLines, err := d.count("user")
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, nRecords)
	for i := 0; i < nRecords; i++ {
		fields, err := d.lines("user", nLines, 9)
		if err != nil {
			return nil, err
		}
		var u models.User
		if u.ID, err = parseInt("user", fields[0]); err != nil {
			return nil, err
		}
		u.Username = fields[1]
		u.Name = fields[2]
		u.School = fields[3]
		u.Email = fields[4]
		u.Info1 = fields[5]
		u.Info2 = fields[6]
		if u.Start, err = parseTime("user", fields[7]); err != nil {
			return nil, err
		}
		if u.End, err = parseTime("user", fields[8]); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (d *Decoder) readSubmissions() ([]models.Submission, error) {
	// The dump carries two stray lines around the submission counts.
	if _, err := d.line("submission"); err != nil {
		return nil, err
	}
	nLines, err := d.count("submission")
	if err != nil {
		return nil, err
	}
	if _, err := d.line("submission"); err != nil {
		return nil, err
	}
	nRecords, err := d.count("submission")
	if err != nil {
		return nil, err
	}

	subs := make([]models.Submission, 0, nRecords)
	for i := 0; i < nRecords; i++ {
		fields, err := d.lines("submission", nLines, 9)
		if err != nil {
			return nil, err
		}
		var s models.Submission
		if s.UserID, err = parseInt("submission", fields[0]); err != nil {
			return nil, err
		}
		if s.ProblemID, err = parseInt("submission", fields[1]); err != nil {
			return nil, err
		}
		if s.SubmitGz, err = parseInt("submission", fields[2]); err != nil {
			return nil, err
		}
		if s.StatusID, err = parseInt("submission", fields[3]); err != nil {
			return nil, err
		}
		if s.LanguageID, err = parseInt("submission", fields[4]); err != nil {
			return nil, err
		}
		if s.Score, err = parseFloat("submission", fields[5]); err != nil {
			return nil, err
		}
		if s.Time, err = parseFloat("submission", fields[6]); err != nil {
			return nil, err
		}
		s.Date = fields[7]
		if s.SubmissionID, err = parseInt("submission", fields[8]); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// record reads a single count-prefixed record: a line count, then that many
// lines, of which the first keep are meaningful.
func (d *Decoder) record(section string, keep int) ([]string, error) {
	nLines, err := d.count(section)
	if err != nil {
		return nil, err
	}
	return d.lines(section, nLines, keep)
}

func (d *Decoder) lines(section string, n, keep int) ([]string, error) {
	if n < keep {
		return nil, &LoadError{section, fmt.Errorf("record has %d lines, expected at least %d", n, keep)}
	}
	fields := make([]string, 0, keep)
	for i := 0; i < n; i++ {
		line, err := d.line(section)
		if err != nil {
			return nil, err
		}
		if i < keep {
			fields = append(fields, line)
		}
	}
	return fields, nil
}

func (d *Decoder) count(section string) (int, error) {
	line, err := d.line(section)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, &LoadError{section, fmt.Errorf("bad count %q", line)}
	}
	if n < 0 {
		return 0, &LoadError{section, fmt.Errorf("negative count %d", n)}
	}
	return n, nil
}

func (d *Decoder) line(section string) (string, error) {
	line, err := d.r.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", &LoadError{section, fmt.Errorf("truncated input")}
	}
	if err != nil && err != io.EOF {
		return "", &LoadError{section, err}
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Field coercion is deliberately loose for optional columns: an empty field
// coerces to the zero value, anything else has to parse.

func parseInt(section, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &LoadError{section, fmt.Errorf("bad integer %q", s)}
	}
	return n, nil
}

func parseFloat(section, s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &LoadError{section, fmt.Errorf("bad number %q", s)}
	}
	return f, nil
}

func parseTime(section, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{models.TimeLayout, models.TimeLayoutFrac} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &LoadError{section, fmt.Errorf("bad timestamp %q", s)}
}
