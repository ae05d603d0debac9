package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/starford/moodlog/internal/models"
)

const dayLayout = "2006-01-02"

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Path          string    `json:"path"`
	Checksum      string    `json:"checksum"`
	UpdatedAt     time.Time `json:"updated_at"`
	DailyLogs     int       `json:"daily_logs"`
	WeeklyReviews int       `json:"weekly_reviews"`
}

// SearchResult represents one matching daily entry.
type SearchResult struct {
	Document string `json:"document"`
	Position int    `json:"position"`
	Date     string `json:"date"`
	Snippet  string `json:"snippet"`
}

const dailyColumns = `day_of_week, date, mood, focus, achievements, challenges, notes`

const weeklyColumns = `week, overall_mood, overall_productivity, key_achievements, challenges, goals`

// ReplaceDocument stores the entries parsed from one document, replacing any
// previous rows for it, within a transaction.
func (db *DB) ReplaceDocument(doc DocumentRow, daily []models.DailyLogEntry, weekly []models.WeeklyReviewEntry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO documents (path, checksum, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, doc.Path, doc.Checksum, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	ftsDeleteDocument(tx, doc.Path)
	if _, err := tx.Exec(`DELETE FROM daily_logs WHERE document = ?`, doc.Path); err != nil {
		return fmt.Errorf("index: clear daily logs: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM weekly_reviews WHERE document = ?`, doc.Path); err != nil {
		return fmt.Errorf("index: clear weekly reviews: %w", err)
	}

	if len(daily) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO daily_logs (document, position, day, ` + dailyColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare daily insert: %w", err)
		}
		defer stmt.Close()
		for i, e := range daily {
			_, err := stmt.Exec(doc.Path, i, dayValue(e), e.DayOfWeek, e.Date,
				nullFloat(e.Mood), nullFloat(e.Focus),
				jsonList(e.Achievements), jsonList(e.Challenges), nullString(e.Notes))
			if err != nil {
				return fmt.Errorf("index: insert daily log: %w", err)
			}
			if err := ftsUpsert(tx, doc.Path, i, e.Date, searchBody(e)); err != nil {
				return err
			}
		}
	}

	if len(weekly) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO weekly_reviews (document, position, ` + weeklyColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare weekly insert: %w", err)
		}
		defer stmt.Close()
		for i, r := range weekly {
			_, err := stmt.Exec(doc.Path, i, r.Week,
				nullFloat(r.OverallMood), nullFloat(r.OverallProductivity),
				jsonList(r.KeyAchievements), jsonList(r.Challenges), jsonList(r.GoalsForNextWeek))
			if err != nil {
				return fmt.Errorf("index: insert weekly review: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteDocument removes a document and every entry parsed from it.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDeleteDocument(tx, path)
	_, _ = tx.Exec(`DELETE FROM daily_logs WHERE document = ?`, path)
	_, _ = tx.Exec(`DELETE FROM weekly_reviews WHERE document = ?`, path)
	_, _ = tx.Exec(`DELETE FROM documents WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a document, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM documents WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// ListDocuments returns every indexed document with its entry counts.
func (db *DB) ListDocuments() ([]DocumentRow, error) {
	rows, err := db.conn.Query(`
		SELECT d.path, d.checksum, d.updated_at,
		       (SELECT count(*) FROM daily_logs WHERE document = d.path),
		       (SELECT count(*) FROM weekly_reviews WHERE document = d.path)
		FROM documents d
		ORDER BY d.path
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list documents: %w", err)
	}
	defer rows.Close()

	out := []DocumentRow{}
	for rows.Next() {
		var d DocumentRow
		if err := rows.Scan(&d.Path, &d.Checksum, &d.UpdatedAt, &d.DailyLogs, &d.WeeklyReviews); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DailyLogs returns the daily entries of a document in source order.
func (db *DB) DailyLogs(path string) ([]models.DailyLogEntry, error) {
	rows, err := db.conn.Query(`SELECT `+dailyColumns+` FROM daily_logs WHERE document = ? ORDER BY position`, path)
	if err != nil {
		return nil, fmt.Errorf("index: daily logs: %w", err)
	}
	return scanDaily(rows)
}

// DailyLogsBetween returns daily entries from every document whose valid date
// falls within [from, to], ordered by date.
func (db *DB) DailyLogsBetween(from, to time.Time) ([]models.DailyLogEntry, error) {
	rows, err := db.conn.Query(`
		SELECT `+dailyColumns+`
		FROM daily_logs
		WHERE day IS NOT NULL AND day >= ? AND day <= ?
		ORDER BY day, document, position
	`, from.Format(dayLayout), to.Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("index: daily logs between: %w", err)
	}
	return scanDaily(rows)
}

// WeeklyReviews returns the weekly reviews of a document in source order.
func (db *DB) WeeklyReviews(path string) ([]models.WeeklyReviewEntry, error) {
	rows, err := db.conn.Query(`SELECT `+weeklyColumns+` FROM weekly_reviews WHERE document = ? ORDER BY position`, path)
	if err != nil {
		return nil, fmt.Errorf("index: weekly reviews: %w", err)
	}
	defer rows.Close()

	out := []models.WeeklyReviewEntry{}
	for rows.Next() {
		var (
			r                 models.WeeklyReviewEntry
			mood, prod        sql.NullFloat64
			keys, chal, goals sql.NullString
		)
		if err := rows.Scan(&r.Week, &mood, &prod, &keys, &chal, &goals); err != nil {
			return nil, err
		}
		r.OverallMood = floatPtr(mood)
		r.OverallProductivity = floatPtr(prod)
		r.KeyAchievements = listFrom(keys)
		r.Challenges = listFrom(chal)
		r.GoalsForNextWeek = listFrom(goals)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecordAnalysis stores a generated analysis.
func (db *DB) RecordAnalysis(a models.Analysis) error {
	_, err := db.conn.Exec(`
		INSERT INTO analyses (id, document, mode, prompt, summary, written, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Document, string(a.Mode), a.Prompt, a.Summary, a.Written, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("index: record analysis: %w", err)
	}
	return nil
}

// ListAnalyses returns the newest analyses first. An empty path lists all documents.
func (db *DB) ListAnalyses(path string, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, document, mode, prompt, summary, written, created_at FROM analyses`
	args := []any{}
	if path != "" {
		query += ` WHERE document = ?`
		args = append(args, path)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: list analyses: %w", err)
	}
	defer rows.Close()

	out := []models.Analysis{}
	for rows.Next() {
		var (
			a    models.Analysis
			mode string
		)
		if err := rows.Scan(&a.ID, &a.Document, &mode, &a.Prompt, &a.Summary, &a.Written, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Mode = models.Mode(mode)
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanDaily(rows *sql.Rows) ([]models.DailyLogEntry, error) {
	defer rows.Close()
	out := []models.DailyLogEntry{}
	for rows.Next() {
		var (
			e           models.DailyLogEntry
			mood, focus sql.NullFloat64
			ach, chal   sql.NullString
			notes       sql.NullString
		)
		if err := rows.Scan(&e.DayOfWeek, &e.Date, &mood, &focus, &ach, &chal, &notes); err != nil {
			return nil, err
		}
		e.Mood = floatPtr(mood)
		e.Focus = floatPtr(focus)
		e.Achievements = listFrom(ach)
		e.Challenges = listFrom(chal)
		if notes.Valid {
			n := notes.String
			e.Notes = &n
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func dayValue(e models.DailyLogEntry) any {
	d, ok := e.Day()
	if !ok {
		return nil
	}
	return d.Format(dayLayout)
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func jsonList(items []string) any {
	if items == nil {
		return nil
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func listFrom(n sql.NullString) []string {
	if !n.Valid {
		return nil
	}
	out := []string{}
	_ = json.Unmarshal([]byte(n.String), &out)
	return out
}

// searchBody is the text indexed for full-text search of a daily entry.
func searchBody(e models.DailyLogEntry) string {
	parts := append([]string{}, e.Achievements...)
	parts = append(parts, e.Challenges...)
	if e.Notes != nil {
		parts = append(parts, *e.Notes)
	}
	return strings.Join(parts, "\n")
}
