package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"riplogcheck/internal/checklist"
	"riplogcheck/internal/logging"
)

// ErrNotFound is returned by Get when no evaluation matches.
var ErrNotFound = errors.New("evaluation not found")

// ErrAmbiguousID is returned by Get when an ID prefix matches several runs.
var ErrAmbiguousID = errors.New("ambiguous evaluation id")

// Entry is one stored evaluation.
type Entry struct {
	ID             string                         `json:"id" yaml:"id"`
	LogPath        string                         `json:"log_path" yaml:"log_path"`
	Profile        string                         `json:"profile" yaml:"profile"`
	DeductedPoints int                            `json:"deducted_points" yaml:"deducted_points"`
	Criteria       []checklist.CriterionID        `json:"criteria" yaml:"criteria"`
	Flags          map[checklist.CriterionID]bool `json:"flags" yaml:"flags"`
	CreatedAt      time.Time                      `json:"created_at" yaml:"created_at"`
}

// Result rebuilds the checklist result, including its criterion order.
func (e Entry) Result() *checklist.Result {
	result := &checklist.Result{
		Profile:        e.Profile,
		DeductedPoints: e.DeductedPoints,
		Flags:          make(map[checklist.CriterionID]bool, len(e.Flags)),
	}
	for criterion, violated := range e.Flags {
		result.Flags[criterion] = violated
	}
	result.RestoreOrder(e.Criteria)
	return result
}

// Record stores a completed evaluation and returns it with its new run ID.
func (s *Store) Record(ctx context.Context, logPath string, result *checklist.Result) (Entry, error) {
	if result == nil {
		return Entry{}, errors.New("record evaluation: nil result")
	}
	entry := Entry{
		ID:             uuid.NewString(),
		LogPath:        logPath,
		Profile:        result.Profile,
		DeductedPoints: result.DeductedPoints,
		Criteria:       result.Criteria(),
		Flags:          result.Clone().Flags,
		CreatedAt:      time.Now().UTC(),
	}
	criteria, err := json.Marshal(entry.Criteria)
	if err != nil {
		return Entry{}, fmt.Errorf("encode criteria: %w", err)
	}
	flags, err := json.Marshal(entry.Flags)
	if err != nil {
		return Entry{}, fmt.Errorf("encode flags: %w", err)
	}
	_, err = s.execWithRetry(ctx,
		`INSERT INTO evaluations (id, log_path, profile, deducted_points, criteria, flags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.LogPath, entry.Profile, entry.DeductedPoints,
		string(criteria), string(flags), entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert evaluation: %w", err)
	}
	s.logger.Debug("evaluation recorded",
		logging.String(logging.FieldRunID, entry.ID),
		logging.String(logging.FieldPath, logPath),
		logging.Int("deducted_points", entry.DeductedPoints))
	return entry, nil
}

const selectColumns = `SELECT id, log_path, profile, deducted_points, criteria, flags, created_at FROM evaluations`

// List returns the most recent evaluations, newest first. A limit of zero
// or less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := selectColumns + ` ORDER BY seq DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Get returns the evaluation whose ID equals or starts with id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	ctx = ensureContext(ctx)
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return Entry{}, ErrNotFound
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(id)
	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE id LIKE ? ESCAPE '\' ORDER BY seq DESC LIMIT 2`, escaped+"%")
	if err != nil {
		return Entry{}, fmt.Errorf("get evaluation: %w", err)
	}
	defer rows.Close()
	entries, err := scanEntries(rows)
	if err != nil {
		return Entry{}, err
	}
	switch len(entries) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return entries[0], nil
	default:
		for _, entry := range entries {
			if entry.ID == id {
				return entry, nil
			}
		}
		return Entry{}, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// Prune deletes all but the newest keep evaluations and returns how many
// rows were removed. A keep of zero or less removes nothing.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM evaluations WHERE seq NOT IN (SELECT seq FROM evaluations ORDER BY seq DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune evaluations: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune evaluations: %w", err)
	}
	if removed > 0 {
		s.logger.Info("history pruned", logging.Int64("removed", removed), logging.Int("kept", keep))
	}
	return removed, nil
}

// Count returns the number of stored evaluations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ensureContext(ctx), `SELECT COUNT(1) FROM evaluations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count evaluations: %w", err)
	}
	return count, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			criteria  string
			flags     string
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.LogPath, &entry.Profile, &entry.DeductedPoints, &criteria, &flags, &createdAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		if err := json.Unmarshal([]byte(criteria), &entry.Criteria); err != nil {
			return nil, fmt.Errorf("decode criteria for %s: %w", entry.ID, err)
		}
		if err := json.Unmarshal([]byte(flags), &entry.Flags); err != nil {
			return nil, fmt.Errorf("decode flags for %s: %w", entry.ID, err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("decode created_at for %s: %w", entry.ID, err)
		}
		entry.CreatedAt = parsed
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
