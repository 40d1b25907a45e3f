package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
)

// RecordRun stores a finished run and its deleted directories in one transaction
func (s *Store) RecordRun(result *domain.RunResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var errMsg sql.NullString
	if result.Error != "" {
		errMsg = sql.NullString{String: result.Error, Valid: true}
	}

	res, err := tx.Exec(`
		INSERT INTO runs (
			target_path, threshold_bytes, outcome, directories_deleted, bytes_freed,
			free_bytes_before, free_bytes_after, started_at_ns, elapsed_ns, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.TargetPath, result.ThresholdBytes, string(result.Outcome),
		result.DirectoriesDeleted, result.BytesFreed,
		int64(result.FreeBytesBefore), int64(result.FreeBytesAfter),
		result.StartedAt.UnixNano(), int64(result.Elapsed), errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO deleted_directories (
			run_id, position, name, path, created_at_ns, size_bytes,
			skipped_entries, free_bytes_after, deleted_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare directory insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range result.Deleted {
		if _, err := stmt.Exec(
			runID, i+1, d.Name, d.Path, d.CreatedAt.UnixNano(), d.SizeBytes,
			d.SkippedEntries, int64(d.FreeBytesAfter), d.DeletedAt.UnixNano(),
		); err != nil {
			return fmt.Errorf("failed to insert deleted directory %s: %w", d.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	result.ID = runID
	return nil
}

// RecentRuns returns up to limit runs, newest first, with their deleted directories
func (s *Store) RecentRuns(limit int) ([]*domain.RunResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT id, target_path, threshold_bytes, outcome, directories_deleted, bytes_freed,
			free_bytes_before, free_bytes_after, started_at_ns, elapsed_ns, error
		FROM runs
		ORDER BY started_at_ns DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.RunResult
	for rows.Next() {
		r := &domain.RunResult{}
		var outcome string
		var freeBefore, freeAfter, startedAt, elapsed int64
		var errMsg sql.NullString

		if err := rows.Scan(
			&r.ID, &r.TargetPath, &r.ThresholdBytes, &outcome, &r.DirectoriesDeleted, &r.BytesFreed,
			&freeBefore, &freeAfter, &startedAt, &elapsed, &errMsg,
		); err != nil {
			return nil, err
		}

		r.Outcome = domain.Outcome(outcome)
		r.FreeBytesBefore = uint64(freeBefore)
		r.FreeBytesAfter = uint64(freeAfter)
		r.StartedAt = time.Unix(0, startedAt)
		r.Elapsed = time.Duration(elapsed)
		if errMsg.Valid {
			r.Error = errMsg.String
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range runs {
		deleted, err := s.deletedDirectories(r.ID)
		if err != nil {
			return nil, err
		}
		r.Deleted = deleted
	}

	return runs, nil
}

// deletedDirectories loads the directories removed by a run, in deletion order
func (s *Store) deletedDirectories(runID int64) ([]domain.DeletedDirectory, error) {
	rows, err := s.db.Query(`
		SELECT name, path, created_at_ns, size_bytes, skipped_entries, free_bytes_after, deleted_at_ns
		FROM deleted_directories
		WHERE run_id = ?
		ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirs []domain.DeletedDirectory
	for rows.Next() {
		var d domain.DeletedDirectory
		var createdAt, freeAfter, deletedAt int64
		if err := rows.Scan(&d.Name, &d.Path, &createdAt, &d.SizeBytes, &d.SkippedEntries, &freeAfter, &deletedAt); err != nil {
			return nil, err
		}
		d.CreatedAt = time.Unix(0, createdAt)
		d.FreeBytesAfter = uint64(freeAfter)
		d.DeletedAt = time.Unix(0, deletedAt)
		dirs = append(dirs, d)
	}
	return dirs, rows.Err()
}
