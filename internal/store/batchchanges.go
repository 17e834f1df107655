package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hydrabatch/hydrabatch/internal/model"
)

// BatchChangeStore implements repo.BatchChangeRepository against the
// batch_changes and single_changes tables.
type BatchChangeStore struct {
	db *DB
}

// Save persists batch and its ordered single changes in one transaction.
func (s *BatchChangeStore) Save(ctx context.Context, batch model.BatchChange) (model.BatchChange, error) {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return model.BatchChange{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batch_changes (id, user_id, user_name, comments, created_timestamp, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		batch.ID, batch.UserID, batch.UserName, batch.Comments,
		batch.CreatedTimestamp.UTC().Format(time.RFC3339Nano), string(batch.Status))
	if err != nil {
		return model.BatchChange{}, fmt.Errorf("failed to insert batch change %s: %w", batch.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO single_changes
		 (batch_id, position, input_name, change_type, record_type, ttl, record, zone_id, zone_name, relative_name, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return model.BatchChange{}, fmt.Errorf("failed to prepare single change insert: %w", err)
	}
	defer stmt.Close()

	for i, ch := range batch.Changes {
		recordJSON, err := json.Marshal(ch.Input.Record)
		if err != nil {
			return model.BatchChange{}, fmt.Errorf("failed to encode record payload at position %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			batch.ID, i, ch.Input.InputName, string(ch.Input.ChangeType), string(ch.Input.Type),
			ch.Input.TTL, string(recordJSON), ch.ZoneID, ch.ZoneName, ch.RelativeName, string(ch.Status)); err != nil {
			return model.BatchChange{}, fmt.Errorf("failed to insert single change at position %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.BatchChange{}, fmt.Errorf("failed to commit batch change %s: %w", batch.ID, err)
	}
	return batch, nil
}

// GetBatchChange loads a batch change and its ordered single changes by id.
func (s *BatchChangeStore) GetBatchChange(ctx context.Context, id string) (model.BatchChange, bool, error) {
	var batch model.BatchChange
	var createdRaw string
	var status string

	err := s.db.conn.QueryRowContext(ctx,
		"SELECT id, user_id, user_name, comments, created_timestamp, status FROM batch_changes WHERE id = ?", id,
	).Scan(&batch.ID, &batch.UserID, &batch.UserName, &batch.Comments, &createdRaw, &status)
	if err == sql.ErrNoRows {
		return model.BatchChange{}, false, nil
	}
	if err != nil {
		return model.BatchChange{}, false, fmt.Errorf("failed to get batch change %s: %w", id, err)
	}
	batch.Status = model.BatchChangeStatus(status)
	batch.CreatedTimestamp, err = time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return model.BatchChange{}, false, fmt.Errorf("failed to parse created timestamp for batch %s: %w", id, err)
	}

	changes, err := s.loadSingleChanges(ctx, id)
	if err != nil {
		return model.BatchChange{}, false, err
	}
	batch.Changes = changes

	return batch, true, nil
}

func (s *BatchChangeStore) loadSingleChanges(ctx context.Context, batchID string) ([]model.SingleChange, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT input_name, change_type, record_type, ttl, record, zone_id, zone_name, relative_name, status
		 FROM single_changes WHERE batch_id = ? ORDER BY position ASC`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query single changes for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	var changes []model.SingleChange
	for rows.Next() {
		var ch model.SingleChange
		var changeType, recordType, status, recordJSON string
		var ttl sql.NullInt64
		if err := rows.Scan(&ch.Input.InputName, &changeType, &recordType, &ttl, &recordJSON,
			&ch.ZoneID, &ch.ZoneName, &ch.RelativeName, &status); err != nil {
			return nil, fmt.Errorf("failed to scan single change row: %w", err)
		}
		ch.Input.ChangeType = model.ChangeType(changeType)
		ch.Input.Type = model.RecordType(recordType)
		ch.Status = model.SingleChangeStatus(status)
		if ttl.Valid {
			v := int(ttl.Int64)
			ch.Input.TTL = &v
		}
		if err := json.Unmarshal([]byte(recordJSON), &ch.Input.Record); err != nil {
			return nil, fmt.Errorf("failed to decode record payload for batch %s: %w", batchID, err)
		}
		changes = append(changes, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating single change rows: %w", err)
	}
	return changes, nil
}

// GetBatchChangeSummariesByUserID lists userID's batches newest-first,
// paginated by startFrom/maxItems.
func (s *BatchChangeStore) GetBatchChangeSummariesByUserID(ctx context.Context, userID string, startFrom, maxItems int) (model.BatchChangeSummaryList, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT bc.id, bc.user_id, bc.user_name, bc.comments, bc.created_timestamp, bc.status,
		        (SELECT COUNT(*) FROM single_changes sc WHERE sc.batch_id = bc.id)
		 FROM batch_changes bc
		 WHERE bc.user_id = ?
		 ORDER BY bc.created_timestamp DESC
		 LIMIT ? OFFSET ?`, userID, maxItems+1, startFrom)
	if err != nil {
		return model.BatchChangeSummaryList{}, fmt.Errorf("failed to query batch change summaries for %s: %w", userID, err)
	}
	defer rows.Close()

	var summaries []model.BatchChangeSummary
	for rows.Next() {
		var sum model.BatchChangeSummary
		var createdRaw, status string
		if err := rows.Scan(&sum.ID, &sum.UserID, &sum.UserName, &sum.Comments, &createdRaw, &status, &sum.TotalChanges); err != nil {
			return model.BatchChangeSummaryList{}, fmt.Errorf("failed to scan batch change summary row: %w", err)
		}
		sum.Status = model.BatchChangeStatus(status)
		sum.CreatedTimestamp, err = time.Parse(time.RFC3339Nano, createdRaw)
		if err != nil {
			return model.BatchChangeSummaryList{}, fmt.Errorf("failed to parse created timestamp: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return model.BatchChangeSummaryList{}, fmt.Errorf("error iterating batch change summary rows: %w", err)
	}

	var nextID *int
	if len(summaries) > maxItems {
		summaries = summaries[:maxItems]
		next := startFrom + maxItems
		nextID = &next
	}

	return model.BatchChangeSummaryList{
		Summaries: summaries,
		StartFrom: startFrom,
		NextID:    nextID,
		MaxItems:  maxItems,
	}, nil
}
