package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hydrabatch/hydrabatch/internal/model"
)

// RecordSetStore implements repo.RecordSetRepository against the
// record_sets table.
type RecordSetStore struct {
	db *DB
}

// GetRecordSetsByName returns every record set (of any type) at
// relativeName within zoneID.
func (s *RecordSetStore) GetRecordSetsByName(ctx context.Context, zoneID, relativeName string) ([]model.RecordSet, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		"SELECT type, ttl, records FROM record_sets WHERE zone_id = ? AND name = ?", zoneID, relativeName)
	if err != nil {
		return nil, fmt.Errorf("failed to query record sets for %s/%s: %w", zoneID, relativeName, err)
	}
	defer rows.Close()

	var sets []model.RecordSet
	for rows.Next() {
		var recordType string
		var ttl int
		var recordsJSON string
		if err := rows.Scan(&recordType, &ttl, &recordsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan record set row: %w", err)
		}

		var records []model.RecordData
		if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
			return nil, fmt.Errorf("failed to decode records for %s/%s/%s: %w", zoneID, relativeName, recordType, err)
		}

		sets = append(sets, model.RecordSet{
			ZoneID:  zoneID,
			Name:    relativeName,
			Type:    model.RecordType(recordType),
			TTL:     ttl,
			Records: records,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record set rows: %w", err)
	}
	return sets, nil
}

// UpsertRecordSet creates or replaces a record set. The batch pipeline
// never calls this directly — it is the write surface the (external)
// downstream apply step and any directly-managed record tooling use to
// keep this service's read model current.
func (s *RecordSetStore) UpsertRecordSet(ctx context.Context, rs model.RecordSet) error {
	recordsJSON, err := json.Marshal(rs.Records)
	if err != nil {
		return fmt.Errorf("failed to encode records for %s/%s/%s: %w", rs.ZoneID, rs.Name, rs.Type, err)
	}

	_, err = s.db.conn.ExecContext(ctx,
		`INSERT INTO record_sets (zone_id, name, type, ttl, records) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(zone_id, name, type) DO UPDATE SET ttl = excluded.ttl, records = excluded.records`,
		rs.ZoneID, rs.Name, string(rs.Type), rs.TTL, string(recordsJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert record set %s/%s/%s: %w", rs.ZoneID, rs.Name, rs.Type, err)
	}
	return nil
}

// DeleteRecordSet removes the record set of the given type at (zoneID, name).
func (s *RecordSetStore) DeleteRecordSet(ctx context.Context, zoneID, name string, recordType model.RecordType) error {
	_, err := s.db.conn.ExecContext(ctx,
		"DELETE FROM record_sets WHERE zone_id = ? AND name = ? AND type = ?", zoneID, name, string(recordType))
	if err != nil {
		return fmt.Errorf("failed to delete record set %s/%s/%s: %w", zoneID, name, recordType, err)
	}
	return nil
}
