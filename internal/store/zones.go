package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hydrabatch/hydrabatch/internal/model"
)

// ZoneStore implements repo.ZoneRepository against the zones and
// zone_acl_rules tables.
type ZoneStore struct {
	db *DB
}

// GetZonesByNames returns every zone whose name exactly matches an entry
// in names. Matching is done with a single parameterized IN clause
// rather than one query per name.
func (s *ZoneStore) GetZonesByNames(ctx context.Context, names []string) ([]model.Zone, error) {
	if len(names) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, n := range names {
		placeholders[i] = "?"
		args[i] = n
	}

	query := fmt.Sprintf("SELECT id, name FROM zones WHERE name IN (%s)", strings.Join(placeholders, ","))
	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query zones by name: %w", err)
	}
	defer rows.Close()

	return s.scanZonesWithACL(ctx, rows)
}

// GetZonesByFilters returns every zone whose name contains one of filters
// as a substring, the only way to surface RFC 2317 classless delegations
// whose "/"-bearing names an exact match can never find.
func (s *ZoneStore) GetZonesByFilters(ctx context.Context, filters []string) ([]model.Zone, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	clauses := make([]string, len(filters))
	args := make([]any, len(filters))
	for i, f := range filters {
		clauses[i] = "name LIKE ?"
		args[i] = "%" + f + "%"
	}

	query := fmt.Sprintf("SELECT id, name FROM zones WHERE %s", strings.Join(clauses, " OR "))
	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query zones by filter: %w", err)
	}
	defer rows.Close()

	return s.scanZonesWithACL(ctx, rows)
}

func (s *ZoneStore) scanZonesWithACL(ctx context.Context, rows *sql.Rows) ([]model.Zone, error) {
	var zones []model.Zone
	for rows.Next() {
		var z model.Zone
		if err := rows.Scan(&z.ID, &z.Name); err != nil {
			return nil, fmt.Errorf("failed to scan zone row: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating zone rows: %w", err)
	}

	for i := range zones {
		rules, err := s.loadACLRules(ctx, zones[i].ID)
		if err != nil {
			return nil, err
		}
		zones[i].AccessControl = model.AccessControl{Rules: rules}
	}
	return zones, nil
}

func (s *ZoneStore) loadACLRules(ctx context.Context, zoneID string) ([]model.ACLRule, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		"SELECT user_id, group_id, record_mask, record_types, access_level FROM zone_acl_rules WHERE zone_id = ?", zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query zone acl rules for %s: %w", zoneID, err)
	}
	defer rows.Close()

	var rules []model.ACLRule
	for rows.Next() {
		var r model.ACLRule
		var recordTypesCSV string
		var level int
		if err := rows.Scan(&r.UserID, &r.GroupID, &r.RecordMask, &recordTypesCSV, &level); err != nil {
			return nil, fmt.Errorf("failed to scan acl rule row: %w", err)
		}
		r.Level = model.AccessLevel(level)
		if recordTypesCSV != "" {
			for _, t := range strings.Split(recordTypesCSV, ",") {
				r.RecordTypes = append(r.RecordTypes, model.RecordType(t))
			}
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating acl rule rows: %w", err)
	}
	return rules, nil
}

// UpsertZone creates or replaces zone and its ACL rules. This is the
// write path an external zone-management collaborator uses to keep this
// service's read model current; the batch pipeline itself never calls it.
func (s *ZoneStore) UpsertZone(ctx context.Context, zone model.Zone) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO zones (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		zone.ID, zone.Name); err != nil {
		return fmt.Errorf("failed to upsert zone %s: %w", zone.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM zone_acl_rules WHERE zone_id = ?", zone.ID); err != nil {
		return fmt.Errorf("failed to clear acl rules for zone %s: %w", zone.ID, err)
	}

	for _, rule := range zone.AccessControl.Rules {
		types := make([]string, len(rule.RecordTypes))
		for i, t := range rule.RecordTypes {
			types[i] = string(t)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO zone_acl_rules (zone_id, user_id, group_id, record_mask, record_types, access_level)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			zone.ID, rule.UserID, rule.GroupID, rule.RecordMask, strings.Join(types, ","), int(rule.Level)); err != nil {
			return fmt.Errorf("failed to insert acl rule for zone %s: %w", zone.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit zone upsert: %w", err)
	}
	return nil
}
