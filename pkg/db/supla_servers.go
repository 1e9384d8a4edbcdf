package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/urmzd/homai-supla/pkg/config"
)

// SuplaServerStore holds the Supla servers of a profile in configuration order.
type SuplaServerStore interface {
	List(ctx context.Context, profileID int64) ([]config.ServerConfig, error)
	Replace(ctx context.Context, profileID int64, servers []config.ServerConfig) error
}

// SuplaServers returns a SuplaServerStore for this database.
func (db *DB) SuplaServers() SuplaServerStore {
	return &suplaServerStore{db: db}
}

type suplaServerStore struct {
	db *DB
}

func (s *suplaServerStore) List(ctx context.Context, profileID int64) ([]config.ServerConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT address, access_token, scan_interval_ms
		FROM supla_servers WHERE profile_id = ?
		ORDER BY position, id
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var servers []config.ServerConfig
	for rows.Next() {
		var srv config.ServerConfig
		var scan sql.NullInt64
		if err := rows.Scan(&srv.Server, &srv.AccessToken, &scan); err != nil {
			return nil, err
		}
		if scan.Valid {
			d := time.Duration(scan.Int64) * time.Millisecond
			srv.ScanInterval = &d
		}
		servers = append(servers, srv)
	}
	return servers, rows.Err()
}

// Replace swaps the profile's server list in one transaction. Entries are
// validated first; nothing is written if any entry is invalid.
func (s *suplaServerStore) Replace(ctx context.Context, profileID int64, servers []config.ServerConfig) error {
	for _, srv := range servers {
		if err := srv.Validate(); err != nil {
			return err
		}
	}

	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM supla_servers WHERE profile_id = ?`, profileID); err != nil {
			return fmt.Errorf("failed to clear supla servers: %w", err)
		}

		for i, srv := range servers {
			var scan sql.NullInt64
			if srv.ScanInterval != nil {
				scan = sql.NullInt64{Int64: toMillis(*srv.ScanInterval), Valid: true}
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO supla_servers (profile_id, address, access_token, scan_interval_ms, position)
				VALUES (?, ?, ?, ?, ?)
			`, profileID, srv.Server, srv.AccessToken, scan, i); err != nil {
				return fmt.Errorf("failed to store supla server %s: %w", srv.Server, err)
			}
		}
		return nil
	})
}

// toMillis rounds d up to whole milliseconds so a stored interval is never
// shorter than the configured one.
func toMillis(d time.Duration) int64 {
	return int64((d + time.Millisecond - 1) / time.Millisecond)
}
