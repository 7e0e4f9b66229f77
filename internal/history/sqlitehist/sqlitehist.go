// Package sqlitehist is a relational History backend (spec.md §4.4: "a
// relational store... the core does not care"), the Go counterpart of
// jorbakk/repline's history_sqlite.c. It stores entries in a single
// timestamped table and refreshes the timestamp on re-push instead of
// duplicating rows, exactly as the C backend's DB_UPD_TS statement does.
package sqlitehist

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

const schema = `
create table if not exists cmds (id integer primary key autoincrement, ts integer, cmd text);
create index if not exists cmds_cmd_idx on cmds(cmd);
create index if not exists cmds_ts_idx on cmds(ts);
`

// Backend is a History implementation backed by a SQLite database file.
type Backend struct {
	db  *sql.DB
	seq int64 // monotonic logical clock, since Date.now()-style timestamps aren't available deterministically here
}

// Open creates/opens the SQLite file at path and ensures the schema exists.
func Open(path string) (*Backend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitehist: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitehist: migrate: %w", err)
	}
	b := &Backend{db: db}
	// Continue the clock after the newest stored entry, so pushes made after
	// reopening an existing file still sort as the most recent.
	if err := db.QueryRow(`select coalesce(max(ts), 0) from cmds`).Scan(&b.seq); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitehist: read clock: %w", err)
	}
	return b, nil
}

// Close releases the underlying database handle.
func (b *Backend) Close() error { return b.db.Close() }

// CountWithPrefix implements history.History.
func (b *Backend) CountWithPrefix(prefix string) int {
	var n int
	row := b.db.QueryRow(`select count(*) from cmds where cmd like ? escape '\' and substr(cmd, 1, length(?)) = ?`, likePrefix(prefix), prefix, prefix)
	if err := row.Scan(&n); err != nil {
		return 0
	}
	return n
}

// GetWithPrefix implements history.History: n is 1-based, most recent
// first (ordered by ts desc, id desc).
func (b *Backend) GetWithPrefix(n int, prefix string) (string, bool) {
	if n < 1 {
		return "", false
	}
	row := b.db.QueryRow(
		`select cmd from cmds where cmd like ? escape '\' and substr(cmd, 1, length(?)) = ? order by ts desc, id desc limit 1 offset ?`,
		likePrefix(prefix), prefix, prefix, n-1,
	)
	var cmd string
	if err := row.Scan(&cmd); err != nil {
		return "", false
	}
	return cmd, true
}

// Push implements history.History. If entry already exists it is
// refreshed to the newest timestamp rather than duplicated, mirroring the
// C backend's update-timestamp-on-duplicate behavior.
func (b *Backend) Push(entry string) {
	if entry == "" {
		return
	}
	b.seq++
	res, err := b.db.Exec(`update cmds set ts = ? where cmd = ?`, b.seq, entry)
	if err == nil {
		if n, _ := res.RowsAffected(); n > 0 {
			return
		}
	}
	_, _ = b.db.Exec(`insert into cmds(ts, cmd) values(?, ?)`, b.seq, entry)
}

func likePrefix(prefix string) string {
	escaped := make([]byte, 0, len(prefix)+1)
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if c == '%' || c == '_' || c == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return string(escaped) + "%"
}
