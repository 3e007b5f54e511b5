package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"desktoptoast/internal/toast"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS notifications (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    identity     TEXT NOT NULL,
    tag          TEXT NOT NULL DEFAULT '',
    grp          TEXT NOT NULL DEFAULT '',
    title        TEXT NOT NULL DEFAULT '',
    message      TEXT NOT NULL DEFAULT '',
    arguments    TEXT NOT NULL DEFAULT '',
    delivered_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_scope ON notifications(identity, grp, tag)`,
}

// Journal 基于 SQLite 的通知历史，实现 toast.Platform
//
// identity 为空时操作覆盖所有记录。
type Journal struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// Open 打开（必要时创建）历史数据库
func Open(path string, log zerolog.Logger) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("无法创建目录: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Journal{
		db:   db,
		path: path,
		log:  log.With().Str("component", "journal").Logger(),
	}, nil
}

// Close 关闭数据库
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Path 数据库文件路径
func (j *Journal) Path() string {
	return j.path
}

// Show 记录一条通知，Tag/Group 相同的旧记录被替换
func (j *Journal) Show(identity string, n toast.Notification) error {
	ctx := context.Background()
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if n.Tag != "" {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM notifications WHERE identity = ? AND tag = ? AND grp = ?`,
			identity, n.Tag, n.Group); err != nil {
			return fmt.Errorf("replace notification: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO notifications (identity, tag, grp, title, message, arguments, delivered_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		identity, n.Tag, n.Group, n.Title, n.Message, n.Arguments,
		time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	j.log.Info().Str("identity", identity).Str("title", n.Title).Str("message", n.Message).Msg("notification delivered")
	return nil
}

// Clear 删除 identity 下的全部记录
func (j *Journal) Clear(identity string) error {
	if identity == "" {
		return j.exec(`DELETE FROM notifications`)
	}
	return j.exec(`DELETE FROM notifications WHERE identity = ?`, identity)
}

// List 按投递顺序返回记录快照
func (j *Journal) List(identity string) ([]toast.Record, error) {
	query := `SELECT tag, grp, title, message, arguments, delivered_at FROM notifications`
	var args []any
	if identity != "" {
		query += ` WHERE identity = ?`
		args = append(args, identity)
	}
	query += ` ORDER BY id`

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var records []toast.Record
	for rows.Next() {
		var (
			r         toast.Record
			delivered string
		)
		if err := rows.Scan(&r.Tag, &r.Group, &r.Title, &r.Message, &r.Arguments, &delivered); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		r.Delivered, _ = time.Parse(time.RFC3339Nano, delivered)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Remove 删除 Tag/Group 匹配的记录，没有匹配时什么也不做
func (j *Journal) Remove(identity, tag, group string) error {
	if identity == "" {
		return j.exec(`DELETE FROM notifications WHERE tag = ? AND grp = ?`, tag, group)
	}
	return j.exec(`DELETE FROM notifications WHERE identity = ? AND tag = ? AND grp = ?`, identity, tag, group)
}

// RemoveGroup 删除分组内的全部记录
func (j *Journal) RemoveGroup(identity, group string) error {
	if identity == "" {
		return j.exec(`DELETE FROM notifications WHERE grp = ?`, group)
	}
	return j.exec(`DELETE FROM notifications WHERE identity = ? AND grp = ?`, identity, group)
}

func (j *Journal) exec(query string, args ...any) error {
	if _, err := j.db.Exec(query, args...); err != nil {
		return fmt.Errorf("update notifications: %w", err)
	}
	return nil
}

var _ toast.Platform = (*Journal)(nil)
