package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"imagefilter/types"

	_ "github.com/mattn/go-sqlite3"
)

// InitDatabase opens the metadata database at dbPath, creating the image_metas table if needed
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fileURI(dbPath, "rwc"))
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS image_metas (
		path TEXT NOT NULL,
		score REAL
	);
	CREATE INDEX IF NOT EXISTS idx_image_metas_path ON image_metas(path);`

	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create image_metas table: %w", err)
	}

	return db, nil
}

// OpenDatabase opens an existing metadata database read-only
func OpenDatabase(dbPath string) (*sql.DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, err
	}
	return sql.Open("sqlite3", fileURI(dbPath, "ro"))
}

// fileURI builds a SQLite URI filename, so that '?', '#' and '%' in the path stay part of the name
func fileURI(dbPath, mode string) string {
	escaped := (&url.URL{Path: dbPath}).EscapedPath()
	u := url.URL{Scheme: "file", Opaque: escaped, RawQuery: url.Values{"mode": {mode}}.Encode()}
	return u.String()
}

// StoreImageMeta inserts one metadata row. A record without a score stores NULL.
func StoreImageMeta(db *sql.DB, meta types.ImageMeta) error {
	stmt, err := db.Prepare(`INSERT INTO image_metas (path, score) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("cannot prepare statement for %s: %w", meta.Path, err)
	}
	defer stmt.Close()

	var score any
	if meta.HasScore {
		score = meta.Score
	}
	if _, err := stmt.Exec(meta.Path, score); err != nil {
		return fmt.Errorf("cannot insert data for %s: %w", meta.Path, err)
	}
	return nil
}

// LoadImageMetas reads every row of image_metas in insertion order.
// Columns other than path and score end up in ImageMeta.Fields.
func LoadImageMetas(db *sql.DB) ([]types.ImageMeta, error) {
	var hasPathColumn bool
	err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('image_metas') WHERE name='path'").Scan(&hasPathColumn)
	if err != nil {
		return nil, fmt.Errorf("error checking for path column: %w", err)
	}
	if !hasPathColumn {
		return nil, fmt.Errorf("table image_metas with a path column not found")
	}

	rows, err := db.Query("SELECT * FROM image_metas ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("cannot query image_metas: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var metas []types.ImageMeta
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("cannot scan image_metas row: %w", err)
		}

		meta, err := rowToMeta(columns, values)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(metas)+1, err)
		}
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metas, nil
}

func rowToMeta(columns []string, values []any) (types.ImageMeta, error) {
	var meta types.ImageMeta
	hasPath := false

	for i, col := range columns {
		switch strings.ToLower(col) {
		case "path":
			path, ok := asString(values[i])
			if !ok {
				return meta, fmt.Errorf("path is not text")
			}
			meta.Path = path
			hasPath = true
		case "score":
			meta.Score, meta.HasScore = asFloat(values[i])
		default:
			if meta.Fields == nil {
				meta.Fields = make(map[string]any)
			}
			if b, ok := values[i].([]byte); ok {
				meta.Fields[col] = string(b)
			} else {
				meta.Fields[col] = values[i]
			}
		}
	}

	if !hasPath {
		return meta, fmt.Errorf("path is missing")
	}
	return meta, nil
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
