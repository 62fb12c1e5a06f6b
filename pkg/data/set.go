package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mchmarny/scorekit/pkg/score"
)

const (
	upsertSetSQL = `INSERT INTO score_set (name, updated_at) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at
	`

	deleteSetItemsSQL = `DELETE FROM score_item WHERE set_name = ?`

	insertSetItemSQL = `INSERT INTO score_item (set_name, pos, key, score) VALUES (?, ?, ?, ?)`

	selectSetItemsSQL = `SELECT key, score FROM score_item WHERE set_name = ? ORDER BY pos`

	selectSetExistsSQL = `SELECT 1 FROM score_set WHERE name = ?`

	selectSetsSQL = `SELECT s.name, s.updated_at, COUNT(i.key)
		FROM score_set s
		LEFT JOIN score_item i ON s.name = i.set_name
		GROUP BY s.name, s.updated_at
		ORDER BY s.name
	`

	deleteSetSQL = `DELETE FROM score_set WHERE name = ?`
)

var ErrSetNotFound = errors.New("score set not found")

// SetInfo summarizes a stored score set.
type SetInfo struct {
	Name      string `json:"name" yaml:"name"`
	UpdatedAt string `json:"updated_at" yaml:"updatedAt"`
	Items     int    `json:"items" yaml:"items"`
}

// SaveSet stores s under name, replacing any set already saved with that
// name. Insertion order and int/float kinds are preserved.
func SaveSet(db *sql.DB, name string, s *score.Scorer[string]) error {
	if db == nil {
		return errDBNotInitialized
	}
	if name == "" {
		return errors.New("set name required")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting set tx: %w", err)
	}

	now := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	if _, err := tx.Exec(upsertSetSQL, name, now); err != nil {
		rollbackTransaction(tx)
		return fmt.Errorf("error saving set %s: %w", name, err)
	}
	if _, err := tx.Exec(deleteSetItemsSQL, name); err != nil {
		rollbackTransaction(tx)
		return fmt.Errorf("error clearing set %s: %w", name, err)
	}

	stmt, err := tx.Prepare(insertSetItemSQL)
	if err != nil {
		rollbackTransaction(tx)
		return fmt.Errorf("error preparing item insert: %w", err)
	}
	defer stmt.Close()

	pos := 0
	for k, v := range s.All() {
		if _, err := stmt.Exec(name, pos, k, v.String()); err != nil {
			rollbackTransaction(tx)
			return fmt.Errorf("error saving %s item %s: %w", name, k, err)
		}
		pos++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing set tx: %w", err)
	}
	return nil
}

// GetSet loads the set saved under name or returns ErrSetNotFound.
func GetSet(db *sql.DB, name string) (*score.Scorer[string], error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	var one int
	if err := db.QueryRow(selectSetExistsSQL, name).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", name, ErrSetNotFound)
		}
		return nil, fmt.Errorf("error checking set %s: %w", name, err)
	}

	rows, err := db.Query(selectSetItemsSQL, name)
	if err != nil {
		return nil, fmt.Errorf("error querying set %s: %w", name, err)
	}
	defer rows.Close()

	s := score.New[string]()
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("error scanning set %s: %w", name, err)
		}
		v, err := score.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("error parsing score of %s in set %s: %w", key, name, err)
		}
		s.Set(key, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating set %s: %w", name, err)
	}
	return s, nil
}

func ListSets(db *sql.DB) ([]*SetInfo, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectSetsSQL)
	if err != nil {
		return nil, fmt.Errorf("error querying sets: %w", err)
	}
	defer rows.Close()

	list := make([]*SetInfo, 0)
	for rows.Next() {
		si := &SetInfo{}
		if err := rows.Scan(&si.Name, &si.UpdatedAt, &si.Items); err != nil {
			return nil, fmt.Errorf("error scanning sets: %w", err)
		}
		list = append(list, si)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sets: %w", err)
	}
	return list, nil
}

// DeleteSet removes a set and reports whether it existed.
func DeleteSet(db *sql.DB, name string) (bool, error) {
	if db == nil {
		return false, errDBNotInitialized
	}

	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("error starting delete tx: %w", err)
	}
	if _, err := tx.Exec(deleteSetItemsSQL, name); err != nil {
		rollbackTransaction(tx)
		return false, fmt.Errorf("error deleting items of %s: %w", name, err)
	}
	res, err := tx.Exec(deleteSetSQL, name)
	if err != nil {
		rollbackTransaction(tx)
		return false, fmt.Errorf("error deleting set %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing delete tx: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading delete result: %w", err)
	}
	return n > 0, nil
}
