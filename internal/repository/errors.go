package repository

import (
	"encoding/json"
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSkills(raw string) ([]string, error) {
	skills := []string{}
	if raw == "" {
		return skills, nil
	}
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, err
	}
	return skills, nil
}
