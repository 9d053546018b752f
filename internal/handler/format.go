package handler

import (
	"strconv"
	"time"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
