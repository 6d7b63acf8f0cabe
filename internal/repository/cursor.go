package repository

import (
	"fmt"
	"strings"
	"time"
)

// Курсор пагинации: "<created_at в RFC3339Nano>,<uuid>".
// UUID в курсоре разрешает ничью по created_at: строки с одинаковым
// временем на границе страницы не пропускаются.

func formatCursor(createdAt time.Time, uuid string) string {
	return createdAt.Format(time.RFC3339Nano) + "," + uuid
}

func parseCursor(cursor string) (time.Time, string, error) {
	if cursor == "" {
		return time.Time{}, "", nil
	}

	timePart, uuidPart, found := strings.Cut(cursor, ",")
	if !found {
		return time.Time{}, "", fmt.Errorf("invalid cursor format: %s", cursor)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, timePart)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid cursor format: %w", err)
	}

	return createdAt, uuidPart, nil
}
