package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const earthRadiusMeters = 6371000.0

// userSummary limits a joined account to the fields shown next to another record.
func userSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "phone", "role")
}

// translate maps gorm's not-found error onto ErrNotFound and wraps the rest.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern turns user input into a literal substring pattern for
// ILIKE. Postgres uses backslash as the default LIKE escape.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// distanceSQL is the great-circle distance in meters between a row's
// coordinates and the bound point (lat, lng, lat).
const distanceSQL = `(? * acos(LEAST(1.0,
	cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) +
	sin(radians(?)) * sin(radians(latitude)))))`
