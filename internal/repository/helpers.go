package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

// Inserted receives the generated columns of an INSERT ... RETURNING id, created_at.
type Inserted struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// DisplayName renders a joined user's display name: fullname, then email,
// then username. It is NULL when the join found no user.
func DisplayName(alias string) exp.LiteralExpression {
	return goqu.L(
		"COALESCE(NULLIF(?, ''), NULLIF(?, ''), ?)",
		goqu.I(alias+".fullname"),
		goqu.I(alias+".email"),
		goqu.I(alias+".username"),
	)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern matching term anywhere, with
// wildcards in term taken literally.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Affected reports whether a statement touched at least one row.
func Affected(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows > 0, nil
}
