// Package repository contient l'accès Postgres (sqlx) pour chaque agrégat.
package repository

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound ligne absente ou mise à jour sans effet
var ErrNotFound = errors.New("introuvable")

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// affected convertit une mise à jour qui ne touche aucune ligne en ErrNotFound
func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern motif ILIKE littéral, les jokers saisis sont échappés
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
