package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/models"
)

const vaultRecordsTable = "vault_records"

// vaultRecordColumns is the column order every SELECT scans in.
var vaultRecordColumns = []string{
	"id",
	"owner_id",
	"title",
	"username",
	"secret_envelope",
	"url",
	"notes",
	"created_at",
	"updated_at",
}

// filterColumns are matched by the case-insensitive list filter.
var filterColumns = []string{"title", "username", "url"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func buildInsertRecordQuery(b sq.StatementBuilderType, record models.VaultRecord) (string, []any, error) {
	return b.Insert(vaultRecordsTable).
		Columns(vaultRecordColumns...).
		Values(
			record.ID,
			record.OwnerID,
			record.Title,
			record.Username,
			record.SecretEnvelope,
			record.URL,
			record.Notes,
			record.CreatedAt,
			record.UpdatedAt,
		).
		ToSql()
}

func buildListRecordsQuery(b sq.StatementBuilderType, ownerID string, query models.ListQuery) (string, []any, error) {
	q := b.Select(vaultRecordColumns...).
		From(vaultRecordsTable).
		Where(sq.Eq{"owner_id": ownerID})

	if filter := strings.TrimSpace(query.Filter); filter != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter)) + "%"

		or := make(sq.Or, 0, len(filterColumns))
		for _, col := range filterColumns {
			or = append(or, sq.Expr("LOWER("+col+") LIKE ? ESCAPE '\\'", pattern))
		}
		q = q.Where(or)
	}

	return q.OrderBy("created_at DESC", "id DESC").ToSql()
}

func buildGetRecordQuery(b sq.StatementBuilderType, ownerID, id string) (string, []any, error) {
	return b.Select(vaultRecordColumns...).
		From(vaultRecordsTable).
		Where(sq.Eq{"owner_id": ownerID, "id": id}).
		ToSql()
}

func buildUpdateRecordQuery(b sq.StatementBuilderType, record models.VaultRecord) (string, []any, error) {
	return b.Update(vaultRecordsTable).
		Set("title", record.Title).
		Set("username", record.Username).
		Set("secret_envelope", record.SecretEnvelope).
		Set("url", record.URL).
		Set("notes", record.Notes).
		Set("updated_at", record.UpdatedAt).
		Where(sq.Eq{"owner_id": record.OwnerID, "id": record.ID}).
		ToSql()
}

func buildDeleteRecordQuery(b sq.StatementBuilderType, ownerID, id string) (string, []any, error) {
	return b.Delete(vaultRecordsTable).
		Where(sq.Eq{"owner_id": ownerID, "id": id}).
		ToSql()
}
