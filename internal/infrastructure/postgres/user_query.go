package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
)

var sortColumns = map[string]string{
	entity.SortByName:      "name",
	entity.SortByEmail:     "email",
	entity.SortByCreatedAt: "created_at",
}

// buildUserUpdate renders a single conditional UPDATE for the provided fields.
// $1 is the id and $2 the update timestamp; hash is used when in.Password is set.
func buildUserUpdate(id string, in entity.UserUpdate, hash string, now time.Time) (string, []any) {
	args := []any{id, now}
	sets := []string{"updated_at = $2"}
	add := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if in.Name != nil {
		add("name = $%d", *in.Name)
	}
	if in.Email != nil {
		add("email = lower($%d)", *in.Email)
	}
	if in.Password != nil {
		add("password_hash = $%d", hash)
	}
	if in.IsActive != nil {
		add("is_active = $%d", *in.IsActive)
	}

	if in.ProfileMetadata != nil || in.MetadataPatch != nil {
		base := "COALESCE(profile_metadata, '{}'::jsonb)"
		if in.ProfileMetadata != nil {
			args = append(args, in.ProfileMetadata)
			base = fmt.Sprintf("$%d::jsonb", len(args))
		}
		if in.MetadataPatch != nil {
			args = append(args, in.MetadataPatch)
			base = fmt.Sprintf("%s || $%d::jsonb", base, len(args))
		}
		sets = append(sets, "profile_metadata = "+base)
	}

	sql := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = $1 RETURNING " + userColumns
	return sql, args
}

// buildListFilter returns a WHERE clause (with leading space, or empty) and its args.
func buildListFilter(q entity.ListQuery) (string, []any) {
	var conds []string
	var args []any
	if q.OnlyActive {
		conds = append(conds, "is_active")
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildListOrder whitelists the sort column; unknown values sort by creation time.
func buildListOrder(q entity.ListQuery) string {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(q.SortOrder, entity.SortAsc) {
		dir = "ASC"
	}
	return col + " " + dir + ", id " + dir
}

// escapeLike escapes LIKE wildcards so the term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
