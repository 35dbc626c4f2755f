package store

import (
	"donormatch/internal/utils"
	"donormatch/pkg/types"

	sq "github.com/Masterminds/squirrel"
)

var (
	victimColumns = utils.StructTagValues(types.Victim{}, utils.ColumnTag)
	donorColumns  = utils.StructTagValues(types.Donor{}, utils.ColumnTag)
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func sqlite() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// victimInsertMap leaves out the generated id and passes urgency as a plain
// integer so drivers need no knowledge of types.Urgency.
func victimInsertMap(victim *types.Victim) map[string]any {
	m := utils.StructToMap(victim, "id")
	m["urgency"] = int64(victim.Urgency)
	return m
}

func donorInsertMap(donor *types.Donor) map[string]any {
	return utils.StructToMap(donor, "id")
}
