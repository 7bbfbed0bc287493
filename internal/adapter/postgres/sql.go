package postgres

import (
	"fmt"
	"strings"

	"github.com/dealerdesk/dealerdesk/internal/query"
)

// whereClause lowers a predicate tree to a parameterized SQL condition.
// Column names in predicates come only from planner whitelists, so they are
// interpolated directly; every value travels as a positional argument.
func whereClause(p query.Predicate) (string, []any, error) {
	var sb strings.Builder
	var args []any
	if err := lower(p, &sb, &args); err != nil {
		return "", nil, err
	}
	return sb.String(), args, nil
}

func lower(p query.Predicate, sb *strings.Builder, args *[]any) error {
	switch t := p.(type) {
	case query.FieldOp:
		return lowerField(t, sb, args)
	case query.And:
		return lowerGroup(t, " AND ", "TRUE", sb, args)
	case query.Or:
		return lowerGroup(t, " OR ", "FALSE", sb, args)
	default:
		return fmt.Errorf("unsupported predicate type %T", p)
	}
}

func lowerField(f query.FieldOp, sb *strings.Builder, args *[]any) error {
	switch f.Op {
	case query.OpEq:
		*args = append(*args, f.Value)
		fmt.Fprintf(sb, "%s = $%d", f.Column, len(*args))
	case query.OpNe:
		*args = append(*args, f.Value)
		fmt.Fprintf(sb, "%s <> $%d", f.Column, len(*args))
	case query.OpContains:
		*args = append(*args, fmt.Sprintf("%%%v%%", f.Value))
		fmt.Fprintf(sb, "%s ILIKE $%d", f.Column, len(*args))
	default:
		return fmt.Errorf("unsupported field op %q", f.Op)
	}
	return nil
}

func lowerGroup(members []query.Predicate, sep, empty string, sb *strings.Builder, args *[]any) error {
	if len(members) == 0 {
		sb.WriteString(empty)
		return nil
	}
	sb.WriteString("(")
	for i, m := range members {
		if i > 0 {
			sb.WriteString(sep)
		}
		if err := lower(m, sb, args); err != nil {
			return err
		}
	}
	sb.WriteString(")")
	return nil
}

// buildListQuery produces the count and page queries for a list plan over
// the given table. When softDelete is set, tombstoned rows are excluded
// unless the plan asks for them.
func buildListQuery(table, columns string, plan query.Plan, softDelete bool) (listSQL, countSQL string, args []any, err error) {
	where, args, err := whereClause(plan.Where)
	if err != nil {
		return "", "", nil, err
	}
	if softDelete && !plan.IncludeDeleted {
		where = "(" + where + ") AND deleted_at IS NULL"
	}

	countSQL = fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", table, where)
	listSQL = fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		columns, table, where, plan.Sort.Column, plan.Sort.Direction, len(args)+1, len(args)+2)
	return listSQL, countSQL, args, nil
}
