package postgres

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

// applyQuery narrows, orders and pages ds according to q.
func applyQuery(ds *goqu.SelectDataset, q repository.Query) *goqu.SelectDataset {
	if where := whereExpressions(q); len(where) > 0 {
		ds = ds.Where(where...)
	}

	if len(q.OrderBy) > 0 {
		orders := make([]exp.OrderedExpression, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			if o.Desc {
				orders = append(orders, goqu.C(o.Field).Desc())
			} else {
				orders = append(orders, goqu.C(o.Field).Asc())
			}
		}
		ds = ds.Order(orders...)
	}

	if q.Limit > 0 {
		ds = ds.Limit(uint(q.Limit))
	}
	if q.Offset > 0 {
		ds = ds.Offset(uint(q.Offset))
	}
	return ds
}

// likeEscaper makes LIKE treat the search term's wildcards as plain characters.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func whereExpressions(q repository.Query) []exp.Expression {
	out := make([]exp.Expression, 0, len(q.Where)+1)
	for _, c := range q.Where {
		out = append(out, conditionExpression(c))
	}

	if q.Search != nil && q.Search.Term != "" && len(q.Search.Fields) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Search.Term)) + "%"
		ors := make([]exp.Expression, 0, len(q.Search.Fields))
		for _, f := range q.Search.Fields {
			ors = append(ors, goqu.L(`LOWER(?) LIKE ? ESCAPE '\'`, goqu.C(f), pattern))
		}
		out = append(out, goqu.Or(ors...))
	}
	return out
}

func conditionExpression(c repository.Condition) exp.Expression {
	col := goqu.C(c.Field)
	switch c.Op {
	case repository.OpNeq:
		return col.Neq(c.Value)
	case repository.OpGt:
		return col.Gt(c.Value)
	case repository.OpGte:
		return col.Gte(c.Value)
	case repository.OpLt:
		return col.Lt(c.Value)
	case repository.OpLte:
		return col.Lte(c.Value)
	case repository.OpIEq:
		s, _ := c.Value.(string)
		return goqu.Func("LOWER", col).Eq(strings.ToLower(s))
	case repository.OpIn:
		values, _ := c.Value.([]interface{})
		if len(values) == 0 {
			return goqu.L("1 = 0")
		}
		return col.In(values...)
	case repository.OpIsNull:
		return col.IsNull()
	case repository.OpNotNull:
		return col.IsNotNull()
	default:
		return col.Eq(c.Value)
	}
}
