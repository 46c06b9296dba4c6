// Package views composes the canonical read view of every entity:
// joins across direct references, soft-delete filtering on every
// joined table, derived aggregates and flattened association id lists.
// Callers project, filter and sort on virtual field names only; the
// join shape underneath is not their business.
package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"fintracker/internal/contract"
)

// Queryer runs a composed query. Both sqlx.DB and sqlx.Tx satisfy it.
type Queryer interface {
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
}

// Query describes one composed read. Fields, Filter and OrderBy all
// speak virtual names; an empty projection selects every field of the
// entity's canonical view.
type Query struct {
	Kind    contract.Kind
	Fields  []string
	Filter  sq.Sqlizer
	OrderBy []string
	Limit   uint64
}

type Composer struct {
	db    Queryer
	nowFn func() time.Time
}

func New(db Queryer) *Composer {
	return &Composer{db: db, nowFn: time.Now}
}

// NewAt pins "now" for date-qualified aggregates. Tests use it to make
// wallet totals deterministic.
func NewAt(db Queryer, now func() time.Time) *Composer {
	return &Composer{db: db, nowFn: now}
}

// Rows runs a composed query and returns the result keyed by virtual
// field names. The canonical view forms a sub-relation, so projection,
// filter and ordering apply over any virtual field including computed
// ones.
func (c *Composer) Rows(ctx context.Context, q Query) ([]map[string]any, error) {
	base, known, err := c.view(q.Kind)
	if err != nil {
		return nil, err
	}

	outer := sq.Select()
	if len(q.Fields) == 0 {
		outer = outer.Columns("*")
	} else {
		for _, field := range q.Fields {
			if !known[field] {
				return nil, fmt.Errorf("views: unknown field %q for %s", field, q.Kind)
			}
			outer = outer.Columns(quoteField(field))
		}
	}
	outer = outer.FromSelect(base, "v")
	if q.Filter != nil {
		outer = outer.Where(quoteFilter(q.Filter))
	}
	for _, order := range q.OrderBy {
		field, _, _ := strings.Cut(order, " ")
		if !known[field] {
			return nil, fmt.Errorf("views: unknown field %q for %s", field, q.Kind)
		}
		outer = outer.OrderBy(quoteOrder(order))
	}
	if q.Limit > 0 {
		outer = outer.Limit(q.Limit)
	}

	sqlStr, args, err := outer.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := c.db.QueryxContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for key, value := range row {
			if b, ok := value.([]byte); ok {
				row[key] = string(b)
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Row reads a single entity by process id.
func (c *Composer) Row(ctx context.Context, kind contract.Kind, id int64) (map[string]any, error) {
	rows, err := c.Rows(ctx, Query{Kind: kind, Filter: sq.Eq{contract.FieldID: id}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// quoteField wraps a virtual name in double quotes so reserved words
// like "index" stay usable as identifiers in the outer query.
func quoteField(name string) string {
	return `"` + name + `"`
}

// quoteOrder quotes the identifier of an ORDER BY term, keeping any
// direction suffix.
func quoteOrder(term string) string {
	field, rest, found := strings.Cut(term, " ")
	if !found {
		return quoteField(term)
	}
	return quoteField(field) + " " + rest
}

// quoteFilter rewrites the keys of squirrel's map-shaped conditions so
// filters on reserved-word fields stay valid SQL. Raw expressions pass
// through untouched.
func quoteFilter(f sq.Sqlizer) sq.Sqlizer {
	switch v := f.(type) {
	case sq.Eq:
		return sq.Eq(quoteKeys(v))
	case sq.NotEq:
		return sq.NotEq(quoteKeys(v))
	case sq.Lt:
		return sq.Lt(quoteKeys(v))
	case sq.LtOrEq:
		return sq.LtOrEq(quoteKeys(v))
	case sq.Gt:
		return sq.Gt(quoteKeys(v))
	case sq.GtOrEq:
		return sq.GtOrEq(quoteKeys(v))
	case sq.And:
		out := make(sq.And, len(v))
		for i, sub := range v {
			out[i] = quoteFilter(sub)
		}
		return out
	case sq.Or:
		out := make(sq.Or, len(v))
		for i, sub := range v {
			out[i] = quoteFilter(sub)
		}
		return out
	default:
		return f
	}
}

func quoteKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[quoteField(key)] = value
	}
	return out
}

func (c *Composer) view(kind contract.Kind) (sq.SelectBuilder, map[string]bool, error) {
	var builder sq.SelectBuilder
	switch kind {
	case contract.KindCurrency:
		builder = currencyView()
	case contract.KindWallet:
		builder = walletView(c.nowFn().UTC().Format("2006-01-02"))
	case contract.KindCategory:
		builder = categoryView()
	case contract.KindTransaction:
		builder = transactionView()
	case contract.KindTransfer:
		builder = transferView()
	case contract.KindDebt:
		builder = debtView()
	case contract.KindBudget:
		builder = budgetView()
	case contract.KindSaving:
		builder = savingView()
	case contract.KindEvent:
		builder = eventView()
	case contract.KindPlace:
		builder = placeView()
	case contract.KindPerson:
		builder = personView()
	case contract.KindAttachment:
		builder = attachmentView()
	case contract.KindTransactionModel:
		builder = transactionModelView()
	case contract.KindTransferModel:
		builder = transferModelView()
	case contract.KindRecurringTransaction:
		builder = recurringTransactionView()
	case contract.KindRecurringTransfer:
		builder = recurringTransferView()
	default:
		return sq.SelectBuilder{}, nil, fmt.Errorf("views: unknown entity kind %q", kind)
	}
	return builder, fieldsByKind[kind], nil
}
