package repository

// Op is a comparison operator of a filter condition.
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	// OpIEq compares case-insensitively.
	OpIEq
	OpIn
	OpIsNull
	OpNotNull
)

// Condition compares one column against a value.
type Condition struct {
	Field string
	Op    Op
	Value interface{}
}

func Eq(field string, value interface{}) Condition  { return Condition{field, OpEq, value} }
func Neq(field string, value interface{}) Condition { return Condition{field, OpNeq, value} }
func Gt(field string, value interface{}) Condition  { return Condition{field, OpGt, value} }
func Gte(field string, value interface{}) Condition { return Condition{field, OpGte, value} }
func Lt(field string, value interface{}) Condition  { return Condition{field, OpLt, value} }
func Lte(field string, value interface{}) Condition { return Condition{field, OpLte, value} }
func IEq(field, value string) Condition             { return Condition{field, OpIEq, value} }
func IsNull(field string) Condition                 { return Condition{Field: field, Op: OpIsNull} }
func NotNull(field string) Condition                { return Condition{Field: field, Op: OpNotNull} }

// In matches any of values. An empty list matches nothing.
func In(field string, values ...interface{}) Condition {
	return Condition{field, OpIn, values}
}

// Search matches rows where any of Fields contains Term, ignoring case.
type Search struct {
	Term   string
	Fields []string
}

type Order struct {
	Field string
	Desc  bool
}

func Asc(field string) Order  { return Order{Field: field} }
func Desc(field string) Order { return Order{Field: field, Desc: true} }

// Query selects rows of one table. Conditions are AND-ed together and with the search.
// A zero Limit means no limit.
type Query struct {
	Where   []Condition
	Search  *Search
	OrderBy []Order
	Limit   int
	Offset  int
}

// Filter returns a copy of q with extra conditions.
func (q Query) Filter(conds ...Condition) Query {
	q.Where = append(append([]Condition(nil), q.Where...), conds...)
	return q
}

// Matching returns a copy of q that also requires term in one of fields. A blank term
// leaves q unchanged.
func (q Query) Matching(term string, fields ...string) Query {
	if term == "" || len(fields) == 0 {
		return q
	}
	q.Search = &Search{Term: term, Fields: fields}
	return q
}

// Order returns a copy of q ordered by orders, replacing any previous ordering.
func (q Query) Order(orders ...Order) Query {
	q.OrderBy = append([]Order(nil), orders...)
	return q
}

func (q Query) Take(limit int) Query {
	q.Limit = limit
	return q
}

func (q Query) Page(limit, offset int) Query {
	q.Limit = limit
	q.Offset = offset
	return q
}

// Unpaged drops limit and offset, for counting.
func (q Query) Unpaged() Query {
	q.Limit, q.Offset = 0, 0
	return q
}
