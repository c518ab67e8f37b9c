// Package sqlq arma cláusulas WHERE a partir de predicados tipados.
// Los nombres de columna vienen siempre de constantes del adaptador; los valores
// del usuario solo viajan como parámetros enlazados.
package sqlq

import (
	"strconv"
	"strings"
)

// Dialect estilo de marcador de parámetros.
type Dialect int

const (
	// Dollar $1, $2... (PostgreSQL).
	Dollar Dialect = iota
	// Question ? (SQLite).
	Question
)

// Placeholder devuelve el marcador del parámetro n (base 1).
func (d Dialect) Placeholder(n int) string {
	if d == Question {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// LikeOp operador de búsqueda sin distinción de mayúsculas.
// En SQLite LIKE ya ignora mayúsculas para ASCII.
func (d Dialect) LikeOp() string {
	if d == Question {
		return "LIKE"
	}
	return "ILIKE"
}

type op int

const (
	opEq op = iota
	opGte
	opLte
	opSearch
)

type clause struct {
	op      op
	columns []string
	value   any
}

// Where lista de predicados unidos con AND.
type Where struct {
	clauses []clause
}

// New construye un Where vacío.
func New() *Where { return &Where{} }

// Eq agrega column = value.
func (w *Where) Eq(column string, value any) *Where {
	w.clauses = append(w.clauses, clause{op: opEq, columns: []string{column}, value: value})
	return w
}

// Gte agrega column >= value.
func (w *Where) Gte(column string, value any) *Where {
	w.clauses = append(w.clauses, clause{op: opGte, columns: []string{column}, value: value})
	return w
}

// Lte agrega column <= value.
func (w *Where) Lte(column string, value any) *Where {
	w.clauses = append(w.clauses, clause{op: opLte, columns: []string{column}, value: value})
	return w
}

// SearchAny agrega (c1 LIKE %term% OR c2 LIKE %term% ...). Un término vacío no agrega nada.
// Los comodines presentes en term se escapan y se buscan literalmente.
func (w *Where) SearchAny(term string, columns ...string) *Where {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return w
	}
	w.clauses = append(w.clauses, clause{op: opSearch, columns: columns, value: "%" + escapeLike(term) + "%"})
	return w
}

// Empty indica si no hay predicados.
func (w *Where) Empty() bool { return len(w.clauses) == 0 }

// Build devuelve " WHERE ..." (o "" si no hay predicados) y sus argumentos.
// Los marcadores se numeran desde next (base 1); el siguiente libre es next+len(args).
func (w *Where) Build(d Dialect, next int) (string, []any) {
	if len(w.clauses) == 0 {
		return "", nil
	}
	var sb strings.Builder
	args := make([]any, 0, len(w.clauses))
	sb.WriteString(" WHERE ")
	for i, c := range w.clauses {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		switch c.op {
		case opEq, opGte, opLte:
			sb.WriteString(c.columns[0])
			sb.WriteString(comparator(c.op))
			sb.WriteString(d.Placeholder(next))
			args = append(args, c.value)
			next++
		case opSearch:
			sb.WriteByte('(')
			for j, col := range c.columns {
				if j > 0 {
					sb.WriteString(" OR ")
				}
				sb.WriteString(col + " " + d.LikeOp() + " " + d.Placeholder(next) + ` ESCAPE '\'`)
				args = append(args, c.value)
				next++
			}
			sb.WriteByte(')')
		}
	}
	return sb.String(), args
}

func comparator(o op) string {
	switch o {
	case opGte:
		return " >= "
	case opLte:
		return " <= "
	}
	return " = "
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
