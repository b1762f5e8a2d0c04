package postgres

import (
	"fmt"
	"strings"
)

// Field par (columna, valor) ya filtrado: los campos ausentes del patch nunca
// llegan aquí. Los nombres de columna provienen exclusivamente del código de
// cada repositorio; los valores viajan siempre como parámetros posicionales,
// jamás interpolados en el SQL.
type Field struct {
	Name  string
	Value any
}

// BuildInsert genera `INSERT INTO tabla (a, b) VALUES ($1, $2)` con los
// parámetros en el mismo orden que fields. El id lo antepone el repositorio
// (que lo genera con pkg/ids) antes de llamar.
func BuildInsert(table string, fields []Field) (string, []any) {
	names := make([]string, len(fields))
	placeholders := make([]string, len(fields))
	params := make([]any, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		params[i] = f.Value
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	return sql, params
}

// BuildUpdate genera `UPDATE tabla SET a = $2, b = $3, updated_at = now()
// WHERE id = $1` con el id como primer parámetro. Con fields vacío retorna
// ok=false: el repositorio resuelve el patch vacío con una lectura en lugar de
// emitir SQL malformado.
func BuildUpdate(table, id string, fields []Field) (sql string, params []any, ok bool) {
	if len(fields) == 0 {
		return "", nil, false
	}
	sets := make([]string, len(fields))
	params = make([]any, 0, len(fields)+1)
	params = append(params, id)
	for i, f := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", f.Name, i+2)
		params = append(params, f.Value)
	}
	sql = fmt.Sprintf("UPDATE %s SET %s, updated_at = now() WHERE id = $1",
		table, strings.Join(sets, ", "))
	return sql, params, true
}
