package sqlspec

import "strings"

// quoteIdentifier returns a quoted identifier if needed.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return true
		}
	}
	_, reserved := reservedWords[strings.ToUpper(name)]
	return reserved
}

var reservedWords = map[string]struct{}{
	"ALL": {}, "AND": {}, "AS": {}, "ASC": {}, "BETWEEN": {}, "BY": {}, "CASE": {},
	"CAST": {}, "CHECK": {}, "CREATE": {}, "DEFAULT": {}, "DELETE": {}, "DESC": {},
	"DISTINCT": {}, "DROP": {}, "ELSE": {}, "END": {}, "EXISTS": {}, "FALSE": {},
	"FROM": {}, "GROUP": {}, "HAVING": {}, "IN": {}, "INDEX": {}, "INSERT": {},
	"IS": {}, "JOIN": {}, "KEY": {}, "LIKE": {}, "LIMIT": {}, "NOT": {}, "NULL": {},
	"OFFSET": {}, "ON": {}, "OR": {}, "ORDER": {}, "SELECT": {}, "SET": {},
	"TABLE": {}, "THEN": {}, "TRUE": {}, "UNION": {}, "UPDATE": {}, "USER": {},
	"VALUES": {}, "WHEN": {}, "WHERE": {},
}
