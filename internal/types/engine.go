package types

import (
	"fmt"
	"strings"
)

// Engine identifies a compilation target.
type Engine string

const (
	EngineSurrealDB Engine = "surrealdb"
	EnginePostgres  Engine = "postgres"
	EngineSQLite    Engine = "sqlite"
	EngineMySQL     Engine = "mysql"
)

var engineAliases = map[string]Engine{
	"surrealdb":  EngineSurrealDB,
	"surreal":    EngineSurrealDB,
	"postgres":   EnginePostgres,
	"postgresql": EnginePostgres,
	"pg":         EnginePostgres,
	"sqlite":     EngineSQLite,
	"sqlite3":    EngineSQLite,
	"mysql":      EngineMySQL,
	"mariadb":    EngineMySQL,
}

// Engines returns every supported engine.
func Engines() []Engine {
	return []Engine{EngineSurrealDB, EnginePostgres, EngineSQLite, EngineMySQL}
}

// ParseEngine resolves an engine name, accepting common aliases.
func ParseEngine(name string) (Engine, error) {
	if e, ok := engineAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return e, nil
	}
	return "", fmt.Errorf("unknown engine %q", name)
}

func (e Engine) String() string {
	return string(e)
}

// Valid reports whether e is a supported engine.
func (e Engine) Valid() bool {
	switch e {
	case EngineSurrealDB, EnginePostgres, EngineSQLite, EngineMySQL:
		return true
	}
	return false
}

// IsGraph reports whether the engine speaks a graph query language.
func (e Engine) IsGraph() bool {
	return e == EngineSurrealDB
}

// IsRelational reports whether the engine speaks SQL.
func (e Engine) IsRelational() bool {
	return e.Valid() && !e.IsGraph()
}
