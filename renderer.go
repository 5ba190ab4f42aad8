package surql

import (
	"github.com/sirupsen/logrus"
)

// Renderer defines the interface for engine-specific rendering.
// Implementations convert an AST to query text plus bindings.
type Renderer interface {
	// Engine reports the target engine.
	Engine() Engine

	// Render converts an AST to a QueryResult.
	Render(ast *AST) (*QueryResult, error)
}

// Compile renders ast with r, tracing the outcome at debug level.
func Compile(ast *AST, r Renderer) (*QueryResult, error) {
	log := logrus.WithFields(logrus.Fields{
		"component": "Compiler",
		"engine":    r.Engine(),
	})

	result, err := r.Render(ast)
	if err != nil {
		log.WithError(err).Debug("Failed to compile query")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"kind":  ast.Kind,
		"binds": result.Bindings.Len(),
		"args":  len(result.Args),
	}).Debug("Compiled query")
	return result, nil
}
