package harness

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// SchemaIssue is one schema violation.
type SchemaIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaError reports every schema violation of a scenario.
type SchemaError struct {
	Issues []SchemaIssue
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		if is.Path != "" {
			msgs[i] = is.Path + ": " + is.Message
		} else {
			msgs[i] = is.Message
		}
	}
	return "schema: " + strings.Join(msgs, "; ")
}

// The cue runtime is not safe for concurrent use, so validation is
// serialized on one context.
var (
	schemaMu    sync.Mutex
	schemaCtx   *cue.Context
	scenarioDef cue.Value
	schemaErr   error
	compileOnce sync.Once
)

func compileSchema() {
	schemaCtx = cuecontext.New()
	v := schemaCtx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		schemaErr = fmt.Errorf("compile scenario schema: %w", err)
		return
	}
	scenarioDef = v.LookupPath(cue.ParsePath("#Scenario"))
	if err := scenarioDef.Err(); err != nil {
		schemaErr = fmt.Errorf("lookup #Scenario: %w", err)
	}
}

// ValidateSchema checks s against the embedded CUE schema: field ranges
// (kin 1..260, lunar month 1..12), date shape and the set of expectation
// keys.
func ValidateSchema(s *Scenario) error {
	compileOnce.Do(compileSchema)
	if schemaErr != nil {
		return schemaErr
	}

	schemaMu.Lock()
	defer schemaMu.Unlock()

	v := schemaCtx.Encode(s)
	if err := v.Err(); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}

	unified := scenarioDef.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toSchemaError(err)
	}
	return nil
}

func toSchemaError(err error) *SchemaError {
	se := &SchemaError{}
	for _, e := range errors.Errors(err) {
		issue := SchemaIssue{Path: strings.Join(e.Path(), ".")}
		if issue.Path == "" {
			issue.Message = e.Error()
		} else {
			format, args := e.Msg()
			issue.Message = fmt.Sprintf(format, args...)
		}
		se.Issues = append(se.Issues, issue)
	}
	if len(se.Issues) == 0 {
		se.Issues = append(se.Issues, SchemaIssue{Message: err.Error()})
	}
	return se
}
