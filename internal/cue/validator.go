package cue

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// ValidationError represents a validation error
type ValidationError struct {
	File     string
	Message  string
	Severity string // error, warning
}

func (e ValidationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas loads all CUE schema files from the embedded filesystem
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("compiling schema %s: %w", entry.Name(), instErr)
		}

		// ruleset.cue -> ruleset
		schemaName := strings.TrimSuffix(entry.Name(), ".cue")
		v.schemas[schemaName] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}

	return nil
}

// ValidateRuleSet validates a decoded rule-set document against the ruleset schema
func (v *Validator) ValidateRuleSet(data map[string]any) ([]ValidationError, error) {
	schema, ok := v.schemas["ruleset"]
	if !ok {
		return nil, fmt.Errorf("ruleset schema not loaded")
	}
	return v.validateAgainstSchema(schema, data, "ruleset")
}

// validateAgainstSchema validates data against a CUE schema
func (v *Validator) validateAgainstSchema(schema cue.Value, data map[string]any, schemaType string) ([]ValidationError, error) {
	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return nil, fmt.Errorf("error encoding data: %w", encErr)
	}

	// ruleset -> #Ruleset
	defPath := cue.ParsePath("#" + strings.ToUpper(schemaType[:1]) + schemaType[1:])
	def := schema.LookupPath(defPath)
	if !def.Exists() {
		return nil, fmt.Errorf("schema definition %s not found", defPath)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return extractErrorsFromCUE(err), nil
	}

	// Concreteness catches missing required fields
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return extractErrorsFromCUE(err), nil
	}

	return nil, nil
}

// extractErrorsFromCUE flattens a CUE error into one ValidationError per line
func extractErrorsFromCUE(err error) []ValidationError {
	var errs []ValidationError
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		errs = append(errs, ValidationError{
			Message:  "schema validation failed: " + line,
			Severity: "error",
		})
	}
	return errs
}
