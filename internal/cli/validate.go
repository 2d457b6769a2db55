package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/unsei/internal/harness"
)

// ValidationError is one problem found in a scenario file.
type ValidationError struct {
	File    string `json:"file"`
	Path    string `json:"path,omitempty"` // field path for schema violations
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without running them",
		Long: `Validate regression scenario files without computing anything.

Checks YAML syntax, unknown keys, the embedded CUE schema (value ranges,
date shape, expectation keys) and date validity.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	files, err := harness.ScenarioFiles(scenariosDir)
	if err != nil {
		return outputValidateError(formatter, ErrCodeGeneric, err.Error())
	}
	if len(files) == 0 {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("no scenario files in %s", scenariosDir))
	}

	formatter.VerboseLog("Found %d scenario file(s) in %s", len(files), scenariosDir)

	var validationErrors []ValidationError
	for _, file := range files {
		formatter.VerboseLog("Validating %s", filepath.Base(file))
		validationErrors = append(validationErrors, validateFile(file)...)
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, len(files), validationErrors)
	}

	return outputValidateSuccess(formatter, len(files))
}

// validateFile loads one scenario file and converts its failure, if any,
// into validation errors. Schema errors yield one entry per violation.
func validateFile(path string) []ValidationError {
	_, err := harness.LoadScenario(path)
	if err == nil {
		return nil
	}

	name := filepath.Base(path)
	var se *harness.SchemaError
	if errors.As(err, &se) {
		out := make([]ValidationError, len(se.Issues))
		for i, is := range se.Issues {
			out[i] = ValidationError{File: name, Path: is.Path, Message: is.Message, Code: ErrCodeInvalid}
		}
		return out
	}
	return []ValidationError{{File: name, Message: err.Error(), Code: ErrCodeInvalid}}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, files int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Files: files})
	}

	fmt.Fprintf(formatter.Writer, "✓ All %d scenario file(s) valid\n", files)
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, files int, errs []ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Files: files, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Path != "" {
			fmt.Fprintf(formatter.Writer, "%s: %s\n", err.File, err.Path)
		} else {
			fmt.Fprintln(formatter.Writer, err.File)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
