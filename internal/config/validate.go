package config

// This file lints a decoded Pipeline. Field-level rules live in the
// `validate` struct tags and are checked with go-playground/validator;
// cross-field and kind-specific rules are checked by hand below.

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single lint finding. Path is a dotted path into the
// config using JSON names, e.g. "storage.db.dsn".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Known kinds. Unknown kinds are warnings so new backends can be registered
// without touching this package.
var (
	knownSources  = map[string]struct{}{"file": {}}
	knownParsers  = map[string]struct{}{"csv": {}, "xlsx": {}}
	knownStorages = map[string]struct{}{"sqlite": {}, "postgres": {}, "mssql": {}}
	knownCharsets = map[string]struct{}{"": {}, "utf-8": {}, "utf8": {}, "windows-1252": {}, "cp1252": {}, "iso-8859-1": {}, "latin1": {}}
)

var (
	validateOnce sync.Once
	structCheck  *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		// Report JSON names in paths.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		structCheck = v
	})
	return structCheck
}

// ValidatePipeline lints p without mutating it. Callers decide whether
// warnings are fatal; errors should stop the run.
func ValidatePipeline(p Pipeline) []Issue {
	issues := structIssues(p)
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

func structIssues(p Pipeline) []Issue {
	err := structValidator().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Severity: SeverityError, Path: "", Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     issuePath(fe.Namespace()),
			Message:  fieldMessage(fe),
		})
	}
	return issues
}

// issuePath drops the root type name from a validator namespace.
func issuePath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s form", fe.Field(), "YYYY-MM-DD")
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", fe.Field())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}

func validateSource(s Source) []Issue {
	var issues []Issue
	if s.Kind == "" {
		return nil
	}
	if _, ok := knownSources[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind),
		})
	}
	if s.Kind == "file" && strings.TrimSpace(s.File.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.file.path",
			Message:  "file source requires a non-empty path",
		})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue
	if p.Kind == "" {
		return nil
	}
	if _, ok := knownParsers[p.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unknown parser kind %q; ensure a matching implementation exists", p.Kind),
		})
	}
	if p.Kind == "csv" {
		cs := strings.ToLower(p.Options.String("charset", ""))
		if _, ok := knownCharsets[cs]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "parser.options.charset",
				Message:  fmt.Sprintf("unsupported charset %q", cs),
			})
		}
		if c := p.Options.String("comma", ""); len([]rune(c)) > 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "parser.options.comma",
				Message:  "comma must be a single character",
			})
		}
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue
	if s.Kind == "" {
		return nil
	}
	if _, ok := knownStorages[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}
	if strings.HasSuffix(s.DB.Table, "_columns") {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.db.table",
			Message:  "table names ending in _columns may collide with another table's column catalog",
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	switch m.Backend {
	case "prometheus":
		if m.PushgatewayURL == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "prometheus backend requires a pushgateway_url",
			}}
		}
	case "datadog":
		if m.DatadogAddr == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.datadog_addr",
				Message:  "datadog backend requires a datadog_addr",
			}}
		}
	}
	return nil
}
