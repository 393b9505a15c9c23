package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "metrics.pushgateway_url"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
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

// Validate performs static checks over cfg. It does not mutate cfg.
func Validate(cfg Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(cfg.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validatePaths(cfg.Paths)...)
	issues = append(issues, validateCleaning(cfg.Cleaning)...)
	issues = append(issues, validateStorage(cfg.Storage)...)
	issues = append(issues, validateMetrics(cfg.Metrics)...)
	issues = append(issues, validateLog(cfg.Log)...)

	return issues
}

func validatePaths(p Paths) []Issue {
	var issues []Issue
	required := []struct{ path, val string }{
		{"paths.raw_dir", p.RawDir},
		{"paths.cleaned_dir", p.CleanedDir},
		{"paths.plan_file", p.PlanFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     r.path,
				Message:  r.path + " must not be empty",
			})
		}
	}
	for _, r := range required[1:] {
		if strings.HasPrefix(r.val, "http://") || strings.HasPrefix(r.val, "https://") {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     r.path,
				Message:  r.path + " must be a local path; only raw_dir may be a URL",
			})
		}
	}
	if p.RawDir != "" && p.RawDir == p.CleanedDir {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "paths.cleaned_dir",
			Message:  "cleaned_dir equals raw_dir; cleaned files will sit next to the raw extracts",
		})
	}
	return issues
}

func validateCleaning(c Cleaning) []Issue {
	if !c.RepairYears {
		return nil
	}
	if c.ReferenceYear < 1900 || c.ReferenceYear > 9999 {
		return []Issue{{
			Severity: SeverityError,
			Path:     "cleaning.reference_year",
			Message:  fmt.Sprintf("reference_year=%d; must be between 1900 and 9999 when repair_years is on", c.ReferenceYear),
		}}
	}
	return nil
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
		return issues
	}

	if kinds := storage.ListKinds(); !slices.Contains(kinds, s.Kind) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; registered backends: %s", s.Kind, strings.Join(kinds, ", ")),
		})
	}
	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "storage.dsn must not be empty",
		})
	}
	if s.BatchSize <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.batch_size",
			Message:  fmt.Sprintf("batch_size=%d; the loader default will be used", s.BatchSize),
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	switch m.Backend {
	case "", "none":
		return nil
	case "prometheus":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "prometheus backend requires a pushgateway_url",
			}}
		}
	case "datadog":
		if strings.TrimSpace(m.DatadogAddr) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.datadog_addr",
				Message:  "datadog backend requires a datadog_addr",
			}}
		}
		for _, tag := range m.Tags {
			if !strings.Contains(tag, ":") {
				return []Issue{{
					Severity: SeverityWarning,
					Path:     "metrics.tags",
					Message:  fmt.Sprintf("tag %q is not in key:value form", tag),
				}}
			}
		}
	default:
		return []Issue{{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; want none, prometheus or datadog", m.Backend),
		}}
	}
	return nil
}

func validateLog(l Log) []Issue {
	var issues []Issue
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "log.level",
			Message:  err.Error(),
		})
	}
	switch l.Format {
	case "", "text", "json":
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "log.format",
			Message:  fmt.Sprintf("unknown log format %q; text will be used", l.Format),
		})
	}
	return issues
}
