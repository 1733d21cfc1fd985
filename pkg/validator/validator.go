// Package validator lints recorded flow files. Findings are informational:
// extraction tolerates every issue reported here.
package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devicelab-dev/flowdigest/pkg/flow"
	"github.com/devicelab-dev/flowdigest/pkg/interaction"
)

// Severity ranks an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue codes.
const (
	CodeAccess          = "access"
	CodeParse           = "parse_error"
	CodeDuplicateStepID = "duplicate_step_id"
	CodeMissingClickID  = "missing_click_id"
	CodeDanglingClickID = "dangling_click_id"
	CodeClickNotImage   = "click_target_not_image"
	CodeMissingTime     = "missing_timestamp"
	CodeUnknownEvent    = "unknown_event_type"
)

// Issue is a single finding in a flow file.
type Issue struct {
	File     string
	Severity Severity
	Code     string
	Message  string
}

func (i Issue) String() string {
	if i.File == "" {
		return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Code, i.Message)
	}
	return fmt.Sprintf("%s: [%s] %s: %s", i.File, i.Severity, i.Code, i.Message)
}

// Result contains the validation result.
type Result struct {
	// Files is the list of flow files that were parsed.
	Files []string
	// Issues contains every finding in file order.
	Issues []Issue
	// RuleHits counts which classifier rule handles each click on a step
	// with click context.
	RuleHits map[string]int
}

// IsValid returns true if there are no error-level issues.
func (r *Result) IsValid() bool {
	return r.Count(SeverityError) == 0
}

// Count returns the number of issues with the given severity.
func (r *Result) Count(sev Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// Validate lints a flow file, or every .json file below a directory.
func Validate(path string) *Result {
	result := &Result{RuleHits: make(map[string]int)}

	info, err := os.Stat(path)
	if err != nil {
		result.add(path, SeverityError, CodeAccess, fmt.Sprintf("cannot access: %v", err))
		return result
	}

	files := []string{path}
	if info.IsDir() {
		files, err = collectFlowFiles(path)
		if err != nil {
			result.add(path, SeverityError, CodeAccess, fmt.Sprintf("failed to scan directory: %v", err))
			return result
		}
	}

	for _, file := range files {
		f, err := flow.ParseFile(file)
		if err != nil {
			result.add(file, SeverityError, CodeParse, err.Error())
			continue
		}
		result.Files = append(result.Files, file)
		lint(f, file, result)
	}
	return result
}

// Lint checks an already parsed flow.
func Lint(f *flow.Flow) *Result {
	result := &Result{RuleHits: make(map[string]int)}
	if f != nil {
		lint(f, f.SourcePath, result)
	}
	return result
}

func lint(f *flow.Flow, file string, result *Result) {
	counts := make(map[string]int)
	var order []string
	for _, s := range f.Steps {
		if s.ID == "" {
			continue
		}
		if counts[s.ID] == 0 {
			order = append(order, s.ID)
		}
		counts[s.ID]++
	}
	for _, id := range order {
		if counts[id] > 1 {
			result.add(file, SeverityWarning, CodeDuplicateStepID,
				fmt.Sprintf("step id %q appears %d times; the last one is used", id, counts[id]))
		}
	}

	steps := interaction.IndexSteps(f.Steps)
	for i, ev := range f.CapturedEvents {
		switch ev.Type {
		case flow.EventClick:
			lintClick(i, ev, steps, file, result)
		case flow.EventTyping, flow.EventScrolling, flow.EventDragging:
		default:
			result.add(file, SeverityInfo, CodeUnknownEvent,
				fmt.Sprintf("event %d has unknown type %q and is ignored", i, ev.Type))
			continue
		}

		_, hasTime := ev.TimeMs.Value()
		_, hasStart := ev.StartTimeMs.Value()
		if !hasTime && !hasStart {
			result.add(file, SeverityWarning, CodeMissingTime,
				fmt.Sprintf("event %d (%s) has no timeMs or startTimeMs and sorts first", i, ev.Type))
		}
	}
}

func lintClick(i int, ev flow.Event, steps map[string]*flow.Step, file string, result *Result) {
	if strings.TrimSpace(ev.ClickID) == "" {
		result.add(file, SeverityWarning, CodeMissingClickID,
			fmt.Sprintf("click event %d has no clickId", i))
		return
	}
	step, ok := steps[ev.ClickID]
	if !ok {
		result.add(file, SeverityWarning, CodeDanglingClickID,
			fmt.Sprintf("click event %d references unknown step %q", i, ev.ClickID))
		return
	}
	if step.Type != flow.StepImage {
		result.add(file, SeverityWarning, CodeClickNotImage,
			fmt.Sprintf("click event %d targets %s step %q", i, step.Type, ev.ClickID))
		return
	}
	if !step.ClickContext.IsEmpty() {
		result.RuleHits[interaction.RuleName(step)]++
	}
}

func (r *Result) add(file string, sev Severity, code, msg string) {
	r.Issues = append(r.Issues, Issue{File: file, Severity: sev, Code: code, Message: msg})
}

// collectFlowFiles finds all .json files in a directory.
func collectFlowFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
