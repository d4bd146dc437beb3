package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/nested"
	"github.com/yaklabco/gomdnest/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	toolName           = "gomdnest"
	toolInformationURI = "https://github.com/yaklabco/gomdnest"
	ruleHelpURIFormat  = "https://github.com/DavidAnson/markdownlint/blob/main/doc/%s.md"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	HelpURI          string               `json:"helpUri,omitempty"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single violation.
type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    SARIFMessage    `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties *SARIFNesting   `json:"properties,omitempty"`
}

// SARIFNesting records where inside the fence the violation sits.
type SARIFNesting struct {
	NestedLine int    `json:"nestedLine"`
	Depth      int    `json:"depth"`
	Ancestry   string `json:"ancestry"`
	BlockIndex int    `json:"blockIndex"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFInvocation reports file-level and checker failures as notifications.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is one internal error.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           toolName,
				Version:        r.opts.Version,
				InformationURI: toolInformationURI,
				Rules:          make([]SARIFRule, 0),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	if result != nil {
		base := baseDir(r.opts, result)
		rulesSeen := make(map[string]bool)
		var notifications []SARIFNotification

		for i := range result.Files {
			file := &result.Files[i]
			uri := displayPath(base, file.Path)

			if file.Err != nil {
				notifications = append(notifications, notification(uri, 0, file.Err))
			}

			for _, res := range file.Results {
				if res.Err != nil {
					notifications = append(notifications, notification(uri, res.Block.RootLine, res.Err))
				}
				for _, v := range res.Violations {
					if !rulesSeen[v.RuleID()] {
						rulesSeen[v.RuleID()] = true
						run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, newSARIFRule(v))
					}
					run.Results = append(run.Results, newSARIFResult(uri, res, v))
				}
			}
		}

		if len(notifications) > 0 {
			run.Invocations = []SARIFInvocation{{
				ExecutionSuccessful:        false,
				ToolExecutionNotifications: notifications,
			}}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func newSARIFRule(v nested.Violation) SARIFRule {
	rule := SARIFRule{
		ID:               v.RuleID(),
		ShortDescription: SARIFMultiformatText{Text: v.Description},
		HelpURI:          fmt.Sprintf(ruleHelpURIFormat, strings.ToLower(v.RuleID())),
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(v.Severity)},
	}
	if len(v.RuleNames) > 1 {
		rule.Name = v.RuleNames[1]
	}
	return rule
}

func newSARIFResult(uri string, res nested.BlockResult, v nested.Violation) SARIFResult {
	text := v.Description
	if v.Detail != "" {
		text += " [" + v.Detail + "]"
	}

	region := &SARIFRegion{
		StartLine:   res.AbsoluteLine(v),
		StartColumn: v.Column(),
	}
	if v.Range != nil && v.Range.Length > 0 {
		region.EndColumn = v.Column() + v.Range.Length
	}

	return SARIFResult{
		RuleID:  v.RuleID(),
		Level:   severityToSARIFLevel(v.Severity),
		Message: SARIFMessage{Text: text},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Region:           region,
			},
		}},
		Properties: &SARIFNesting{
			NestedLine: v.Line,
			Depth:      res.Block.Depth,
			Ancestry:   res.Block.AncestryPath,
			BlockIndex: res.Index,
		},
	}
}

func notification(uri string, line int, err error) SARIFNotification {
	n := SARIFNotification{
		Level:   "error",
		Message: SARIFMessage{Text: err.Error()},
	}
	loc := SARIFLocation{PhysicalLocation: SARIFPhysicalLocation{
		ArtifactLocation: SARIFArtifactLocation{URI: uri},
	}}
	if line > 0 {
		loc.PhysicalLocation.Region = &SARIFRegion{StartLine: line}
	}
	n.Locations = []SARIFLocation{loc}
	return n
}

// severityToSARIFLevel converts a rule severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
