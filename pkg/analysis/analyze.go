package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/nested"
	"github.com/yaklabco/gomdnest/pkg/runner"
)

type ruleAccumulator struct {
	analysis RuleAnalysis
	files    map[string]bool
}

type analysisContext struct {
	rules map[string]*ruleAccumulator
	depth []DepthAnalysis
}

// Analyze walks a run once and builds every view.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version: ReportVersion,
		ByRule:  []RuleAnalysis{},
		ByFile:  []FileAnalysis{},
		ByDepth: []DepthAnalysis{},
	}
	if result == nil {
		return report
	}

	ctx := &analysisContext{rules: make(map[string]*ruleAccumulator)}

	for i := range result.Files {
		file := &result.Files[i]
		path := relativePath(file.Path, opts.WorkingDir)

		for _, block := range file.Blocks {
			ctx.depthEntry(block.Depth).Blocks++
			report.Totals.DeepestBlock = max(report.Totals.DeepestBlock, block.Depth)
		}

		fa := FileAnalysis{Path: path, Blocks: len(file.Blocks)}
		fileRules := make(map[string]bool)

		for _, res := range file.Results {
			blockRules := make(map[string]bool)
			for _, v := range res.Violations {
				report.Totals.Issues++
				countSeverity(&report.Totals, v.Severity)
				fa.Issues++
				ctx.depthEntry(res.Block.Depth).Issues++

				acc := ctx.rule(v)
				acc.analysis.Issues++
				acc.files[path] = true
				if !blockRules[v.RuleID()] {
					blockRules[v.RuleID()] = true
					acc.analysis.Blocks++
				}
				fileRules[v.RuleID()] = true
			}
		}

		if fa.Issues > 0 {
			fa.Rules = slices.Sorted(maps.Keys(fileRules))
			report.ByFile = append(report.ByFile, fa)
		}
	}

	for _, acc := range ctx.rules {
		acc.analysis.Files = slices.Sorted(maps.Keys(acc.files))
		report.ByRule = append(report.ByRule, acc.analysis)
	}

	sortRules(report.ByRule, opts.SortBy)
	sortFiles(report.ByFile, opts.SortBy)
	report.ByDepth = ctx.depth

	return report
}

func (ctx *analysisContext) rule(v nested.Violation) *ruleAccumulator {
	id := v.RuleID()
	if acc, ok := ctx.rules[id]; ok {
		return acc
	}

	acc := &ruleAccumulator{
		analysis: RuleAnalysis{RuleID: id},
		files:    make(map[string]bool),
	}
	if len(v.RuleNames) > 1 {
		acc.analysis.RuleName = v.RuleNames[1]
	}
	ctx.rules[id] = acc
	return acc
}

func (ctx *analysisContext) depthEntry(depth int) *DepthAnalysis {
	for len(ctx.depth) <= depth {
		ctx.depth = append(ctx.depth, DepthAnalysis{Depth: len(ctx.depth)})
	}
	return &ctx.depth[depth]
}

func countSeverity(totals *Totals, severity config.Severity) {
	switch severity {
	case config.SeverityWarning:
		totals.Warnings++
	case config.SeverityInfo:
		totals.Infos++
	default:
		totals.Errors++
	}
}

func relativePath(path, workDir string) string {
	if workDir == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func sortRules(rules []RuleAnalysis, sortBy SortField) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		if sortBy != SortByAlpha {
			if c := cmp.Compare(right.Issues, left.Issues); c != 0 {
				return c
			}
		}
		return cmp.Compare(left.RuleID, right.RuleID)
	})
}

func sortFiles(files []FileAnalysis, sortBy SortField) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		if sortBy != SortByAlpha {
			if c := cmp.Compare(right.Issues, left.Issues); c != 0 {
				return c
			}
		}
		return cmp.Compare(left.Path, right.Path)
	})
}
