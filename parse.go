package skema

import (
	"context"
	"errors"

	eng "github.com/reoring/skema/internal/engine"
	yamlsrc "github.com/reoring/skema/source/yaml"
)

// ParseFrom decodes one document from src, applying the duplicate-key, depth
// and size limits of opts, and validates it against s. Decoding failures are
// reported as issues in the Result; duplicate keys under Warn land in
// Result.Warnings.
func ParseFrom(ctx context.Context, s *Schema, src Source, opts ...ParseOpt) Result {
	if s == nil {
		return Result{Issues: singleIssue(CodeCustom, "nil schema")}
	}
	if src == nil {
		return Result{Issues: singleIssue(CodeParseError, "nil source")}
	}
	opt := lastOpt(opts)
	var warnings Issues
	v, err := src.decode(opt, func(it Issue) { warnings = append(warnings, it) })
	if err != nil {
		return Result{Issues: toIssues(err), Warnings: warnings}
	}
	r := Validate(ctx, s, v, opts...)
	r.Warnings = warnings
	return r
}

// ParseSource is the error-returning form of ParseFrom.
func ParseSource(ctx context.Context, s *Schema, src Source, opts ...ParseOpt) (any, error) {
	r := ParseFrom(ctx, s, src, opts...)
	if !r.OK() {
		return nil, r.Issues
	}
	return r.Value, nil
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, fromSimpleIssue(ie.SimpleIssue))
	}
	if errors.Is(err, yamlsrc.ErrTooDeep) {
		return AppendIssues(nil, Issue{Code: CodeTooDeep, Message: err.Error()})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error()})
}
