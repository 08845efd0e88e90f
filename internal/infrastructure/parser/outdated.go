package parser

import (
	"regexp"
	"strings"
)

type outdatedRule struct {
	expr   *regexp.Regexp
	reason string
}

// Ordered: the first matching rule supplies the reason.
var outdatedRules = []outdatedRule{
	{regexp.MustCompile(`\b(this|it) (is|has been) deprecated\b`), "Article declares deprecation"},
	{regexp.MustCompile(`\bdeprecated[.!]?\s`), "Content marked as deprecated"},
	{regexp.MustCompile(`\bno longer (maintained|recommended|supported)\b`), "No longer maintained/supported"},
	{regexp.MustCompile(`\bend[- ]of[- ]life\b`), "End of life"},
	{regexp.MustCompile(`\bhas been (sunset|discontinued|archived)\b`), "Project discontinued"},
	{regexp.MustCompile(`\buse .{1,30} instead\b`), "Recommends alternative"},
	{regexp.MustCompile(`\bmigrated? to .{1,30}\b`), "Migration recommended"},
	{regexp.MustCompile(`\breplaced? by .{1,30}\b`), "Replaced by newer solution"},
	{regexp.MustCompile(`\b(this|the) (project|tool|library|package|framework) is (deprecated|archived)\b`), "Project deprecated/archived"},
}

// DetectOutdated scans title, description and body for explicit
// deprecation language.
func DetectOutdated(title, description, body string) (bool, string) {
	text := strings.ToLower(title + " " + description + " " + body)
	for _, rule := range outdatedRules {
		if rule.expr.MatchString(text) {
			return true, rule.reason
		}
	}
	return false, ""
}
