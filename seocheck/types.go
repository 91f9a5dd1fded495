package seocheck

import "github.com/contentops/seo-audit/parser"

// Status is the verdict of a single check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// Check is one rule evaluation. Suggestion is non-empty exactly when the
// status is not pass. Current holds the observed value, a string or a
// number depending on the check.
type Check struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Status     Status      `json:"status"`
	Current    interface{} `json:"current"`
	Expected   string      `json:"expected"`
	Suggestion string      `json:"suggestion,omitempty"`
	Score      int         `json:"score"`
	MaxScore   int         `json:"maxScore"`
}

// Module groups related checks. Score and MaxScore are the sums over the
// contained checks; modules never read each other's output.
type Module struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Score    int     `json:"score"`
	MaxScore int     `json:"maxScore"`
	Checks   []Check `json:"checks"`
}

// Result is the top-level audit report returned to the caller.
type Result struct {
	URL         string             `json:"url"`
	Title       string             `json:"title"`
	WordCount   int                `json:"wordCount"`
	ArticleType parser.ArticleType `json:"articleType"`
	TotalScore  int                `json:"totalScore"`
	MaxScore    int                `json:"maxScore"`
	Modules     []Module           `json:"modules"`
}
