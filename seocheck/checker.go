// Package seocheck scores a parsed page against a fixed battery of SEO
// rules grouped into independent modules. Evaluate is a pure function of
// its inputs: same page, keywords and brand always produce the same
// report.
package seocheck

import (
	"strings"

	"github.com/contentops/seo-audit/parser"
)

// checkDef is one rule in a module's table: a stable id, a human label,
// the fixed point weight, and the evaluation function.
type checkDef struct {
	id       string
	name     string
	maxScore int
	eval     func(in *input, d checkDef) Check
}

// input carries the page plus pre-lowered views of the fields the checks
// compare against, so each check stays a cheap string/number comparison.
type input struct {
	page      *parser.PageData
	keywords  []string
	primary   string
	secondary []string
	brand     string

	titleLower     string
	bodyLower      string
	metaLower      string
	firstParaLower string
	h1Lower        string
}

func newInput(page *parser.PageData, keywords []string, brandName string) *input {
	in := &input{
		page:           page,
		keywords:       keywords,
		brand:          strings.TrimSpace(brandName),
		titleLower:     strings.ToLower(page.Title),
		bodyLower:      strings.ToLower(page.BodyText),
		metaLower:      strings.ToLower(page.MetaDescription),
		firstParaLower: strings.ToLower(page.FirstParagraph()),
		h1Lower:        strings.ToLower(strings.Join(page.H1, " ")),
	}
	for i, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if i == 0 {
			in.primary = kw
		} else {
			in.secondary = append(in.secondary, kw)
		}
	}
	return in
}

// hasKeywords reports whether a usable primary keyword was supplied.
// Without one, keyword-dependent checks degrade to neutral results
// instead of penalizing the page.
func (in *input) hasKeywords() bool {
	return in.primary != ""
}

// Evaluate runs every module against the page and returns them in fixed
// order: content, images, technical, schema.
func Evaluate(page *parser.PageData, keywords []string, brandName string) []Module {
	in := newInput(page, keywords, brandName)
	return []Module{
		buildModule("content", "Nội dung", contentChecks, in),
		buildModule("images", "Hình ảnh", imageChecks, in),
		buildModule("technical", "Kỹ thuật & Meta", technicalChecks, in),
		buildModule("schema", "Dữ liệu có cấu trúc", schemaChecks, in),
	}
}

// BuildResult aggregates module scores into the top-level report.
func BuildResult(page *parser.PageData, modules []Module) Result {
	result := Result{
		URL:         page.URL,
		Title:       page.Title,
		WordCount:   page.WordCount,
		ArticleType: page.ArticleType,
		Modules:     modules,
	}
	for _, m := range modules {
		result.TotalScore += m.Score
		result.MaxScore += m.MaxScore
	}
	return result
}

func buildModule(id, name string, defs []checkDef, in *input) Module {
	m := Module{
		ID:     id,
		Name:   name,
		Checks: make([]Check, 0, len(defs)),
	}
	for _, d := range defs {
		c := d.eval(in, d)
		m.Checks = append(m.Checks, c)
		m.Score += c.Score
		m.MaxScore += c.MaxScore
	}
	return m
}

// scored fills a Check from a ratio. The suggestion is dropped on a
// pass so that it is present exactly when remediation is needed.
func (d checkDef) scored(ratio float64, current interface{}, expected, suggestion string) Check {
	ratio = clamp01(ratio)
	c := Check{
		ID:       d.id,
		Name:     d.name,
		Status:   statusFor(ratio),
		Current:  current,
		Expected: expected,
		Score:    roundHalfUp(ratio * float64(d.maxScore)),
		MaxScore: d.maxScore,
	}
	if c.Score > c.MaxScore {
		c.Score = c.MaxScore
	}
	if c.Status != StatusPass {
		c.Suggestion = suggestion
	}
	return c
}

func (d checkDef) pass(current interface{}, expected string) Check {
	return d.scored(1, current, expected, "")
}

// neutral marks a check that could not be evaluated (missing keywords).
// It carries no weight so the total is not skewed either way.
func (d checkDef) neutral(reason string) Check {
	return Check{
		ID:         d.id,
		Name:       d.name,
		Status:     StatusWarning,
		Current:    "",
		Expected:   reason,
		Suggestion: reason,
		Score:      0,
		MaxScore:   0,
	}
}
