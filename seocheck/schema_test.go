package seocheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contentops/seo-audit/parser"
)

func TestSchemaTypeMatch(t *testing.T) {
	def := schemaChecks[1]

	matched := newInput(&parser.PageData{
		ArticleType: parser.TypeProduct,
		Schemas: []parser.SchemaData{
			{Type: "Product", Data: map[string]interface{}{"name": "x"}},
		},
	}, nil, "")
	c := checkSchemaTypeMatch(matched, def)
	assert.Equal(t, StatusPass, c.Status)
	assert.Equal(t, "Product", c.Current)

	wrongType := newInput(&parser.PageData{
		ArticleType: parser.TypeProduct,
		Schemas: []parser.SchemaData{
			{Type: "Article", Data: map[string]interface{}{}},
		},
	}, nil, "")
	c = checkSchemaTypeMatch(wrongType, def)
	assert.Equal(t, StatusFail, c.Status)
	assert.Greater(t, c.Score, 0)
	assert.Contains(t, c.Suggestion, "Product")

	none := newInput(&parser.PageData{ArticleType: parser.TypeProduct}, nil, "")
	c = checkSchemaTypeMatch(none, def)
	assert.Equal(t, StatusFail, c.Status)
	assert.Equal(t, 0, c.Score)
}

func TestSchemaTypeMatchUntypedBlocks(t *testing.T) {
	def := schemaChecks[1]

	in := newInput(&parser.PageData{
		ArticleType: parser.TypeProduct,
		Schemas: []parser.SchemaData{
			{Type: "", Data: map[string]interface{}{"name": "x"}},
		},
	}, nil, "")
	c := checkSchemaTypeMatch(in, def)
	assert.Equal(t, StatusFail, c.Status)
	assert.Equal(t, "schema không khai báo @type", c.Current)
	assert.Contains(t, c.Suggestion, "@type")
	assert.Contains(t, c.Suggestion, "Product")
	assert.NotContains(t, c.Suggestion, "thay vì")
}

func TestSchemaRequiredFields(t *testing.T) {
	def := schemaChecks[2]

	complete := newInput(&parser.PageData{
		ArticleType: parser.TypeFAQ,
		Schemas: []parser.SchemaData{
			{Type: "FAQPage", Data: map[string]interface{}{
				"mainEntity": []interface{}{map[string]interface{}{"@type": "Question"}},
			}},
		},
	}, nil, "")
	c := checkSchemaRequiredFields(complete, def)
	assert.Equal(t, StatusPass, c.Status)

	incomplete := newInput(&parser.PageData{
		ArticleType: parser.TypeArticle,
		Schemas: []parser.SchemaData{
			{Type: "Article", Data: map[string]interface{}{
				"headline": "tiêu đề",
				"author":   "tác giả",
			}},
		},
	}, nil, "")
	c = checkSchemaRequiredFields(incomplete, def)
	assert.Equal(t, StatusWarning, c.Status)
	assert.Equal(t, "2/4", c.Current)
	assert.Contains(t, c.Suggestion, "datePublished")
	assert.Contains(t, c.Suggestion, "image")
}

func TestSchemaRequiredFieldsCaseInsensitiveType(t *testing.T) {
	def := schemaChecks[2]

	in := newInput(&parser.PageData{
		ArticleType: parser.TypeArticle,
		Schemas: []parser.SchemaData{
			{Type: "article", Data: map[string]interface{}{
				"headline":      "a",
				"author":        "b",
				"datePublished": "c",
				"image":         "d",
			}},
		},
	}, nil, "")
	c := checkSchemaRequiredFields(in, def)
	assert.Equal(t, StatusPass, c.Status)
}

func TestSchemaBreadcrumb(t *testing.T) {
	def := schemaChecks[3]

	with := newInput(&parser.PageData{
		Schemas: []parser.SchemaData{
			{Type: "BreadcrumbList", Data: map[string]interface{}{}},
		},
	}, nil, "")
	c := checkSchemaBreadcrumb(with, def)
	assert.Equal(t, StatusPass, c.Status)

	without := newInput(&parser.PageData{}, nil, "")
	c = checkSchemaBreadcrumb(without, def)
	assert.Equal(t, StatusWarning, c.Status)
	assert.NotEmpty(t, c.Suggestion)
}
