package seocheck

import (
	"fmt"
	"strings"

	"github.com/contentops/seo-audit/parser"
)

var schemaChecks = []checkDef{
	{"schema-present", "Có dữ liệu có cấu trúc", 10, checkSchemaPresent},
	{"schema-type-match", "Loại schema phù hợp", 10, checkSchemaTypeMatch},
	{"schema-required-fields", "Trường bắt buộc của schema", 10, checkSchemaRequiredFields},
	{"schema-breadcrumb", "Schema breadcrumb", 5, checkSchemaBreadcrumb},
}

// Accepted schema types per detected article type. The first schema on
// the page matching one of these is the one whose fields get validated.
var schemaTypesByArticle = map[parser.ArticleType][]string{
	parser.TypeDestination: {"Article", "BlogPosting", "TouristDestination", "TouristAttraction"},
	parser.TypeFood:        {"Recipe", "Restaurant", "Article", "BlogPosting"},
	parser.TypeGuide:       {"HowTo", "Article", "BlogPosting"},
	parser.TypeReview:      {"Review", "Product", "Article"},
	parser.TypeNews:        {"NewsArticle", "Article"},
	parser.TypeProduct:     {"Product"},
	parser.TypeFAQ:         {"FAQPage"},
	parser.TypeVideo:       {"VideoObject", "Article"},
	parser.TypeArticle:     {"Article", "BlogPosting", "NewsArticle"},
}

var requiredFieldsBySchema = map[string][]string{
	"Article":            {"headline", "author", "datePublished", "image"},
	"BlogPosting":        {"headline", "author", "datePublished", "image"},
	"NewsArticle":        {"headline", "author", "datePublished", "image"},
	"HowTo":              {"name", "step"},
	"Recipe":             {"name", "recipeIngredient", "recipeInstructions"},
	"Restaurant":         {"name", "address"},
	"Product":            {"name", "image", "offers"},
	"Review":             {"itemReviewed", "reviewRating", "author"},
	"FAQPage":            {"mainEntity"},
	"VideoObject":        {"name", "uploadDate", "thumbnailUrl"},
	"TouristDestination": {"name"},
	"TouristAttraction":  {"name"},
}

func acceptedTypes(t parser.ArticleType) []string {
	if types, ok := schemaTypesByArticle[t]; ok {
		return types
	}
	return schemaTypesByArticle[parser.TypeArticle]
}

// matchedSchema returns the first schema block accepted for the page's
// article type.
func matchedSchema(page *parser.PageData) (parser.SchemaData, bool) {
	for _, accepted := range acceptedTypes(page.ArticleType) {
		for _, s := range page.Schemas {
			if strings.EqualFold(s.Type, accepted) {
				return s, true
			}
		}
	}
	return parser.SchemaData{}, false
}

func checkSchemaPresent(in *input, d checkDef) Check {
	expected := "ít nhất một khối JSON-LD hợp lệ"
	count := len(in.page.Schemas)
	if count > 0 {
		return d.pass(count, expected)
	}
	return d.scored(0, 0, expected,
		"Thêm dữ liệu có cấu trúc JSON-LD cho trang")
}

func checkSchemaTypeMatch(in *input, d checkDef) Check {
	accepted := acceptedTypes(in.page.ArticleType)
	expected := fmt.Sprintf("schema dạng %s cho bài %s",
		strings.Join(accepted, "/"), in.page.ArticleType)
	if s, ok := matchedSchema(in.page); ok {
		return d.pass(s.Type, expected)
	}
	if len(in.page.Schemas) > 0 {
		var got []string
		for _, s := range in.page.Schemas {
			if s.Type != "" {
				got = append(got, s.Type)
			}
		}
		if len(got) == 0 {
			return d.scored(0.3, "schema không khai báo @type", expected,
				fmt.Sprintf("Khai báo @type cho khối JSON-LD và dùng schema %s", accepted[0]))
		}
		return d.scored(0.3, strings.Join(got, ", "), expected,
			fmt.Sprintf("Thêm schema %s thay vì chỉ dùng %s",
				accepted[0], strings.Join(got, ", ")))
	}
	return d.scored(0, "không có schema", expected,
		fmt.Sprintf("Thêm schema %s cho trang", accepted[0]))
}

func checkSchemaRequiredFields(in *input, d checkDef) Check {
	s, ok := matchedSchema(in.page)
	if !ok {
		return d.scored(0, "không có schema phù hợp", "đủ trường bắt buộc của schema",
			"Thêm schema phù hợp trước khi kiểm tra trường bắt buộc")
	}
	required, known := requiredFieldsBySchema[canonicalSchemaName(s.Type)]
	if !known || len(required) == 0 {
		return d.pass(s.Type, "đủ trường bắt buộc của schema")
	}
	expected := fmt.Sprintf("schema %s có đủ: %s", s.Type, strings.Join(required, ", "))
	present := 0
	var missing []string
	for _, field := range required {
		if v, ok := s.Data[field]; ok && v != nil && v != "" {
			present++
		} else {
			missing = append(missing, field)
		}
	}
	current := fmt.Sprintf("%d/%d", present, len(required))
	if present == len(required) {
		return d.pass(current, expected)
	}
	return d.scored(float64(present)/float64(len(required)), current, expected,
		fmt.Sprintf("Bổ sung các trường còn thiếu trong schema %s: %s",
			s.Type, strings.Join(missing, ", ")))
}

// canonicalSchemaName maps a case-variant @type back to the spelling the
// required-fields table uses.
func canonicalSchemaName(t string) string {
	for name := range requiredFieldsBySchema {
		if strings.EqualFold(name, t) {
			return name
		}
	}
	return t
}

func checkSchemaBreadcrumb(in *input, d checkDef) Check {
	expected := "có schema BreadcrumbList"
	for _, s := range in.page.Schemas {
		if strings.EqualFold(s.Type, "BreadcrumbList") {
			return d.pass(s.Type, expected)
		}
	}
	return d.scored(0.5, "không có", expected,
		"Thêm schema BreadcrumbList để hiển thị đường dẫn trên kết quả tìm kiếm")
}
