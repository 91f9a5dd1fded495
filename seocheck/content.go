package seocheck

import (
	"fmt"
	"strings"

	"github.com/contentops/seo-audit/parser"
)

// Minimum word counts by article type (pass ceiling). The fail floor is
// half the ceiling.
var minWordsByType = map[parser.ArticleType]int{
	parser.TypeFAQ:         600,
	parser.TypeNews:        600,
	parser.TypeVideo:       500,
	parser.TypeProduct:     700,
	parser.TypeReview:      900,
	parser.TypeFood:        900,
	parser.TypeDestination: 1200,
	parser.TypeGuide:       1500,
	parser.TypeArticle:     800,
}

const longParagraphWords = 120

var contentChecks = []checkDef{
	{"word-count", "Số từ trong bài", 15, checkWordCount},
	{"keyword-in-title", "Từ khóa trong tiêu đề", 10, checkKeywordInTitle},
	{"keyword-in-h1", "Từ khóa trong H1", 10, checkKeywordInH1},
	{"keyword-in-first-paragraph", "Từ khóa trong đoạn mở đầu", 5, checkKeywordInFirstParagraph},
	{"keyword-density", "Mật độ từ khóa", 10, checkKeywordDensity},
	{"secondary-keywords", "Từ khóa phụ", 5, checkSecondaryKeywords},
	{"heading-hierarchy", "Cấu trúc heading", 10, checkHeadingHierarchy},
	{"paragraph-length", "Độ dài đoạn văn", 5, checkParagraphLength},
	{"brand-mention", "Nhắc đến thương hiệu", 5, checkBrandMention},
}

func minWords(t parser.ArticleType) int {
	if n, ok := minWordsByType[t]; ok {
		return n
	}
	return minWordsByType[parser.TypeArticle]
}

func checkWordCount(in *input, d checkDef) Check {
	ceiling := minWords(in.page.ArticleType)
	floor := ceiling / 2
	wc := in.page.WordCount
	expected := fmt.Sprintf("tối thiểu %d từ cho bài dạng %s", ceiling, in.page.ArticleType)
	if wc >= ceiling {
		return d.pass(wc, expected)
	}
	return d.scored(
		linearScore(float64(wc), float64(floor), float64(ceiling)),
		wc, expected,
		fmt.Sprintf("Bài viết mới có %d từ, thêm khoảng %d từ nữa", wc, ceiling-wc),
	)
}

func checkKeywordInTitle(in *input, d checkDef) Check {
	if !in.hasKeywords() {
		return d.neutral("Chưa có từ khóa mục tiêu để kiểm tra")
	}
	expected := fmt.Sprintf("tiêu đề chứa từ khóa \"%s\"", in.primary)
	if strings.Contains(in.titleLower, in.primary) {
		return d.pass(in.page.Title, expected)
	}
	return d.scored(0, in.page.Title, expected,
		fmt.Sprintf("Thêm từ khóa \"%s\" vào thẻ tiêu đề", in.primary))
}

func checkKeywordInH1(in *input, d checkDef) Check {
	if !in.hasKeywords() {
		return d.neutral("Chưa có từ khóa mục tiêu để kiểm tra")
	}
	current := strings.Join(in.page.H1, " | ")
	expected := fmt.Sprintf("H1 chứa từ khóa \"%s\"", in.primary)
	if strings.Contains(in.h1Lower, in.primary) {
		return d.pass(current, expected)
	}
	if len(in.page.H1) == 0 {
		return d.scored(0, current, expected, "Bài viết chưa có thẻ H1, thêm H1 chứa từ khóa chính")
	}
	return d.scored(0, current, expected,
		fmt.Sprintf("Đưa từ khóa \"%s\" vào thẻ H1", in.primary))
}

func checkKeywordInFirstParagraph(in *input, d checkDef) Check {
	if !in.hasKeywords() {
		return d.neutral("Chưa có từ khóa mục tiêu để kiểm tra")
	}
	expected := fmt.Sprintf("đoạn mở đầu chứa từ khóa \"%s\"", in.primary)
	if strings.Contains(in.firstParaLower, in.primary) {
		return d.pass(in.page.FirstParagraph(), expected)
	}
	// Partial credit when the keyword shows up within the first three
	// paragraphs instead of the very first one.
	for i, para := range in.page.Paragraphs {
		if i >= 3 {
			break
		}
		if strings.Contains(strings.ToLower(para), in.primary) {
			return d.scored(0.5, in.page.FirstParagraph(), expected,
				fmt.Sprintf("Đưa từ khóa \"%s\" lên đoạn văn đầu tiên", in.primary))
		}
	}
	return d.scored(0, in.page.FirstParagraph(), expected,
		fmt.Sprintf("Nhắc đến từ khóa \"%s\" ngay trong đoạn mở đầu", in.primary))
}

const (
	densityFloor   = 0.5
	densityCeiling = 2.5
)

func checkKeywordDensity(in *input, d checkDef) Check {
	if !in.hasKeywords() {
		return d.neutral("Chưa có từ khóa mục tiêu để kiểm tra")
	}
	expected := fmt.Sprintf("mật độ từ khóa %.1f%%–%.1f%%", densityFloor, densityCeiling)
	if in.page.WordCount == 0 {
		return d.scored(0, "0%", expected, "Bài viết chưa có nội dung để tính mật độ từ khóa")
	}
	occurrences := strings.Count(in.bodyLower, in.primary)
	keywordWords := len(strings.Fields(in.primary))
	density := float64(occurrences*keywordWords) / float64(in.page.WordCount) * 100
	current := fmt.Sprintf("%.2f%%", density)

	ratio := bandRatio(density, densityFloor, densityCeiling)
	suggestion := fmt.Sprintf("Tăng tần suất từ khóa \"%s\" trong bài (hiện %s)", in.primary, current)
	if density > densityCeiling {
		suggestion = fmt.Sprintf("Giảm tần suất từ khóa \"%s\" để tránh nhồi nhét (hiện %s)", in.primary, current)
	}
	return d.scored(ratio, current, expected, suggestion)
}

func checkSecondaryKeywords(in *input, d checkDef) Check {
	if !in.hasKeywords() {
		return d.neutral("Chưa có từ khóa mục tiêu để kiểm tra")
	}
	expected := "mỗi từ khóa phụ xuất hiện trong bài"
	if len(in.secondary) == 0 {
		return d.pass("không có từ khóa phụ", expected)
	}
	found := 0
	var missing []string
	for _, kw := range in.secondary {
		if strings.Contains(in.bodyLower, kw) {
			found++
		} else {
			missing = append(missing, kw)
		}
	}
	current := fmt.Sprintf("%d/%d", found, len(in.secondary))
	return d.scored(float64(found)/float64(len(in.secondary)), current, expected,
		fmt.Sprintf("Bổ sung các từ khóa phụ còn thiếu: %s", strings.Join(missing, ", ")))
}

func checkHeadingHierarchy(in *input, d checkDef) Check {
	expected := "đúng một H1, không nhảy cấp heading"
	h1Count := len(in.page.H1)
	if h1Count == 0 {
		return d.scored(0, "không có H1", expected, "Thêm một thẻ H1 duy nhất cho bài viết")
	}
	if h1Count > 1 {
		return d.scored(0.5, fmt.Sprintf("%d thẻ H1", h1Count), expected,
			"Chỉ giữ lại một thẻ H1, chuyển các H1 còn lại thành H2")
	}
	for level := 3; level <= 6; level++ {
		if len(in.page.Heading(level)) > 0 && len(in.page.Heading(level-1)) == 0 {
			return d.scored(0.5,
				fmt.Sprintf("có H%d nhưng thiếu H%d", level, level-1), expected,
				fmt.Sprintf("Bổ sung heading cấp H%d trước khi dùng H%d", level-1, level))
		}
	}
	return d.pass("1 thẻ H1, cấu trúc hợp lệ", expected)
}

func checkParagraphLength(in *input, d checkDef) Check {
	expected := fmt.Sprintf("đoạn văn không quá %d từ", longParagraphWords)
	total := len(in.page.Paragraphs)
	if total == 0 {
		return d.scored(0, "không có đoạn văn", expected,
			"Chia nội dung thành các đoạn văn ngắn bằng thẻ <p>")
	}
	long := 0
	for _, para := range in.page.Paragraphs {
		if len(strings.Fields(para)) > longParagraphWords {
			long++
		}
	}
	frac := float64(total-long) / float64(total)
	current := fmt.Sprintf("%d/%d đoạn quá dài", long, total)
	if long == 0 {
		return d.pass(current, expected)
	}
	return d.scored(linearScore(frac, 0.5, 0.9), current, expected,
		fmt.Sprintf("Tách %d đoạn văn dài thành các đoạn dưới %d từ", long, longParagraphWords))
}

func checkBrandMention(in *input, d checkDef) Check {
	expected := "thương hiệu xuất hiện trong bài"
	if in.brand == "" {
		return d.pass("không áp dụng", expected)
	}
	brandLower := strings.ToLower(in.brand)
	if strings.Contains(in.titleLower, brandLower) || strings.Contains(in.bodyLower, brandLower) {
		return d.pass(in.brand, expected)
	}
	return d.scored(0, "không tìm thấy", expected,
		fmt.Sprintf("Nhắc đến thương hiệu \"%s\" trong tiêu đề hoặc nội dung", in.brand))
}
