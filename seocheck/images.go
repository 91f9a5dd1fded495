package seocheck

import (
	"fmt"
	"strings"
)

var imageChecks = []checkDef{
	{"image-count", "Số lượng hình ảnh", 10, checkImageCount},
	{"image-alt-coverage", "Thẻ alt cho hình ảnh", 10, checkAltCoverage},
	{"image-alt-keyword", "Từ khóa trong thẻ alt", 5, checkAltKeyword},
	{"image-lazy-loading", "Lazy loading hình ảnh", 5, checkLazyLoading},
}

// requiredImages scales the image floor with article length: one image
// per started 400 words, at least one.
func requiredImages(wordCount int) int {
	n := (wordCount + 399) / 400
	if n < 1 {
		n = 1
	}
	return n
}

func checkImageCount(in *input, d checkDef) Check {
	required := requiredImages(in.page.WordCount)
	count := len(in.page.Images)
	expected := fmt.Sprintf("tối thiểu %d hình cho %d từ", required, in.page.WordCount)
	if count >= required {
		return d.pass(count, expected)
	}
	return d.scored(float64(count)/float64(required), count, expected,
		fmt.Sprintf("Thêm %d hình ảnh minh họa cho bài viết", required-count))
}

func checkAltCoverage(in *input, d checkDef) Check {
	expected := "mọi hình ảnh đều có thẻ alt"
	total := len(in.page.Images)
	if total == 0 {
		return d.scored(0, "không có hình ảnh", expected,
			"Thêm hình ảnh có thẻ alt mô tả nội dung")
	}
	withAlt := 0
	for _, img := range in.page.Images {
		if img.Alt != "" {
			withAlt++
		}
	}
	current := fmt.Sprintf("%d/%d", withAlt, total)
	if withAlt == total {
		return d.pass(current, expected)
	}
	return d.scored(float64(withAlt)/float64(total), current, expected,
		fmt.Sprintf("Viết thẻ alt cho %d hình ảnh còn thiếu", total-withAlt))
}

func checkAltKeyword(in *input, d checkDef) Check {
	if !in.hasKeywords() {
		return d.neutral("Chưa có từ khóa mục tiêu để kiểm tra")
	}
	expected := fmt.Sprintf("ít nhất một thẻ alt chứa từ khóa \"%s\"", in.primary)
	if len(in.page.Images) == 0 {
		return d.scored(0, "không có hình ảnh", expected,
			fmt.Sprintf("Thêm hình ảnh với thẻ alt chứa từ khóa \"%s\"", in.primary))
	}
	for _, img := range in.page.Images {
		if strings.Contains(strings.ToLower(img.Alt), in.primary) {
			return d.pass(img.Alt, expected)
		}
	}
	return d.scored(0, "không tìm thấy", expected,
		fmt.Sprintf("Đưa từ khóa \"%s\" vào thẻ alt của một hình ảnh chính", in.primary))
}

// lazyCoverageTarget is the share of below-the-fold images (everything
// after the first) expected to lazy-load.
const lazyCoverageTarget = 0.8

func checkLazyLoading(in *input, d checkDef) Check {
	expected := fmt.Sprintf("tối thiểu %.0f%% hình sau hình đầu tiên dùng lazy loading", lazyCoverageTarget*100)
	if len(in.page.Images) <= 1 {
		return d.pass("không áp dụng", expected)
	}
	rest := in.page.Images[1:]
	lazy := 0
	for _, img := range rest {
		if img.HasLazyLoading {
			lazy++
		}
	}
	frac := float64(lazy) / float64(len(rest))
	current := fmt.Sprintf("%d/%d", lazy, len(rest))
	return d.scored(frac/lazyCoverageTarget, current, expected,
		fmt.Sprintf("Bật loading=\"lazy\" cho %d hình ảnh còn lại", len(rest)-lazy))
}
