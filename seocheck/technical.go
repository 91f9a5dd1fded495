package seocheck

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	titleMinLen = 30
	titleMaxLen = 65
	metaMinLen  = 120
	metaMaxLen  = 160

	internalLinkFloor = 3
)

var technicalChecks = []checkDef{
	{"title-length", "Độ dài tiêu đề", 10, checkTitleLength},
	{"meta-description-length", "Độ dài meta description", 10, checkMetaLength},
	{"meta-description-keyword", "Từ khóa trong meta description", 5, checkMetaKeyword},
	{"canonical", "Thẻ canonical", 10, checkCanonical},
	{"open-graph", "Thẻ Open Graph", 5, checkOpenGraph},
	{"twitter-card", "Thẻ Twitter Card", 5, checkTwitterCard},
	{"internal-links", "Liên kết nội bộ", 10, checkInternalLinks},
	{"external-link-hygiene", "Liên kết ngoài", 5, checkExternalLinks},
	{"article-metadata", "Thông tin tác giả & ngày đăng", 5, checkArticleMetadata},
}

func checkTitleLength(in *input, d checkDef) Check {
	length := utf8.RuneCountInString(in.page.Title)
	expected := fmt.Sprintf("%d–%d ký tự", titleMinLen, titleMaxLen)
	if length == 0 {
		return d.scored(0, 0, expected, "Thêm thẻ <title> cho trang")
	}
	ratio := bandRatio(float64(length), titleMinLen, titleMaxLen)
	suggestion := fmt.Sprintf("Kéo dài tiêu đề lên ít nhất %d ký tự (hiện %d)", titleMinLen, length)
	if length > titleMaxLen {
		suggestion = fmt.Sprintf("Rút gọn tiêu đề xuống dưới %d ký tự (hiện %d)", titleMaxLen, length)
	}
	return d.scored(ratio, length, expected, suggestion)
}

func checkMetaLength(in *input, d checkDef) Check {
	length := utf8.RuneCountInString(in.page.MetaDescription)
	expected := fmt.Sprintf("%d–%d ký tự", metaMinLen, metaMaxLen)
	if length == 0 {
		return d.scored(0, 0, expected, "Thêm thẻ meta description cho trang")
	}
	ratio := bandRatio(float64(length), metaMinLen, metaMaxLen)
	suggestion := fmt.Sprintf("Viết meta description dài ít nhất %d ký tự (hiện %d)", metaMinLen, length)
	if length > metaMaxLen {
		suggestion = fmt.Sprintf("Rút gọn meta description xuống dưới %d ký tự (hiện %d)", metaMaxLen, length)
	}
	return d.scored(ratio, length, expected, suggestion)
}

func checkMetaKeyword(in *input, d checkDef) Check {
	if !in.hasKeywords() {
		return d.neutral("Chưa có từ khóa mục tiêu để kiểm tra")
	}
	expected := fmt.Sprintf("meta description chứa từ khóa \"%s\"", in.primary)
	if strings.Contains(in.metaLower, in.primary) {
		return d.pass(in.page.MetaDescription, expected)
	}
	return d.scored(0, in.page.MetaDescription, expected,
		fmt.Sprintf("Đưa từ khóa \"%s\" vào meta description", in.primary))
}

func checkCanonical(in *input, d checkDef) Check {
	expected := "canonical trỏ về chính URL của trang"
	if in.page.Canonical == "" {
		return d.scored(0, "không có", expected, "Thêm thẻ <link rel=\"canonical\">")
	}
	if canonicalMatches(in.page.URL, in.page.Canonical) {
		return d.pass(in.page.Canonical, expected)
	}
	return d.scored(0.3, in.page.Canonical, expected,
		fmt.Sprintf("Canonical đang trỏ tới %s, kiểm tra lại URL chuẩn của trang", in.page.Canonical))
}

// canonicalMatches compares the page URL and the canonical target while
// ignoring query string, fragment, trailing slash and a www prefix.
// Scheme, host and path must all agree.
func canonicalMatches(pageURL, canonical string) bool {
	pu, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	cu, err := pu.Parse(canonical)
	if err != nil {
		return false
	}
	normalize := func(u *url.URL) string {
		host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
		path := strings.TrimSuffix(u.Path, "/")
		return strings.ToLower(u.Scheme) + "://" + host + path
	}
	return normalize(pu) == normalize(cu)
}

func checkOpenGraph(in *input, d checkDef) Check {
	expected := "đủ og:title, og:description, og:image"
	tags := []struct {
		name  string
		value string
	}{
		{"og:title", in.page.OGTitle},
		{"og:description", in.page.OGDescription},
		{"og:image", in.page.OGImage},
	}
	present := 0
	var missing []string
	for _, tag := range tags {
		if tag.value != "" {
			present++
		} else {
			missing = append(missing, tag.name)
		}
	}
	current := fmt.Sprintf("%d/%d", present, len(tags))
	if present == len(tags) {
		return d.pass(current, expected)
	}
	return d.scored(float64(present)/float64(len(tags)), current, expected,
		fmt.Sprintf("Bổ sung các thẻ còn thiếu: %s", strings.Join(missing, ", ")))
}

func checkTwitterCard(in *input, d checkDef) Check {
	expected := "đủ twitter:card, twitter:title, twitter:description"
	tags := []struct {
		name  string
		value string
	}{
		{"twitter:card", in.page.TwitterCard},
		{"twitter:title", in.page.TwitterTitle},
		{"twitter:description", in.page.TwitterDescription},
	}
	present := 0
	var missing []string
	for _, tag := range tags {
		if tag.value != "" {
			present++
		} else {
			missing = append(missing, tag.name)
		}
	}
	current := fmt.Sprintf("%d/%d", present, len(tags))
	if present == len(tags) {
		return d.pass(current, expected)
	}
	return d.scored(float64(present)/float64(len(tags)), current, expected,
		fmt.Sprintf("Bổ sung các thẻ còn thiếu: %s", strings.Join(missing, ", ")))
}

func checkInternalLinks(in *input, d checkDef) Check {
	count := len(in.page.InternalLinks)
	expected := fmt.Sprintf("tối thiểu %d liên kết nội bộ", internalLinkFloor)
	if count >= internalLinkFloor {
		return d.pass(count, expected)
	}
	return d.scored(float64(count)/float64(internalLinkFloor), count, expected,
		fmt.Sprintf("Thêm %d liên kết nội bộ tới các bài liên quan", internalLinkFloor-count))
}

func checkExternalLinks(in *input, d checkDef) Check {
	expected := "liên kết ngoài có rel=\"nofollow\" và target=\"_blank\""
	total := len(in.page.ExternalLinks)
	if total == 0 {
		return d.scored(0.5, 0, expected,
			"Thêm liên kết tới nguồn tham khảo uy tín bên ngoài")
	}
	clean := 0
	for _, link := range in.page.ExternalLinks {
		if strings.EqualFold(link.Target, "_blank") && hasRelToken(link.Rel, "nofollow") {
			clean++
		}
	}
	current := fmt.Sprintf("%d/%d", clean, total)
	if clean == total {
		return d.pass(current, expected)
	}
	return d.scored(float64(clean)/float64(total), current, expected,
		fmt.Sprintf("Đặt rel=\"nofollow\" và target=\"_blank\" cho %d liên kết ngoài còn lại", total-clean))
}

// hasRelToken reports whether the space-separated rel attribute carries
// the given token.
func hasRelToken(rel, token string) bool {
	for _, t := range strings.Fields(rel) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

func checkArticleMetadata(in *input, d checkDef) Check {
	expected := "có tác giả, ngày đăng và ngày cập nhật"
	fields := []struct {
		name  string
		value string
	}{
		{"tác giả", in.page.Author},
		{"ngày đăng", in.page.PublishDate},
		{"ngày cập nhật", in.page.ModifiedDate},
	}
	present := 0
	var missing []string
	for _, f := range fields {
		if f.value != "" {
			present++
		} else {
			missing = append(missing, f.name)
		}
	}
	current := fmt.Sprintf("%d/%d", present, len(fields))
	if present == len(fields) {
		return d.pass(current, expected)
	}
	return d.scored(float64(present)/float64(len(fields)), current, expected,
		fmt.Sprintf("Bổ sung thông tin còn thiếu: %s", strings.Join(missing, ", ")))
}
