package parser

import "strings"

// typeRule pairs a predicate with the type it detects. Rules are
// evaluated top to bottom and the first match wins; ties never resolve
// to "most matches".
type typeRule struct {
	articleType ArticleType
	match       func(c *classifyInput) bool
}

type classifyInput struct {
	page       *PageData
	titleLower string
	h1Lower    string
	bodyLower  string
	htmlLower  string
}

func (c *classifyInput) hasSchema(types ...string) bool {
	for _, s := range c.page.Schemas {
		for _, t := range types {
			if strings.EqualFold(s.Type, t) {
				return true
			}
		}
	}
	return false
}

func (c *classifyInput) headingOrTitleContains(markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(c.titleLower, m) || strings.Contains(c.h1Lower, m) {
			return true
		}
	}
	return false
}

func (c *classifyInput) bodyContains(markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(c.bodyLower, m) {
			return true
		}
	}
	return false
}

// Rule order is part of the contract: schema hints are checked before
// keyword hints inside each rule, and earlier rules shadow later ones.
var typeRules = []typeRule{
	{TypeFAQ, func(c *classifyInput) bool {
		if c.hasSchema("FAQPage") {
			return true
		}
		return c.headingOrTitleContains("câu hỏi thường gặp", "faq", "hỏi đáp") ||
			questionHeadingCount(c.page) >= 3
	}},
	{TypeVideo, func(c *classifyInput) bool {
		if c.hasSchema("VideoObject") {
			return true
		}
		return strings.Contains(c.htmlLower, "youtube.com/embed") ||
			strings.Contains(c.htmlLower, "player.vimeo.com")
	}},
	{TypeProduct, func(c *classifyInput) bool {
		if c.hasSchema("Product") {
			return true
		}
		return c.bodyContains("giá bán", "thêm vào giỏ", "mua ngay") &&
			c.bodyContains("₫", "vnđ", " đồng")
	}},
	{TypeReview, func(c *classifyInput) bool {
		if c.hasSchema("Review", "AggregateRating") {
			return true
		}
		return c.headingOrTitleContains("review", "đánh giá", "có tốt không", "trên tay")
	}},
	{TypeFood, func(c *classifyInput) bool {
		if c.hasSchema("Recipe", "Restaurant") {
			return true
		}
		return c.headingOrTitleContains("món ngon", "quán ăn", "ẩm thực", "công thức", "đặc sản")
	}},
	{TypeDestination, func(c *classifyInput) bool {
		if c.hasSchema("TouristDestination", "TouristAttraction", "Place") {
			return true
		}
		return c.headingOrTitleContains("du lịch", "điểm đến", "tham quan", "bãi biển", "địa điểm")
	}},
	{TypeGuide, func(c *classifyInput) bool {
		if c.hasSchema("HowTo") {
			return true
		}
		return c.headingOrTitleContains("hướng dẫn", "cách ", "các bước", "cẩm nang", "how to")
	}},
	{TypeNews, func(c *classifyInput) bool {
		if c.hasSchema("NewsArticle") {
			return true
		}
		return c.headingOrTitleContains("tin tức", "mới nhất", "cập nhật")
	}},
}

func questionHeadingCount(page *PageData) int {
	count := 0
	for level := 2; level <= 4; level++ {
		for _, h := range page.Heading(level) {
			if strings.Contains(h, "?") {
				count++
			}
		}
	}
	return count
}

func classify(page *PageData) ArticleType {
	in := &classifyInput{
		page:       page,
		titleLower: strings.ToLower(page.Title),
		bodyLower:  strings.ToLower(page.BodyText),
		htmlLower:  strings.ToLower(page.HTML),
	}
	if len(page.H1) > 0 {
		in.h1Lower = strings.ToLower(strings.Join(page.H1, " "))
	}
	for _, rule := range typeRules {
		if rule.match(in) {
			return rule.articleType
		}
	}
	return TypeArticle
}
