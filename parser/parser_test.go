package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureHTML = `<!DOCTYPE html>
<html>
<head>
<title>Kinh nghiệm du lịch Đà Nẵng tự túc</title>
<meta name="description" content="Tổng hợp kinh nghiệm du lịch Đà Nẵng: bãi biển, món ngon và lịch trình chi tiết cho người đi lần đầu.">
<link rel="canonical" href="https://example.com/du-lich-da-nang">
<meta property="og:title" content="Kinh nghiệm du lịch Đà Nẵng">
<meta property="og:description" content="Cẩm nang du lịch Đà Nẵng">
<meta property="og:image" content="https://example.com/cover.jpg">
<meta name="twitter:card" content="summary_large_image">
<meta name="author" content="Minh Anh">
<meta property="article:published_time" content="2026-05-02T08:00:00+07:00">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","headline":"Kinh nghiệm du lịch Đà Nẵng","author":"Minh Anh"}</script>
<script type="application/ld+json">{"@type":"BreadcrumbList","itemListElement":[</script>
</head>
<body>
<nav><a href="/chuyen-muc">Chuyên mục</a> thanh điều hướng</nav>
<main>
<h1>Kinh nghiệm du lịch Đà Nẵng</h1>
<p>Đà Nẵng là điểm đến được yêu thích với bãi biển dài và ẩm thực phong phú.</p>
<h2>Bãi biển đẹp</h2>
<p>Bãi biển Mỹ Khê nằm gần trung tâm, nước trong và cát trắng mịn.</p>
<a href="/bai-bien-my-khe">Bãi biển Mỹ Khê</a>
<a href="https://www.example.com/cau-rong">Cầu Rồng</a>
<a href="https://maps.google.com/da-nang" target="_blank" rel="nofollow noopener">Bản đồ</a>
<a href="#top">Lên đầu trang</a>
<a href="mailto:lienhe@example.com">Liên hệ</a>
<img src="/images/my-khe.jpg" alt="Bãi biển Mỹ Khê">
<figure><img data-src="/images/cau-rong.jpg" class="lazyload"><figcaption>Cầu Rồng về đêm</figcaption></figure>
<ul><li>Mùa đẹp nhất: tháng 3 đến tháng 8</li><li>Di chuyển: xe máy hoặc taxi</li></ul>
<table><tr><td>Lịch trình</td></tr></table>
</main>
<footer>chân trang</footer>
</body>
</html>`

func TestExtractMetadata(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	assert.Equal(t, "Kinh nghiệm du lịch Đà Nẵng tự túc", page.Title)
	assert.Contains(t, page.MetaDescription, "kinh nghiệm du lịch")
	assert.Equal(t, "https://example.com/du-lich-da-nang", page.Canonical)
	assert.Equal(t, "Kinh nghiệm du lịch Đà Nẵng", page.OGTitle)
	assert.Equal(t, "https://example.com/cover.jpg", page.OGImage)
	assert.Equal(t, "summary_large_image", page.TwitterCard)
	assert.Equal(t, "Minh Anh", page.Author)
	assert.Equal(t, "2026-05-02T08:00:00+07:00", page.PublishDate)
}

func TestExtractHeadingsAndParagraphs(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	require.Len(t, page.H1, 1)
	assert.Equal(t, "Kinh nghiệm du lịch Đà Nẵng", page.H1[0])
	require.Len(t, page.H2, 1)
	require.Len(t, page.Paragraphs, 2)
	assert.Contains(t, page.Paragraphs[0], "Đà Nẵng")
}

func TestBodyTextExcludesBoilerplate(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	assert.NotContains(t, page.BodyText, "điều hướng")
	assert.NotContains(t, page.BodyText, "chân trang")
	assert.Contains(t, page.BodyText, "Mỹ Khê")
}

func TestWordCountMatchesBodyText(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	assert.Equal(t, len(strings.Fields(page.BodyText)), page.WordCount)
	assert.Greater(t, page.WordCount, 0)
}

func TestLinkPartition(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	// Only the fragment-only anchor is dropped; the remaining five split
	// into internal (including the nav link and the www variant) and
	// external (the maps link and the mailto anchor).
	require.Len(t, page.InternalLinks, 3)
	require.Len(t, page.ExternalLinks, 2)
	assert.Equal(t, "https://maps.google.com/da-nang", page.ExternalLinks[0].Href)
	assert.Equal(t, "_blank", page.ExternalLinks[0].Target)
	assert.Equal(t, "nofollow noopener", page.ExternalLinks[0].Rel)
	assert.Equal(t, "mailto:lienhe@example.com", page.ExternalLinks[1].Href)

	hrefs := make([]string, 0)
	for _, l := range page.InternalLinks {
		hrefs = append(hrefs, l.Href)
	}
	assert.Contains(t, hrefs, "https://example.com/bai-bien-my-khe")
	assert.Contains(t, hrefs, "https://www.example.com/cau-rong")
}

func TestLinkPartitionKeepsNonWebSchemes(t *testing.T) {
	html := `<html><body><main>
	<a href="/bai-viet">Bài viết</a>
	<a href="mailto:lienhe@example.com">Email</a>
	<a href="tel:+84905123456">Gọi</a>
	<a href="#top">Lên đầu trang</a>
	<a href="">Trống</a>
	</main></body></html>`

	page, err := Extract(html, "https://example.com/trang")
	require.NoError(t, err)

	// Every anchor with a destination is partitioned; mailto and tel
	// count as external so link checks see them.
	require.Len(t, page.InternalLinks, 1)
	require.Len(t, page.ExternalLinks, 2)
	assert.Equal(t, "https://example.com/bai-viet", page.InternalLinks[0].Href)
	assert.Equal(t, "mailto:lienhe@example.com", page.ExternalLinks[0].Href)
	assert.Equal(t, "tel:+84905123456", page.ExternalLinks[1].Href)
}

func TestLinkPositionsWithinBounds(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	for _, l := range append(page.InternalLinks, page.ExternalLinks...) {
		assert.GreaterOrEqual(t, l.Position, 0)
		assert.LessOrEqual(t, l.Position, page.WordCount)
	}
}

func TestExtractImages(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	require.Len(t, page.Images, 2)
	assert.Equal(t, "Bãi biển Mỹ Khê", page.Images[0].Alt)
	assert.False(t, page.Images[0].HasLazyLoading)
	assert.True(t, page.Images[1].HasLazyLoading)
	assert.Equal(t, "/images/cau-rong.jpg", page.Images[1].Src)
	assert.Equal(t, "Cầu Rồng về đêm", page.Images[1].Caption)
}

func TestExtractListsAndTables(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	require.Len(t, page.Lists, 1)
	assert.Equal(t, "ul", page.Lists[0].Type)
	assert.Len(t, page.Lists[0].Items, 2)
	assert.Equal(t, 1, page.Tables)
}

func TestMalformedSchemaSkipped(t *testing.T) {
	page, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	// The truncated BreadcrumbList block is skipped, the Article stays.
	require.Len(t, page.Schemas, 1)
	assert.Equal(t, "Article", page.Schemas[0].Type)
	assert.Equal(t, "Minh Anh", page.Schemas[0].Data["author"])
}

func TestExtractSchemaGraph(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
	{"@context":"https://schema.org","@graph":[
		{"@type":"Article","headline":"a"},
		{"@type":"BreadcrumbList"}
	]}</script></head><body></body></html>`

	page, err := Extract(html, "https://example.com/a")
	require.NoError(t, err)
	require.Len(t, page.Schemas, 2)
	assert.Equal(t, "Article", page.Schemas[0].Type)
	assert.Equal(t, "BreadcrumbList", page.Schemas[1].Type)
}

func TestExtractMalformedHTMLDegrades(t *testing.T) {
	page, err := Extract("<div><p>mảnh html không đóng thẻ", "https://example.com/x")
	require.NoError(t, err)

	assert.Equal(t, "", page.Title)
	assert.Empty(t, page.H1)
	assert.Empty(t, page.Images)
	assert.Equal(t, len(strings.Fields(page.BodyText)), page.WordCount)
}

func TestExtractDeterministic(t *testing.T) {
	first, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)
	second, err := Extract(fixtureHTML, "https://example.com/du-lich-da-nang")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSameSite(t *testing.T) {
	assert.True(t, sameSite("example.com", "www.example.com"))
	assert.True(t, sameSite("Example.COM", "blog.example.com"))
	assert.False(t, sameSite("example.com", "other.com"))
}
