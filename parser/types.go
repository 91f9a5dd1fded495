package parser

// ArticleType is the heuristically detected content category of a page.
// It drives which thresholds the rule engine applies.
type ArticleType string

const (
	TypeDestination ArticleType = "destination"
	TypeFood        ArticleType = "food"
	TypeGuide       ArticleType = "guide"
	TypeReview      ArticleType = "review"
	TypeNews        ArticleType = "news"
	TypeProduct     ArticleType = "product"
	TypeFAQ         ArticleType = "faq"
	TypeVideo       ArticleType = "video"
	TypeArticle     ArticleType = "article"
)

// PageData is an immutable snapshot of one fetched page. All fields are
// filled best-effort: missing or malformed markup degrades to zero values,
// never to an extraction failure.
type PageData struct {
	URL  string `json:"url"`
	HTML string `json:"-"`

	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`

	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
	H4 []string `json:"h4"`
	H5 []string `json:"h5"`
	H6 []string `json:"h6"`

	Paragraphs []string `json:"paragraphs"`
	BodyText   string   `json:"bodyText"`
	WordCount  int      `json:"wordCount"`

	Images        []ImageData `json:"images"`
	InternalLinks []LinkData  `json:"internalLinks"`
	ExternalLinks []LinkData  `json:"externalLinks"`
	Lists         []ListData  `json:"lists"`
	Tables        int         `json:"tables"`

	Canonical          string `json:"canonical"`
	OGTitle            string `json:"ogTitle"`
	OGDescription      string `json:"ogDescription"`
	OGImage            string `json:"ogImage"`
	TwitterCard        string `json:"twitterCard"`
	TwitterTitle       string `json:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription"`
	Author             string `json:"author"`
	AuthorLink         string `json:"authorLink"`
	PublishDate        string `json:"publishDate"`
	ModifiedDate       string `json:"modifiedDate"`

	Schemas []SchemaData `json:"schemas"`

	ArticleType ArticleType `json:"articleType"`
}

// LinkData describes one anchor found in the page body. Position is the
// 0-based word offset into BodyText where the link occurs, used for
// density and placement checks.
type LinkData struct {
	Href     string `json:"href"`
	Text     string `json:"text"`
	Target   string `json:"target"`
	Rel      string `json:"rel"`
	Position int    `json:"position"`
}

// ImageData describes one <img> element.
type ImageData struct {
	Src            string `json:"src"`
	Alt            string `json:"alt"`
	Caption        string `json:"caption"`
	HasLazyLoading bool   `json:"hasLazyLoading"`
}

// ListData describes one <ul> or <ol> with its item texts.
type ListData struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

// SchemaData is one decoded structured-data block. Type carries the @type
// value; Data is the full decoded object, not validated against any
// vocabulary.
type SchemaData struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// Heading returns the heading texts for the given level (1..6).
func (p *PageData) Heading(level int) []string {
	switch level {
	case 1:
		return p.H1
	case 2:
		return p.H2
	case 3:
		return p.H3
	case 4:
		return p.H4
	case 5:
		return p.H5
	case 6:
		return p.H6
	}
	return nil
}

// FirstParagraph returns the first non-empty paragraph, or "".
func (p *PageData) FirstParagraph() string {
	if len(p.Paragraphs) == 0 {
		return ""
	}
	return p.Paragraphs[0]
}
