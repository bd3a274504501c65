// Package section defines the closed set of page section variants and the
// registry used to decode and validate their payloads.
package section

// Component tags accepted on a page.
const (
	TagHero         = "hero"
	TagFeatures     = "features"
	TagTestimonials = "testimonials"
	TagContact      = "contact"
	TagGallery      = "gallery"
	TagFAQ          = "faq"
	TagPricing      = "pricing"
)

// Section is a typed page section. Implementations live in this package only,
// and every variant dispatches to its own Visitor method, so adding a variant
// fails to compile until every Visitor handles it.
type Section interface {
	Tag() string
	Accept(v Visitor) error
	sealed()
}

// Visitor handles each section variant.
type Visitor interface {
	VisitHero(Hero) error
	VisitFeatures(Features) error
	VisitTestimonials(Testimonials) error
	VisitContact(Contact) error
	VisitGallery(Gallery) error
	VisitFAQ(FAQ) error
	VisitPricing(Pricing) error
	VisitUnknown(Unknown) error
}

// Link is a call-to-action button.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Hero is the large banner at the top of a page.
type Hero struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Image      string `json:"image"`
	Background string `json:"background"`
	CTA        *Link  `json:"cta"`
}

// FeatureItem is one card in a features grid.
type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Features is a grid of feature cards.
type Features struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Columns  int           `json:"columns"`
	Items    []FeatureItem `json:"items"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Avatar  string `json:"avatar"`
}

// Testimonials is a list of customer quotes.
type Testimonials struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

// Contact shows contact details and optionally the contact form.
type Contact struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	ShowForm *bool  `json:"showForm"`
}

// GalleryImage is one gallery tile.
type GalleryImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// Gallery is an image grid.
type Gallery struct {
	Title  string         `json:"title"`
	Images []GalleryImage `json:"images"`
}

// FAQEntry is a question and its markdown answer.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQ is an accordion of questions.
type FAQ struct {
	Title string     `json:"title"`
	Items []FAQEntry `json:"items"`
}

// Plan is a pricing tier.
type Plan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Features    []string `json:"features"`
	Highlighted bool     `json:"highlighted"`
	CTA         *Link    `json:"cta"`
}

// Pricing is a row of pricing tiers.
type Pricing struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Plans    []Plan `json:"plans"`
}

// Unknown stands in for a stored section whose tag or payload could not be
// decoded. It is never accepted on write.
type Unknown struct {
	Component string
	Reason    string
}

func (Hero) Tag() string         { return TagHero }
func (Features) Tag() string     { return TagFeatures }
func (Testimonials) Tag() string { return TagTestimonials }
func (Contact) Tag() string      { return TagContact }
func (Gallery) Tag() string      { return TagGallery }
func (FAQ) Tag() string          { return TagFAQ }
func (Pricing) Tag() string      { return TagPricing }
func (u Unknown) Tag() string    { return u.Component }

func (s Hero) Accept(v Visitor) error         { return v.VisitHero(s) }
func (s Features) Accept(v Visitor) error     { return v.VisitFeatures(s) }
func (s Testimonials) Accept(v Visitor) error { return v.VisitTestimonials(s) }
func (s Contact) Accept(v Visitor) error      { return v.VisitContact(s) }
func (s Gallery) Accept(v Visitor) error      { return v.VisitGallery(s) }
func (s FAQ) Accept(v Visitor) error          { return v.VisitFAQ(s) }
func (s Pricing) Accept(v Visitor) error      { return v.VisitPricing(s) }
func (s Unknown) Accept(v Visitor) error      { return v.VisitUnknown(s) }

func (Hero) sealed()         {}
func (Features) sealed()     {}
func (Testimonials) sealed() {}
func (Contact) sealed()      {}
func (Gallery) sealed()      {}
func (FAQ) sealed()          {}
func (Pricing) sealed()      {}
func (Unknown) sealed()      {}
