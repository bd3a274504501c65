package render

import (
	"bytes"

	"github.com/agencysite/internal/section"
)

const (
	placeholderImage  = StaticURLPath + "/placeholder.svg"
	placeholderAvatar = StaticURLPath + "/avatar-placeholder.svg"

	defaultFeatureColumns = 3
	maxFeatureColumns     = 4
)

// Fallback content used when a list payload is empty. The counts match the
// skeleton layouts the site styles for.
var (
	placeholderFeatures = []section.FeatureItem{
		{Title: "Feature", Description: "Details coming soon."},
		{Title: "Feature", Description: "Details coming soon."},
		{Title: "Feature", Description: "Details coming soon."},
	}
	placeholderTestimonials = []section.Testimonial{
		{Quote: "Testimonial coming soon.", Author: "Happy client"},
		{Quote: "Testimonial coming soon.", Author: "Happy client"},
		{Quote: "Testimonial coming soon.", Author: "Happy client"},
	}
	placeholderFAQ = []section.FAQEntry{
		{Question: "Question coming soon", Answer: "An answer will be added shortly."},
		{Question: "Question coming soon", Answer: "An answer will be added shortly."},
		{Question: "Question coming soon", Answer: "An answer will be added shortly."},
	}
	placeholderPlans = []section.Plan{
		{Name: "Starter", Price: "On request"},
		{Name: "Growth", Price: "On request", Highlighted: true},
		{Name: "Enterprise", Price: "On request"},
	}
)

const placeholderGalleryCount = 6

// sectionWriter implements section.Visitor by executing the matching
// template into buf after applying defaults.
type sectionWriter struct {
	r   *Renderer
	buf bytes.Buffer
}

type featuresView struct {
	section.Features
	Placeholder bool
}

type testimonialsView struct {
	section.Testimonials
	Placeholder bool
}

type contactView struct {
	section.Contact
	ShowContactForm bool
}

type galleryView struct {
	section.Gallery
	Placeholder bool
}

type faqView struct {
	section.FAQ
	Placeholder bool
}

type pricingView struct {
	section.Pricing
	Placeholder bool
}

func (w *sectionWriter) VisitHero(s section.Hero) error {
	if s.Title == "" {
		s.Title = "Welcome"
	}
	if s.Image == "" {
		s.Image = placeholderImage
	}
	if s.CTA != nil && (s.CTA.Label == "" || s.CTA.URL == "") {
		s.CTA = nil
	}
	return w.r.execute(&w.buf, "section-hero", s)
}

func (w *sectionWriter) VisitFeatures(s section.Features) error {
	view := featuresView{Features: s}
	if len(s.Items) == 0 {
		view.Items = placeholderFeatures
		view.Placeholder = true
	}
	if view.Columns <= 0 {
		view.Columns = defaultFeatureColumns
	}
	view.Columns = min(view.Columns, maxFeatureColumns)
	return w.r.execute(&w.buf, "section-features", view)
}

func (w *sectionWriter) VisitTestimonials(s section.Testimonials) error {
	view := testimonialsView{Testimonials: s}
	if len(s.Items) == 0 {
		view.Items = placeholderTestimonials
		view.Placeholder = true
	}
	items := make([]section.Testimonial, len(view.Items))
	copy(items, view.Items)
	for i := range items {
		if items[i].Avatar == "" {
			items[i].Avatar = placeholderAvatar
		}
	}
	view.Items = items
	return w.r.execute(&w.buf, "section-testimonials", view)
}

func (w *sectionWriter) VisitContact(s section.Contact) error {
	view := contactView{Contact: s, ShowContactForm: true}
	if s.ShowForm != nil {
		view.ShowContactForm = *s.ShowForm
	}
	if view.Title == "" {
		view.Title = "Get in touch"
	}
	return w.r.execute(&w.buf, "section-contact", view)
}

func (w *sectionWriter) VisitGallery(s section.Gallery) error {
	view := galleryView{Gallery: s}
	if len(s.Images) == 0 {
		view.Images = make([]section.GalleryImage, placeholderGalleryCount)
		view.Placeholder = true
	} else {
		view.Images = make([]section.GalleryImage, len(s.Images))
		copy(view.Images, s.Images)
	}
	for i := range view.Images {
		if view.Images[i].URL == "" {
			view.Images[i].URL = placeholderImage
		}
	}
	return w.r.execute(&w.buf, "section-gallery", view)
}

func (w *sectionWriter) VisitFAQ(s section.FAQ) error {
	view := faqView{FAQ: s}
	if len(s.Items) == 0 {
		view.Items = placeholderFAQ
		view.Placeholder = true
	}
	return w.r.execute(&w.buf, "section-faq", view)
}

func (w *sectionWriter) VisitPricing(s section.Pricing) error {
	view := pricingView{Pricing: s}
	if len(s.Plans) == 0 {
		view.Plans = placeholderPlans
		view.Placeholder = true
	}
	return w.r.execute(&w.buf, "section-pricing", view)
}

func (w *sectionWriter) VisitUnknown(s section.Unknown) error {
	return w.r.execute(&w.buf, "section-missing", s)
}
