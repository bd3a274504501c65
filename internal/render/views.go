package render

import (
	"html/template"

	"github.com/agencysite/internal/db"
)

// DetailBlock is a headed grid of titled items on a detail page.
type DetailBlock struct {
	Heading string
	Items   []db.TitledItem
}

// DetailView is the body of service, industry, technology and digital
// service pages.
type DetailView struct {
	Kind       string
	Title      string
	Subtitle   string
	Image      string
	Intro      []string
	Conclusion string
	Blocks     []DetailBlock
	TechStack  []db.TechStackGroup
	FAQ        []db.FAQItem
}

// PageView is the body of a section-composed page.
type PageView struct {
	PageID   uint
	Slug     string
	Status   string
	Sections template.HTML
}

// CountRow is one line of the admin dashboard table.
type CountRow struct {
	Label     string
	Total     int64
	Published int64
}

// DashboardView is the body of the admin dashboard.
type DashboardView struct {
	Counts          []CountRow
	NavigationItems int64
	Components      int64
}

// NewDetailView assembles the shared columns of a content entity.
func NewDetailView(kind string, base db.ContentBase, blocks ...DetailBlock) DetailView {
	description := base.Description.Data()
	view := DetailView{
		Kind:       kind,
		Title:      base.Title,
		Subtitle:   base.Subtitle,
		Image:      base.Image,
		Intro:      description.Intro,
		Conclusion: description.Conclusion,
	}
	for _, block := range blocks {
		if len(block.Items) > 0 {
			view.Blocks = append(view.Blocks, block)
		}
	}
	return view
}
