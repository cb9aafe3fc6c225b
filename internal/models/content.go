// internal/models/content.go
package models

// HeroContent is the top banner block of the page.
type HeroContent struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	CTAText     string `json:"ctaText"`
	CTA2Text    string `json:"cta2Text"`
	CTA2Link    string `json:"cta2Link"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// AboutContent is the biography block.
type AboutContent struct {
	Title      string `json:"title"`
	Paragraph1 string `json:"paragraph1"`
	Paragraph2 string `json:"paragraph2"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// ContactContent holds the contact block copy and details.
type ContactContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Service is a single offering card.
type Service struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a single client quote.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Title  string `json:"title"`
}

// Podcast is a single listening-platform entry.
type Podcast struct {
	ImageURL    string `json:"imageUrl,omitempty"`
	Title       string `json:"title"`
	Episode     string `json:"episode"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
}

// Book is a single published title. ImageSlot names the image record that
// overrides the cover; it travels with the book, so reordering the list
// never reassigns covers.
type Book struct {
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        string `json:"link"`
	ImageSlot   string `json:"imageSlot,omitempty"`
}

// ServiceSection groups the offering cards under a heading.
type ServiceSection struct {
	Title string    `json:"title"`
	Items []Service `json:"items"`
}

// TestimonialSection groups the client quotes under a heading.
type TestimonialSection struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

// PodcastSection groups the listening platforms under a heading.
type PodcastSection struct {
	Title string    `json:"title"`
	Items []Podcast `json:"items"`
}

// BookSection groups the published titles under a heading.
type BookSection struct {
	Title string `json:"title"`
	Items []Book `json:"items"`
}

// PageContent is the whole editable surface of the site. Every field is a
// string; item order is display order.
type PageContent struct {
	Hero         HeroContent        `json:"hero"`
	About        AboutContent       `json:"about"`
	Services     ServiceSection     `json:"services"`
	Testimonials TestimonialSection `json:"testimonials"`
	Podcast      PodcastSection     `json:"podcast"`
	Books        BookSection        `json:"books"`
	Contact      ContactContent     `json:"contact"`
}

// Section identifiers as they appear in the admin API.
const (
	SectionHero         = "hero"
	SectionAbout        = "about"
	SectionContact      = "contact"
	SectionServices     = "services"
	SectionTestimonials = "testimonials"
	SectionPodcast      = "podcast"
	SectionBooks        = "books"
)

// ItemSections lists the sections that carry an ordered item list.
var ItemSections = []string{SectionServices, SectionTestimonials, SectionPodcast, SectionBooks}

// Clone returns a deep copy. The item slices are the only reference fields,
// so copying them is enough.
func (p *PageContent) Clone() *PageContent {
	if p == nil {
		return nil
	}
	c := *p
	c.Services.Items = append([]Service(nil), p.Services.Items...)
	c.Testimonials.Items = append([]Testimonial(nil), p.Testimonials.Items...)
	c.Podcast.Items = append([]Podcast(nil), p.Podcast.Items...)
	c.Books.Items = append([]Book(nil), p.Books.Items...)
	return &c
}
