// internal/models/defaults.go
package models

// DefaultContent returns the fully populated fallback content table. It is
// what the site renders when the store holds no published blob, and the base
// the aggregation layer overlays remote values onto.
func DefaultContent() *PageContent {
	return &PageContent{
		Hero: HeroContent{
			Headline:    "Unlock Your Potential, Walk in Your Purpose",
			Subheadline: "I'm here to help you live a life of profound meaning, impact, and divine alignment. Your transformational journey to greatness starts now.",
			CTAText:     "Book a Discovery Call",
			CTA2Text:    "Buy My Latest Book",
			CTA2Link:    "https://selar.com/tltl",
			ImageURL:    "/img/hero-bg.jpg",
		},
		About: AboutContent{
			Title:      "Meet Chuka Michael Nwaezuoke",
			Paragraph1: "Hello, I'm Chuka Michael Nwaezuoke. I am a Life Coach and Author, but before that, I am a believer in the power of the human spirit. I operate on a simple, unshakeable conviction: your life isn't an accident. It is a unique story waiting to be told and a purpose waiting to be lived.",
			Paragraph2: "My journey didn't start on a big stage; it started in the quiet service of my local church. There, working side-by-side with children and teenagers, I saw the raw reality of growing up in today's world. I saw their struggles, but I also saw their incredible potential. That experience sparked a fire in me to become more than just an observer—I became a mentor, dedicated to equipping the next generation with character, confidence, and a faith that can weather any storm.",
			ImageURL:   "/img/Chuka.jpg",
		},
		Services: ServiceSection{
			Title: "How I Can Serve You",
			Items: []Service{
				{
					Icon:        "MIC",
					Title:       "Keynote Speaking",
					Description: "Dynamic and inspiring talks for your events, conferences, and congregations, tailored to ignite passion and purpose.",
				},
				{
					Icon:        "USERS",
					Title:       "One-on-One Coaching",
					Description: "Bespoke one-on-one sessions designed to provide laser-focused clarity, actionable strategy, and unwavering accountability for your personal and spiritual growth.",
				},
				{
					Icon:        "BOOK",
					Title:       "Authorship & Books",
					Description: "Explore my collection of books filled with wisdom, practical advice, and faith-based encouragement to guide you.",
				},
				{
					Icon:        "GROUP",
					Title:       "Workshops & Seminars",
					Description: "Interactive and engaging workshops that equip your team or group with tools for growth, resilience, and leadership.",
				},
			},
		},
		Testimonials: TestimonialSection{
			Title: "What Clients Are Saying",
			Items: []Testimonial{
				{
					Quote:  "Working with Chuka was a pivotal moment in my life. The guidance is rooted in profound wisdom, helping me find the clarity and courage I desperately needed to move forward. It was truly life-changing.",
					Author: "Jane D.",
					Title:  "Coaching Client",
				},
				{
					Quote:  "His keynote at our annual conference was the most electrifying talk we've ever had. He captivated the audience and left us all inspired to take action. Truly unforgettable.",
					Author: "Mark T.",
					Title:  "Event Organizer",
				},
				{
					Quote:  "This book felt like it was written just for me. The insights are profound yet practical. It's a must-read for anyone on a journey of faith.",
					Author: "Sarah L.",
					Title:  "Reader",
				},
			},
		},
		Podcast: PodcastSection{
			Title: "Circles of Connections",
			Items: []Podcast{
				{
					Title:   "Spotify",
					Episode: "Listen on Spotify",
					Link:    "https://open.spotify.com/show/5YYmf6UzJxvjMPCkrtKM59",
				},
				{
					Title:   "Apple",
					Episode: "Listen on Apple Podcasts",
					Link:    "https://podcasts.apple.com/gb/podcast/circles-of-connection/id1765101004",
				},
				{
					Title:   "YouTube",
					Episode: "Watch on YouTube",
					Link:    "https://www.youtube.com/playlist?list=PLfW-dG5IGzfYY870nY79JUs1n6EuTqEXo",
				},
			},
		},
		Books: BookSection{
			Title: "My Books",
			Items: []Book{
				{
					Title:       "The Love That Lasts",
					Description: "A powerful guide to building lasting relationships grounded in faith and love.",
					ImageURL:    "/Books/Img/The Love That Lasts.png",
					Link:        "https://selar.com/tltl",
					ImageSlot:   ImageBookLoveLasts,
				},
				{
					Title:       "Spiritual Nuggets to Nurture",
					Description: "Daily wisdom to nourish your spirit and strengthen your faith journey.",
					ImageURL:    "/Books/Img/Spiritual Nuggets to Nurture.jpg",
					Link:        "https://selar.com/763f",
					ImageSlot:   ImageBookSpiritual,
				},
				{
					Title:       "Lets Make it Work",
					Description: "Practical principles for success in every area of your life.",
					ImageURL:    "/Books/Img/Let us make it work.jpg",
					Link:        "https://selar.com/LetsMakeitWork",
					ImageSlot:   ImageBookMakeWork,
				},
			},
		},
		Contact: ContactContent{
			Title:       "Let's Connect",
			Description: "Ready to take the next step in your journey? Reach out to book a speaking engagement, inquire about coaching, or simply to say hello.",
			Phone:       "+234 8023041236",
			Email:       "nwaezuokechuka@gmail.com",
			Location:    "Lagos, Nigeria",
		},
	}
}

// NewDefaultService is the record appended when the operator adds a service.
func NewDefaultService() Service {
	return Service{Icon: "", Title: "New Service", Description: "Description"}
}

// NewDefaultTestimonial is the record appended when the operator adds a testimonial.
func NewDefaultTestimonial() Testimonial {
	return Testimonial{Quote: "New testimonial quote...", Author: "Author", Title: "Client"}
}

// NewDefaultPodcast is the record appended when the operator adds a platform.
func NewDefaultPodcast() Podcast {
	return Podcast{Title: "Spotify", Episode: "Listen on Spotify", Link: "#"}
}

// NewDefaultBook is the record appended when the operator adds a book.
func NewDefaultBook() Book {
	return Book{Title: "New Book", Description: "Book description...", ImageURL: "", Link: "#"}
}
