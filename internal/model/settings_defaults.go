package model

// DefaultSettings is stored by the seeder and used as the base when the
// first settings update arrives before any row exists.
func DefaultSettings() Settings {
	return Settings{
		CompanyInfo: CompanyInfo{
			Name: "Realty Brokers",
			Address: Address{
				Street:       "Main Street",
				Number:       "100",
				Neighborhood: "Downtown",
				City:         "Springfield",
				State:        "SP",
				ZipCode:      "01000-000",
			},
			Contact: Contact{
				Phone:    "1130000000",
				WhatsApp: "11930000000",
				Email:    "contact@realty.local",
			},
			BusinessHours: BusinessHours{
				Weekdays: "Monday to Friday, 8am to 5pm",
				Weekend:  "Saturday, 8am to 12pm",
			},
		},
		VisualIdentity: VisualIdentity{
			Colors: BrandColors{
				Primary:    "#1E3932",
				Secondary:  "#9D6B53",
				Accent:     "#C0A062",
				Background: "#F4EDE4",
				Text:       "#1A1A1A",
			},
			Fonts: BrandFonts{
				Primary:   "Inter, system-ui, sans-serif",
				Secondary: "Georgia, serif",
			},
		},
		SiteContent: SiteContent{
			Hero: HeroContent{
				Title:             "Find the home of your dreams",
				Subtitle:          "Connecting people to the right place",
				SearchPlaceholder: "Search by neighborhood or property type...",
			},
			About: AboutContent{
				Title:   "Our story",
				Content: "<p>We help families buy, sell and rent with transparency.</p>",
				Values:  []string{"Transparency", "Personal service", "Professional ethics"},
			},
			Services: ServicesContent{
				Title: "Our services",
				Items: []ServiceItem{
					{Title: "Sales", Description: "Full support from appraisal to closing.", Icon: "home"},
					{Title: "Rentals", Description: "Lease management with legal safety.", Icon: "key"},
					{Title: "Appraisal", Description: "Technical reports for sale or financing.", Icon: "calculator"},
				},
			},
			Team: []TeamMember{},
			Footer: FooterContent{
				Copyright: "All rights reserved.",
			},
		},
		SEOSettings: SEOSettings{
			SiteName:        "Realty Brokers",
			SiteDescription: "Houses, apartments and lots for sale and rent.",
			Keywords:        []string{"real estate", "houses for sale", "apartments for rent"},
			Author:          "Realty Brokers",
		},
		SystemSettings: SystemSettings{
			Email: EmailSystem{
				Provider: "resend",
				Templates: EmailTemplates{
					Contact: "Thanks for reaching out. We will get back to you shortly.",
					Inquiry: "We received your interest in this property. Our team will contact you.",
				},
			},
			Integrations: Integrations{
				Maps: MapsIntegration{
					Provider:        "google",
					DefaultLocation: GeoLocation{Lat: -23.55052, Lng: -46.633308, Zoom: 15},
				},
			},
		},
		UpdatedBy: "system",
	}
}
