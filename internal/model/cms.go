package model

// PricingConfig почасовые тарифы бронирования по длительности сессии
type PricingConfig struct {
	OneHour        float64 `json:"oneHour"`
	TwoHours       float64 `json:"twoHours"`
	ThreePlusHours float64 `json:"threePlusHours"`
}

// CostFor возвращает стоимость сессии указанной длительности
func (p PricingConfig) CostFor(duration int) float64 {
	switch {
	case duration <= 1:
		return p.OneHour
	case duration == 2:
		return p.TwoHours
	default:
		return p.ThreePlusHours
	}
}

// CMSConfig редактируемое содержимое лендинга, единственный экземпляр
type CMSConfig struct {
	HeroTitle          string        `json:"heroTitle"`
	HeroSubtitle       string        `json:"heroSubtitle"`
	AboutText          string        `json:"aboutText"`
	BannerImage        string        `json:"bannerImage"`
	StrategyImage      string        `json:"strategyImage"`
	StudioIntelligence string        `json:"studioIntelligence"`
	Features           []string      `json:"features"`
	Pricing            PricingConfig `json:"pricing"`
	StudioLogo         string        `json:"studioLogo"`
	FooterBrandName    string        `json:"footerBrandName"`
	DirectorName       string        `json:"directorName"`
	ContactNumber      string        `json:"contactNumber"`
	FooterTagline      string        `json:"footerTagline"`
}

// DefaultCMSConfig возвращает содержимое лендинга для чистой установки
func DefaultCMSConfig() CMSConfig {
	return CMSConfig{
		HeroTitle:          "Dream Education Studio",
		HeroSubtitle:       "Premium Digital Studio",
		AboutText:          "Dream Education is a high-end digital studio. We provide a professional space where teachers can record high-quality lessons. Our studio has the best 4K cameras and lighting to make your teaching look world-class. We handle all the technical parts so you can focus on teaching your students.",
		BannerImage:        "https://images.unsplash.com/photo-1598488035139-bdbb2231ce04?q=80&w=1600&auto=format&fit=crop",
		StrategyImage:      "https://images.unsplash.com/photo-1492691527719-9d1e07e534b4?q=80&w=1000",
		StudioIntelligence: "Get broadcast-quality video with our professional cinema cameras and expert lighting setup. We ensure your educational content looks sharp, clear, and authoritative.",
		Features: []string{
			"Sony 4K Cinema Cameras",
			"Soundproof Recording Space",
			"Professional Studio Lighting",
			"High-Speed Live Streaming",
		},
		Pricing: PricingConfig{
			OneHour:        1000,
			TwoHours:       1500,
			ThreePlusHours: 2000,
		},
		StudioLogo:      "",
		FooterBrandName: "Dream Studio",
		DirectorName:    "B.A.M. Mendis",
		ContactNumber:   "078 639 8066",
		FooterTagline:   "Premium Studio Hub | Sri Lanka | 2026",
	}
}
