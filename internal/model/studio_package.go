package model

type StudioPackage struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"` // сколько часов зачисляется после подтверждения оплаты
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Badge       string  `json:"badge"`
}

// DefaultPackages возвращает стартовый каталог планов для чистой установки
func DefaultPackages() []*StudioPackage {
	return []*StudioPackage{
		{
			ID:          "pkg-starter",
			Name:        "Starter Plan",
			Hours:       1,
			Price:       1000,
			Description: "1 Hour recording session. Best for short lessons or high-impact social media videos.",
			Thumbnail:   "https://images.unsplash.com/photo-1590602847861-f357a9332bbc?q=80&w=600&auto=format&fit=crop",
			Badge:       "1 HOUR",
		},
		{
			ID:          "pkg-pro",
			Name:        "Professional Plan",
			Hours:       5,
			Price:       4500,
			Description: "5 Hour recording bundle. Perfect for creating a full course or several educational modules.",
			Thumbnail:   "https://images.unsplash.com/photo-1524178232363-1fb2b075b655?q=80&w=600&auto=format&fit=crop",
			Badge:       "5 HOURS",
		},
		{
			ID:          "pkg-ultimate",
			Name:        "Master Plan",
			Hours:       12,
			Price:       10000,
			Description: "12 Hour recording bundle. The best value for professional teachers building a complete digital academy.",
			Thumbnail:   "https://images.unsplash.com/photo-1478737270239-2f02b77fc618?q=80&w=600&auto=format&fit=crop",
			Badge:       "12 HOURS",
		},
	}
}
