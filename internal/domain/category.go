package domain

// Category is one entry of the fixed business category list.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

// Categories must stay in sync with the slugs the directory API accepts.
var Categories = []Category{
	{ID: "food-beverage", Name: "Makanan & Minuman", Slug: "food-beverage", Icon: "🍜"},
	{ID: "grocery-convenience", Name: "Toko Kelontong & Kebutuhan", Slug: "grocery-convenience", Icon: "🛒"},
	{ID: "retail-fashion", Name: "Retail & Fashion", Slug: "retail-fashion", Icon: "🛍️"},
	{ID: "services", Name: "Jasa & Layanan", Slug: "services", Icon: "🤲"},
	{ID: "entertainment", Name: "Hiburan", Slug: "entertainment", Icon: "🎱"},
	{ID: "sports-fitness", Name: "Olahraga & Kebugaran", Slug: "sports-fitness", Icon: "🏃"},
	{ID: "handicrafts-souvenirs", Name: "Kerajinan & Souvenir", Slug: "handicrafts-souvenirs", Icon: "🎨"},
	{ID: "agriculture-fresh-produce", Name: "Pertanian & Produk Segar", Slug: "agriculture-fresh-produce", Icon: "🌾"},
	{ID: "health", Name: "Kesehatan", Slug: "health", Icon: "🏥"},
	{ID: "beauty", Name: "Kecantikan", Slug: "beauty", Icon: "💅"},
	{ID: "home-living", Name: "Rumah & Interior", Slug: "home-living", Icon: "🏠"},
	{ID: "property-rentals", Name: "Properti & Sewa", Slug: "property-rentals", Icon: "🏘️"},
	{ID: "education-training", Name: "Pendidikan & Pelatihan", Slug: "education-training", Icon: "📚"},
	{ID: "technology-digital", Name: "Teknologi & Digital", Slug: "technology-digital", Icon: "💻"},
	{ID: "other", Name: "Lainnya", Slug: "other", Icon: "📦"},
}

var categorySlugs = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		set[c.Slug] = struct{}{}
	}
	return set
}()

// IsKnownCategory reports whether slug belongs to the category list.
func IsKnownCategory(slug string) bool {
	_, ok := categorySlugs[slug]
	return ok
}
