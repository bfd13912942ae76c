package domain

// MaxPhotos caps the photo gallery of a submission.
const MaxPhotos = 5

// DraftSubmission is the in-progress business record held by a wizard.
type DraftSubmission struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	OwnerName    string `json:"ownerName"`
	CategorySlug string `json:"categorySlug"`

	PriceRangeMin PriceTier    `json:"priceRangeMin,omitempty"`
	PriceRangeMax PriceTier    `json:"priceRangeMax,omitempty"`
	BusinessSize  BusinessSize `json:"businessSize,omitempty"`

	IsOnlineBusiness bool `json:"isOnlineBusiness"`

	Address    string   `json:"address"`
	City       string   `json:"city"`
	District   string   `json:"district"`
	PostalCode string   `json:"postalCode"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	PhoneNumber    string `json:"phoneNumber"`
	WhatsappNumber string `json:"whatsappNumber"`
	Website        string `json:"website"`

	OperatingHours OperatingHours `json:"operatingHours"`

	InstagramHandle string `json:"instagramHandle"`
	TiktokHandle    string `json:"tiktokHandle"`
	FacebookURL     string `json:"facebookUrl"`

	LogoURL string   `json:"logoUrl"`
	Photos  []string `json:"photos"`
}

// Clone returns a deep copy of the draft.
func (d DraftSubmission) Clone() DraftSubmission {
	out := d
	if d.Latitude != nil {
		lat := *d.Latitude
		out.Latitude = &lat
	}
	if d.Longitude != nil {
		lng := *d.Longitude
		out.Longitude = &lng
	}
	out.Photos = append([]string(nil), d.Photos...)
	return out
}
