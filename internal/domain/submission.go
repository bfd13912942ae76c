package domain

import "time"

// SubmissionState tracks manual review of a submitted business.
type SubmissionState string

const (
	SubmissionPending  SubmissionState = "PENDING"
	SubmissionApproved SubmissionState = "APPROVED"
	SubmissionRejected SubmissionState = "REJECTED"
)

// Title is the short label shown for the state.
func (s SubmissionState) Title() string {
	switch s {
	case SubmissionApproved:
		return "Disetujui"
	case SubmissionRejected:
		return "Ditolak"
	default:
		return "Sedang Ditinjau"
	}
}

// Description explains the state to the owner.
func (s SubmissionState) Description() string {
	switch s {
	case SubmissionApproved:
		return "Selamat! Bisnis Anda sudah tampil di peta Bursa dan dapat ditemukan oleh pelanggan."
	case SubmissionRejected:
		return "Maaf, pendaftaran bisnis Anda tidak dapat disetujui. Silakan hubungi tim kami untuk informasi lebih lanjut."
	default:
		return "Bisnis Anda sedang dalam proses review oleh tim kami. Biasanya membutuhkan waktu 24 jam."
	}
}

// Submission is an existing record owned by the signed-in account.
type Submission struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Status           SubmissionState `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	IsOnlineBusiness bool            `json:"isOnlineBusiness"`
}

// Identity is the account behind a session.
type Identity struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// DisplayName returns the account name or "".
func (i Identity) DisplayName() string {
	if i.Name == nil {
		return ""
	}
	return *i.Name
}

// StatusReport is returned by the status service once per wizard session.
// The simple variant reports a single nullable record through Submission.
type StatusReport struct {
	User           Identity     `json:"user"`
	Submissions    []Submission `json:"submissions"`
	CanSubmitMore  bool         `json:"canSubmitMore"`
	RemainingSlots int          `json:"remainingSlots"`

	HasSubmission bool        `json:"hasSubmission,omitempty"`
	Submission    *Submission `json:"submission,omitempty"`
}

// Normalize folds the single-record shape into the list shape.
func (r *StatusReport) Normalize(variant Variant) {
	if r.Submission != nil && len(r.Submissions) == 0 {
		r.Submissions = []Submission{*r.Submission}
	}
	if r.Submissions == nil {
		r.Submissions = []Submission{}
	}
	if r.HasSubmission && variant.MaxSubmissions == 1 {
		r.CanSubmitMore = false
		r.RemainingSlots = 0
	}
}

// SubmissionPayload is the wire body accepted by the submission service.
type SubmissionPayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	OwnerName    string `json:"ownerName"`
	CategorySlug string `json:"categorySlug"`

	PriceRangeMin PriceTier    `json:"priceRangeMin,omitempty"`
	PriceRangeMax PriceTier    `json:"priceRangeMax,omitempty"`
	BusinessSize  BusinessSize `json:"businessSize,omitempty"`

	IsOnlineBusiness *bool `json:"isOnlineBusiness,omitempty"`

	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	District   string   `json:"district,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	PhoneNumber    string `json:"phoneNumber"`
	WhatsappNumber string `json:"whatsappNumber,omitempty"`
	Website        string `json:"website,omitempty"`

	OperatingHours *OperatingHours `json:"operatingHours,omitempty"`

	InstagramHandle string `json:"instagramHandle,omitempty"`
	TiktokHandle    string `json:"tiktokHandle,omitempty"`
	FacebookURL     string `json:"facebookUrl,omitempty"`

	LogoURL string   `json:"logoUrl,omitempty"`
	Photos  []string `json:"photos,omitempty"`
}

// Draft rebuilds a draft from a payload so the same step rules can run on
// the receiving side.
func (p SubmissionPayload) Draft() DraftSubmission {
	d := DraftSubmission{
		Name:            p.Name,
		Description:     p.Description,
		OwnerName:       p.OwnerName,
		CategorySlug:    p.CategorySlug,
		PriceRangeMin:   p.PriceRangeMin,
		PriceRangeMax:   p.PriceRangeMax,
		BusinessSize:    p.BusinessSize,
		Address:         p.Address,
		City:            p.City,
		District:        p.District,
		PostalCode:      p.PostalCode,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		PhoneNumber:     p.PhoneNumber,
		WhatsappNumber:  p.WhatsappNumber,
		Website:         p.Website,
		InstagramHandle: p.InstagramHandle,
		TiktokHandle:    p.TiktokHandle,
		FacebookURL:     p.FacebookURL,
		LogoURL:         p.LogoURL,
		Photos:          append([]string{}, p.Photos...),
	}
	if p.IsOnlineBusiness != nil {
		d.IsOnlineBusiness = *p.IsOnlineBusiness
	}
	if p.OperatingHours != nil {
		d.OperatingHours = *p.OperatingHours
	}
	return d
}

// BusinessRef identifies a created business.
type BusinessRef struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Status SubmissionState `json:"status"`
}

// SubmitResult is the success body of the submission service.
type SubmitResult struct {
	Success  bool        `json:"success"`
	Business BusinessRef `json:"business"`
}
