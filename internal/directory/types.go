package directory

import (
	"encoding/json"
	"sort"
	"strings"
)

type Branch struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type Section struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Order   int    `json:"order"`
}

type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	PhotoURL       string `json:"photo_url,omitempty"`
}

type Service struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

type GalleryItem struct {
	ID    int    `json:"id,omitempty"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type Review struct {
	ID      int     `json:"id,omitempty"`
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Date    string  `json:"date,omitempty"`
}

type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
}

// TenantDomain accepts both "vet.example.com" and {"domain": "vet.example.com"}.
type TenantDomain string

func (d *TenantDomain) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = TenantDomain(s)
		return nil
	}

	var obj struct {
		Domain string `json:"domain"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*d = TenantDomain(obj.Domain)
	return nil
}

type Tenant struct {
	ID      string         `json:"id,omitempty"`
	Domains []TenantDomain `json:"domains,omitempty"`
}

type ClinicProfile struct {
	ID       int    `json:"id"`
	TenantID string `json:"tenant_id,omitempty"`
	Slug     string `json:"slug"`

	Name    string  `json:"clinic_name"`
	Tagline string  `json:"tagline,omitempty"`
	Color   string  `json:"color,omitempty"`
	LogoURL *string `json:"logo_url"`

	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`

	EnableAppointmentButton bool `json:"enable_appointment_button"`

	Branches     []Branch            `json:"branches,omitempty"`
	Sections     []Section           `json:"sections,omitempty"`
	Doctors      []Doctor            `json:"doctors,omitempty"`
	Services     []Service           `json:"services,omitempty"`
	OpeningHours map[string]DayHours `json:"opening_hours,omitempty"`
	Gallery      []GalleryItem       `json:"gallery,omitempty"`
	Reviews      []Review            `json:"reviews,omitempty"`
	SEO          *SEO                `json:"seo,omitempty"`
	Tenant       *Tenant             `json:"tenant,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ThemeColor falls back to the catalog's default blue.
func (p *ClinicProfile) ThemeColor() string {
	if p.Color == "" {
		return "#2563eb"
	}
	return p.Color
}

// TenantDomain returns the first non-empty domain embedded in the profile.
func (p *ClinicProfile) TenantDomain() string {
	if p == nil || p.Tenant == nil {
		return ""
	}
	for _, d := range p.Tenant.Domains {
		if s := strings.TrimSpace(string(d)); s != "" {
			return s
		}
	}
	return ""
}

func (p *ClinicProfile) VisibleSections() []Section {
	out := make([]Section, 0, len(p.Sections))
	for _, s := range p.Sections {
		if s.Visible {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func (p *ClinicProfile) Branch(id int) (Branch, bool) {
	for _, b := range p.Branches {
		if b.ID == id {
			return b, true
		}
	}
	return Branch{}, false
}

type ClinicListItem struct {
	Slug         string  `json:"slug"`
	TenantDomain string  `json:"tenant_domain"`
	Name         string  `json:"clinic_name"`
	Tagline      string  `json:"tagline,omitempty"`
	Address      string  `json:"address,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	LogoURL      *string `json:"logo_url"`
	Color        string  `json:"color,omitempty"`
}

// AppointmentPayload is the body of POST /api/public/appointments.
type AppointmentPayload struct {
	OwnerName     string `json:"owner_name"`
	PetName       string `json:"pet_name"`
	AnimalType    string `json:"animal_type"`
	PetAge        string `json:"pet_age"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ServiceReason string `json:"service_reason"`
	AppointmentAt string `json:"appointment_at"`
	Status        string `json:"status"`
	BranchID      *int   `json:"branch_id,omitempty"`
}
