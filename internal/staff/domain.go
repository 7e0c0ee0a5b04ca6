// Package staff is the admin surface for hotel personnel accounts. Only
// administrators reach these endpoints; the guard enforces that before any
// handler runs.
package staff

// Staff mirrors the backend personnel record. The password never appears in
// responses, only in create/update payloads.
type Staff struct {
	ID        int64  `json:"personel_id"`
	Username  string `json:"kullanici_adi"`
	Name      string `json:"ad_soyad"`
	JobTitle  string `json:"gorev"`
	Active    bool   `json:"aktiflik"`
	CreatedAt string `json:"olusturulma_tarihi,omitempty"`
}

// StaffInput carries create/update fields.
type StaffInput struct {
	Username string `json:"kullanici_adi" validate:"required"`
	Password string `json:"sifre,omitempty" validate:"omitempty,min=6"`
	Name     string `json:"ad_soyad" validate:"required"`
	JobTitle string `json:"gorev" validate:"required"`
	Active   *bool  `json:"aktiflik,omitempty"`
}

// ListFilter narrows staff listings.
type ListFilter struct {
	Search     string
	OnlyActive bool
}
