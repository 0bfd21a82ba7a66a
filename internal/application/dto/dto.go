package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

type SubscriptionKeys struct {
	Auth   string `json:"auth"`
	P256dh string `json:"p256dh"`
}

type Subscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

type GenerateSiteRequest struct {
	SiteID       string        `json:"site_id"`
	Prompt       string        `json:"prompt"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

type GenerateSiteResponse struct {
	Status  string `json:"status"`
	SiteID  string `json:"site_id"`
	Message string `json:"message"`
}

type SiteStatusResponse struct {
	Status string `json:"status"`
	SiteID string `json:"site_id"`
}

type GenerateCSSRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateCSSResponse struct {
	CSSID  string `json:"css_id"`
	Status string `json:"status"`
}

type CSSStatusResponse struct {
	Status     string  `json:"status"`
	CSSContent *string `json:"css_content"`
	Error      *string `json:"error"`
}

type GenerateIconRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateIconResponse struct {
	Status  string `json:"status"`
	IconURL string `json:"icon_url"`
}

type UpdateAppIconRequest struct {
	AppName  string `json:"app_name"`
	ImageURL string `json:"image_url"`
	SiteID   string `json:"site_id"`
}

type UpdateAppIconResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	AppURL  string `json:"app_url"`
	AppName string `json:"app_name"`
	IconURL string `json:"icon_url"`
}

type AppifyRequest struct {
	URL string `json:"url"`
}

type AppifyResponse struct {
	Status string `json:"status"`
	SiteID string `json:"site_id"`
	URL    string `json:"url"`
}

type SiteSummary struct {
	ID        string  `json:"id"`
	URL       string  `json:"url"`
	AppName   string  `json:"app_name"`
	CreatedAt *string `json:"created_at"`
	IconURL   string  `json:"icon_url"`
}

type GlobalSitesResponse struct {
	Status string        `json:"status"`
	Sites  []SiteSummary `json:"sites"`
	Total  int           `json:"total"`
}

type WaitlistRequest struct {
	Contact string `json:"contact"`
	Type    string `json:"type"`
}

type ContactRequest struct {
	Contact string `json:"contact"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type SubscribeRequest struct {
	Subscription *Subscription `json:"subscription"`
}

type GenerateTipRequest struct {
	Amount float64 `json:"amount"` // satoshis, kept for front-end compatibility
}

type GenerateTipResponse struct {
	Status         string  `json:"status"`
	ClientSecret   string  `json:"clientSecret"`
	ConversionRate float64 `json:"conversionRate"`
	InvoiceID      string  `json:"invoiceId"`
}

type CheckTipResponse struct {
	Status string `json:"status"`
	IsPaid bool   `json:"isPaid"`
}

type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}
