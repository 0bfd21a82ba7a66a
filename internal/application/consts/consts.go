package consts

type SiteStatus string

const (
	SiteStatusProcessing SiteStatus = "processing"
	SiteStatusSuccess    SiteStatus = "success"
	SiteStatusError      SiteStatus = "error"
	SiteStatusTimeout    SiteStatus = "timeout"
)

type CSSStatus string

const (
	CSSStatusProcessing CSSStatus = "processing"
	CSSStatusCompleted  CSSStatus = "completed"
	CSSStatusError      CSSStatus = "error"
)

type SubscriptionState string

const (
	SubscriptionActive   SubscriptionState = "active"
	SubscriptionInactive SubscriptionState = "inactive"
)

type OutboxStatus int

const (
	NotProcessed OutboxStatus = iota
	Processing
	Processed
	InError
)

const DefaultAppName = "Super Cool App"

const DefaultIconURL = "/static/icons/pocketvibe.png"
