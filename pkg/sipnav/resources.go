package sipnav

import (
	"net/url"
	"strconv"
	"strings"
)

// Account represents a switch account (customer endpoint) on the platform.
type Account struct {
	ID         int    `json:"id"                    yaml:"id"`
	Name       string `json:"name"                  yaml:"name"`
	CompanyID  int    `json:"company_id,omitempty"  yaml:"company_id,omitempty"`
	PlatformID int    `json:"platform_id,omitempty" yaml:"platform_id,omitempty"`
	Status     string `json:"status,omitempty"      yaml:"status,omitempty"`
	Type       string `json:"type,omitempty"        yaml:"type,omitempty"`
	TechPrefix string `json:"tech_prefix,omitempty" yaml:"tech_prefix,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"  yaml:"ip_address,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"  yaml:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"  yaml:"updated_at,omitempty"`
}

// Carrier represents a switch carrier (vendor) on the platform.
type Carrier struct {
	ID         int    `json:"id"                    yaml:"id"`
	Name       string `json:"name"                  yaml:"name"`
	CompanyID  int    `json:"company_id,omitempty"  yaml:"company_id,omitempty"`
	PlatformID int    `json:"platform_id,omitempty" yaml:"platform_id,omitempty"`
	Status     string `json:"status,omitempty"      yaml:"status,omitempty"`
	Type       string `json:"type,omitempty"        yaml:"type,omitempty"`
	TechPrefix string `json:"tech_prefix,omitempty" yaml:"tech_prefix,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"  yaml:"ip_address,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"  yaml:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"  yaml:"updated_at,omitempty"`
}

// Company represents a billing company owning accounts and carriers.
type Company struct {
	ID           int    `json:"id"                      yaml:"id"`
	CustomerName string `json:"customer_name"           yaml:"customer_name"`
	PlatformID   int    `json:"platform_id,omitempty"   yaml:"platform_id,omitempty"`
	Status       string `json:"status,omitempty"        yaml:"status,omitempty"`
	Email        string `json:"email,omitempty"         yaml:"email,omitempty"`
	Balance      string `json:"balance,omitempty"       yaml:"balance,omitempty"`
	CreditLimit  string `json:"credit_limit,omitempty"  yaml:"credit_limit,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"    yaml:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"    yaml:"updated_at,omitempty"`
}

// CompanyBalance is the live balance snapshot from the dedicated balance
// endpoint. The company listing carries balance figures only as of its last
// billing sync.
type CompanyBalance struct {
	CompanyID   int    `json:"company_id,omitempty"   yaml:"company_id,omitempty"`
	Balance     string `json:"balance"                yaml:"balance"`
	CreditLimit string `json:"credit_limit,omitempty" yaml:"credit_limit,omitempty"`
}

// CompanyName is the lightweight id/name pair returned by the company names
// listing, used to populate selection lists without paging the full records.
type CompanyName struct {
	ID           int    `json:"id"            yaml:"id"`
	CustomerName string `json:"customer_name" yaml:"customer_name"`
}

// CDRRecord is a single call detail record returned by a CDR search.
type CDRRecord struct {
	ID             string `json:"id,omitempty"              yaml:"id,omitempty"`
	PlatformID     string `json:"p_id,omitempty"            yaml:"p_id,omitempty"`
	AccountID      string `json:"account_id,omitempty"      yaml:"account_id,omitempty"`
	CarrierID      string `json:"carrier_id,omitempty"      yaml:"carrier_id,omitempty"`
	SrcNumber      string `json:"src_number,omitempty"      yaml:"src_number,omitempty"`
	DstNumber      string `json:"dst_number,omitempty"      yaml:"dst_number,omitempty"`
	LRNNumber      string `json:"lrn_number,omitempty"      yaml:"lrn_number,omitempty"`
	StartTime      string `json:"start_time,omitempty"      yaml:"start_time,omitempty"`
	EndTime        string `json:"end_time,omitempty"        yaml:"end_time,omitempty"`
	Duration       int    `json:"duration,omitempty"        yaml:"duration,omitempty"`
	ActualDuration int    `json:"actual_duration,omitempty" yaml:"actual_duration,omitempty"`
	Disposition    string `json:"disposition,omitempty"     yaml:"disposition,omitempty"`
}

// CallRestriction represents a number-level call restriction rule.
type CallRestriction struct {
	ID               int    `json:"id"                          yaml:"id"`
	PlatformID       int    `json:"platform_id,omitempty"       yaml:"platform_id,omitempty"`
	AccountID        int    `json:"account_id,omitempty"        yaml:"account_id,omitempty"`
	CarrierID        int    `json:"carrier_id,omitempty"        yaml:"carrier_id,omitempty"`
	Priority         int    `json:"priority,omitempty"          yaml:"priority,omitempty"`
	SrcNumber        string `json:"src_number,omitempty"        yaml:"src_number,omitempty"`
	SrcMatchType     int    `json:"src_match_type,omitempty"    yaml:"src_match_type,omitempty"`
	DstNumber        string `json:"dst_number,omitempty"        yaml:"dst_number,omitempty"`
	RestrictionStart string `json:"restriction_start,omitempty" yaml:"restriction_start,omitempty"`
	RestrictionEnd   string `json:"restriction_end,omitempty"   yaml:"restriction_end,omitempty"`
	Direction        string `json:"direction,omitempty"         yaml:"direction,omitempty"`
	Reason           string `json:"reason,omitempty"            yaml:"reason,omitempty"`
	Note             string `json:"note,omitempty"              yaml:"note,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"        yaml:"created_at,omitempty"`
}

// RestrictionPage is the page-token based listing the restrictions endpoint
// returns instead of the usual current_page pagination.
type RestrictionPage struct {
	Data          []CallRestriction `json:"data"                      yaml:"data"`
	NextPageToken string            `json:"next_page_token,omitempty" yaml:"next_page_token,omitempty"`
	Total         int               `json:"total,omitempty"           yaml:"total,omitempty"`
}

// LRNResult is the outcome of a local routing number dip.
type LRNResult struct {
	PhoneNumber  string `json:"phone_number"           yaml:"phone_number"`
	LRN          string `json:"lrn"                    yaml:"lrn"`
	SPID         string `json:"spid,omitempty"         yaml:"spid,omitempty"`
	OCN          string `json:"ocn,omitempty"          yaml:"ocn,omitempty"`
	LATA         string `json:"lata,omitempty"         yaml:"lata,omitempty"`
	City         string `json:"city,omitempty"         yaml:"city,omitempty"`
	State        string `json:"state,omitempty"        yaml:"state,omitempty"`
	Jurisdiction string `json:"jurisdiction,omitempty" yaml:"jurisdiction,omitempty"`
}

// RateDeck describes an uploaded rate deck file and its processing state.
type RateDeck struct {
	ID        int    `json:"id"                   yaml:"id"`
	AccountID int    `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	CarrierID int    `json:"carrier_id,omitempty" yaml:"carrier_id,omitempty"`
	Filename  string `json:"filename"             yaml:"filename"`
	Local     int    `json:"local"                yaml:"local"`
	Enabled   int    `json:"enabled"              yaml:"enabled"`
	Status    string `json:"status,omitempty"     yaml:"status,omitempty"`
	RowCount  int    `json:"row_count,omitempty"  yaml:"row_count,omitempty"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// RateDeckStatus reports the processing state of an uploaded deck file,
// keyed by filename.
type RateDeckStatus struct {
	Filename      string `json:"filename"                 yaml:"filename"`
	Status        string `json:"status"                   yaml:"status"`
	RowsProcessed int    `json:"rows_processed,omitempty" yaml:"rows_processed,omitempty"`
	RowsFailed    int    `json:"rows_failed,omitempty"    yaml:"rows_failed,omitempty"`
}

// RateDeckLink is a time-limited download link returned by the deck download
// and failures endpoints. Links expire after one hour.
type RateDeckLink struct {
	URL       string `json:"url"                  yaml:"url"`
	ExpiresAt string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// RateDeckRow is a single prefix/rate row of a processed deck.
type RateDeckRow struct {
	Prefix        string `json:"prefix"                   yaml:"prefix"`
	Destination   string `json:"destination,omitempty"    yaml:"destination,omitempty"`
	Rate          string `json:"rate"                     yaml:"rate"`
	EffectiveDate string `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
}

// LoginResult is the identity payload returned by login, OTP verification,
// and proxy transitions.
type LoginResult struct {
	Token             string `json:"token"                        yaml:"token"`
	Username          string `json:"username,omitempty"           yaml:"username,omitempty"`
	TwoFactorRequired bool   `json:"two_factor_required,omitempty" yaml:"two_factor_required,omitempty"`
	EncryptedUser     string `json:"encrypted_user,omitempty"     yaml:"encrypted_user,omitempty"`
}

// ListOptions carries the common query parameters of the paginated entity
// listings (accounts, carriers, companies). The External flag defaults to 1
// when nil; the platform distinguishes external API traffic from portal
// traffic with it.
type ListOptions struct {
	External       *int
	PlatformID     int
	CompanyID      int
	PlatformFilter []int
	PerPage        int
	Page           int
}

// ToValues converts the options into URL query parameters.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		values.Set("external", "1")

		return values
	}

	external := 1
	if o.External != nil {
		external = *o.External
	}

	values.Set("external", strconv.Itoa(external))

	if o.PlatformID > 0 {
		values.Set("platform_id", strconv.Itoa(o.PlatformID))
	}

	if o.CompanyID > 0 {
		values.Set("company_id", strconv.Itoa(o.CompanyID))
	}

	if len(o.PlatformFilter) > 0 {
		filters := make([]string, len(o.PlatformFilter))
		for i, id := range o.PlatformFilter {
			filters[i] = strconv.Itoa(id)
		}

		values.Set("platform_filter", strings.Join(filters, ","))
	}

	if o.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(o.PerPage))
	}

	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}

	return values
}

// CDRSearchOptions are the filters accepted by the CDR search endpoint.
// Zero values are omitted from the query.
type CDRSearchOptions struct {
	PlatformID      string
	LRNNumber       string
	AccountID       string
	CarrierID       string
	SrcNumber       string
	DstNumber       string
	StartDate       string
	EndTime         string
	MinDuration     *int
	MaxDuration     *int
	SearchCompleted *int
	Limit           int
}

// ToValues converts the search filters into URL query parameters.
func (o *CDRSearchOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	setString := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	setString("p_id", o.PlatformID)
	setString("lrn_number", o.LRNNumber)
	setString("account_id", o.AccountID)
	setString("carrier_id", o.CarrierID)
	setString("src_number", o.SrcNumber)
	setString("dst_number", o.DstNumber)
	setString("start_date", o.StartDate)
	setString("end_time", o.EndTime)

	if o.MinDuration != nil {
		values.Set("min_duration", strconv.Itoa(*o.MinDuration))
	}

	if o.MaxDuration != nil {
		values.Set("max_duration", strconv.Itoa(*o.MaxDuration))
	}

	if o.SearchCompleted != nil {
		values.Set("search_completed", strconv.Itoa(*o.SearchCompleted))
	}

	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}

	return values
}

// RestrictionListOptions filter the call restriction listing. Paging uses an
// opaque page token rather than page numbers.
type RestrictionListOptions struct {
	PlatformID int
	CarrierID  int
	AccountID  int
	SrcNumber  string
	DstNumber  string
	PerPage    int
	PageToken  string
}

// ToValues converts the options into URL query parameters.
func (o *RestrictionListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	perPage := o.PerPage
	if perPage <= 0 {
		perPage = 100
	}

	values.Set("per_page", strconv.Itoa(perPage))
	values.Set("page_token", o.PageToken)

	if o.PlatformID > 0 {
		values.Set("platform_id", strconv.Itoa(o.PlatformID))
	}

	if o.CarrierID > 0 {
		values.Set("carrier_id", strconv.Itoa(o.CarrierID))
	}

	if o.AccountID > 0 {
		values.Set("account_id", strconv.Itoa(o.AccountID))
	}

	if o.SrcNumber != "" {
		values.Set("src_number", o.SrcNumber)
	}

	if o.DstNumber != "" {
		values.Set("dst_number", o.DstNumber)
	}

	return values
}

// RestrictionRequest carries the fields of a new call restriction. The
// endpoint takes its input as query parameters, not a JSON body. CarrierID
// and AccountID of 0 match all carriers or accounts.
type RestrictionRequest struct {
	// Priority orders overlapping restrictions, 1 and up.
	Priority  int
	CarrierID int
	AccountID int
	DstNumber string

	// RestrictionStart and RestrictionEnd bound the active window, in
	// "2006-01-02 15:04:05" form.
	RestrictionStart string
	RestrictionEnd   string

	SrcNumber string

	// SrcMatchType: 0 default, 1 starts-with, 2 exact.
	SrcMatchType int

	// Note is free text, at most 100 characters.
	Note string
}

// ToValues converts the request into URL query parameters.
func (r *RestrictionRequest) ToValues() url.Values {
	values := url.Values{}
	if r == nil {
		return values
	}

	values.Set("priority", strconv.Itoa(r.Priority))
	values.Set("carrier_id", strconv.Itoa(r.CarrierID))
	values.Set("account_id", strconv.Itoa(r.AccountID))
	values.Set("dst_number", r.DstNumber)
	values.Set("restriction_start", r.RestrictionStart)
	values.Set("restriction_end", r.RestrictionEnd)
	values.Set("src_match_type", strconv.Itoa(r.SrcMatchType))

	if r.SrcNumber != "" {
		values.Set("src_number", r.SrcNumber)
	}

	if r.Note != "" {
		values.Set("note", r.Note)
	}

	return values
}

// RestrictionUpdate is a partial update of a call restriction; nil fields are
// left untouched.
type RestrictionUpdate struct {
	Priority         *int
	CarrierID        *int
	AccountID        *int
	SrcNumber        *string
	SrcMatchType     *int
	DstNumber        *string
	RestrictionStart *string
	RestrictionEnd   *string
	Note             *string
}

// ToValues converts the set fields into URL query parameters.
func (u *RestrictionUpdate) ToValues() url.Values {
	values := url.Values{}
	if u == nil {
		return values
	}

	setInt := func(key string, value *int) {
		if value != nil {
			values.Set(key, strconv.Itoa(*value))
		}
	}

	setString := func(key string, value *string) {
		if value != nil {
			values.Set(key, *value)
		}
	}

	setInt("priority", u.Priority)
	setInt("carrier_id", u.CarrierID)
	setInt("account_id", u.AccountID)
	setString("src_number", u.SrcNumber)
	setInt("src_match_type", u.SrcMatchType)
	setString("dst_number", u.DstNumber)
	setString("restriction_start", u.RestrictionStart)
	setString("restriction_end", u.RestrictionEnd)
	setString("note", u.Note)

	return values
}

// RateDeckListOptions filter account and carrier rate deck listings.
type RateDeckListOptions struct {
	// Local selects the deck type: 0 international, 1 local. Nil lists both.
	Local *int
	// Enabled filters on the enabled flag when non-nil.
	Enabled    *int
	AccountID  int
	CarrierID  int
	PlatformID int
}

// ToValues converts the options into URL query parameters.
func (o *RateDeckListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.Local != nil {
		values.Set("local", strconv.Itoa(*o.Local))
	}

	if o.Enabled != nil {
		values.Set("enabled", strconv.Itoa(*o.Enabled))
	}

	if o.AccountID > 0 {
		values.Set("account_id", strconv.Itoa(o.AccountID))
	}

	if o.CarrierID > 0 {
		values.Set("carrier_id", strconv.Itoa(o.CarrierID))
	}

	if o.PlatformID > 0 {
		values.Set("platform_id", strconv.Itoa(o.PlatformID))
	}

	return values
}
