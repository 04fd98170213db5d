package sipnav

import (
	"context"
	"io"
	"time"
)

// DefaultBaseURL is used when Config.BaseURL is empty.
const DefaultBaseURL = "https://api.bluedragonnetwork.com"

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config configures a SIPNAV client.
//
// # Authentication
//
// Exactly one of APIKey or Username+Password must be provided. An API key is
// used directly as a static Bearer token. Username/password credentials are
// exchanged for a token lazily: construction performs no network I/O, and the
// login request happens before the first API call. The resulting session is
// cached until a 401 response, a logout, or a proxy transition invalidates it.
//
// # Platform scoping
//
// PlatformID, when set, is attached to every request as the platform_id query
// parameter. Multi-platform admin accounts need it; single-platform users can
// leave it zero.
//
// # Timeouts and retries
//
// Timeout applies per attempt, not cumulatively across retries. MaxRetries
// counts retries after the first attempt; nil selects the default (3), and an
// explicit zero disables retrying entirely. Only connection failures,
// timeouts, 429, and 5xx responses are retried, with exponential backoff
// between RetryWaitMin and RetryWaitMax.
type Config struct {
	// BaseURL is the API origin. Defaults to DefaultBaseURL; a missing
	// scheme is normalized to https.
	BaseURL string

	// APIKey is a static bearer token.
	APIKey string

	// Username and Password select the login flow instead of APIKey.
	Username string
	Password string

	// PlatformID scopes every request to a platform when > 0.
	PlatformID int

	// Timeout is the per-attempt request timeout. Zero means 30s.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt. Nil
	// means the default of 3; zero disables retries.
	MaxRetries *int

	// RetryWaitMin and RetryWaitMax bound the exponential backoff.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables request/response logging through Logger.
	Debug bool

	// Logger receives structured log output. Nil disables logging.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache configures the response cache used for LRN dips. Nil selects
	// an in-memory cache; use CacheTypeNone to disable caching.
	Cache *CacheConfig
}

// Retries returns a pointer for Config.MaxRetries, so an explicit zero is
// distinguishable from "use the default".
func Retries(n int) *int {
	return &n
}

// AccountsClient manages switch accounts.
type AccountsClient interface {
	List(ctx context.Context, opts *ListOptions) (*Page[Account], error)
	Get(ctx context.Context, accountID int, opts *ListOptions) (*Account, error)
	Create(ctx context.Context, request *AccountRequest, opts *ListOptions) (*Account, error)
	Update(ctx context.Context, accountID int, request *AccountRequest, opts *ListOptions) (*Account, error)
	GetCarriers(ctx context.Context, accountID int, opts *ListOptions) (*Page[Carrier], error)
}

// CarriersClient manages switch carriers.
type CarriersClient interface {
	List(ctx context.Context, opts *ListOptions) (*Page[Carrier], error)
	Get(ctx context.Context, carrierID int, opts *ListOptions) (*Carrier, error)
	Create(ctx context.Context, request *CarrierRequest, opts *ListOptions) (*Carrier, error)
	Update(ctx context.Context, carrierID int, request *CarrierRequest, opts *ListOptions) (*Carrier, error)
	GetAccounts(ctx context.Context, carrierID int, opts *ListOptions) (*Page[Account], error)
}

// CompaniesClient manages billing companies.
type CompaniesClient interface {
	List(ctx context.Context, opts *ListOptions) (*Page[Company], error)
	Get(ctx context.Context, companyID int, opts *ListOptions) (*Company, error)
	Create(ctx context.Context, request *CompanyRequest, opts *ListOptions) (*Company, error)
	Update(ctx context.Context, companyID int, request *CompanyRequest, opts *ListOptions) (*Company, error)
	GetBalance(ctx context.Context, companyID int) (*CompanyBalance, error)
	ListNames(ctx context.Context) ([]CompanyName, error)
}

// CDRClient searches call detail records.
type CDRClient interface {
	Search(ctx context.Context, opts *CDRSearchOptions) ([]CDRRecord, error)
}

// CallRestrictionsClient manages number-level call restrictions. Disable is
// the only removal the platform offers; restriction rows are never deleted.
type CallRestrictionsClient interface {
	List(ctx context.Context, opts *RestrictionListOptions) (*RestrictionPage, error)
	Get(ctx context.Context, restrictionID int) (*CallRestriction, error)
	Create(ctx context.Context, request *RestrictionRequest) (*CallRestriction, error)
	Update(ctx context.Context, restrictionID int, request *RestrictionUpdate) (*CallRestriction, error)
	Disable(ctx context.Context, restrictionID int) error
	History(ctx context.Context, opts *RestrictionListOptions) (*RestrictionPage, error)
}

// LRNClient performs local routing number dips.
type LRNClient interface {
	Lookup(ctx context.Context, phoneNumber string) (*LRNResult, error)
}

// RateDecksClient manages account and carrier rate decks.
type RateDecksClient interface {
	ListAccountDecks(ctx context.Context, opts *RateDeckListOptions) ([]RateDeck, error)
	ListCarrierDecks(ctx context.Context, opts *RateDeckListOptions) ([]RateDeck, error)
	UploadAccountDeck(ctx context.Context, upload *RateDeckUpload) (*RateDeck, error)
	UploadCarrierDeck(ctx context.Context, upload *RateDeckUpload) (*RateDeck, error)
	ProcessAccountDeck(ctx context.Context, accountID, deckID int, filename string, fieldsMap map[string]string) (*RateDeck, error)
	ProcessCarrierDeck(ctx context.Context, carrierID, deckID int, filename string, fieldsMap map[string]string) (*RateDeck, error)
	AccountDeckRows(ctx context.Context, deckID, page int) (*Page[RateDeckRow], error)
	CarrierDeckRows(ctx context.Context, deckID, page int) (*Page[RateDeckRow], error)
	DeleteAccountDeck(ctx context.Context, deckID int) error
	DeleteCarrierDeck(ctx context.Context, deckID int) error
	CheckDeckStatus(ctx context.Context, filename string) (*RateDeckStatus, error)
	DownloadDeck(ctx context.Context, deckID int, local *int) (*RateDeckLink, error)
	DeckFailures(ctx context.Context, deckID int) (*RateDeckLink, error)
}

// AuthClient performs authentication operations. It is purely functional:
// request in, parsed result out. Proxy transitions return a fresh
// token/username pair and the caller swaps the client session with
// Client.SetSession.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	SendPasswordResetEmail(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, encryptedUser, tempPassword, newPassword, confirmPassword string) error
	VerifyOTP(ctx context.Context, encryptedUser string, code int) (*LoginResult, error)
	StartProxy(ctx context.Context, userID int) (*LoginResult, error)
	StopProxy(ctx context.Context) (*LoginResult, error)
}

// Client is the full SIPNAV API surface.
type Client interface {
	Accounts() AccountsClient
	Carriers() CarriersClient
	Companies() CompaniesClient
	CDR() CDRClient
	CallRestrictions() CallRestrictionsClient
	LRN() LRNClient
	RateDecks() RateDecksClient
	Auth() AuthClient

	// Token resolves the current bearer token, triggering a login for
	// username/password clients that have not authenticated yet.
	Token(ctx context.Context) (string, error)

	// SetSession replaces the client's auth session wholesale. Used after
	// StartProxy/StopProxy and VerifyOTP.
	SetSession(session Session)

	// Close releases the underlying connection pool and cache resources.
	Close() error
}

// AccountRequest is the mutable subset of an account for create and update.
type AccountRequest struct {
	Name       string `json:"name,omitempty"        yaml:"name,omitempty"`
	CompanyID  int    `json:"company_id,omitempty"  yaml:"company_id,omitempty"`
	Status     string `json:"status,omitempty"      yaml:"status,omitempty"`
	Type       string `json:"type,omitempty"        yaml:"type,omitempty"`
	TechPrefix string `json:"tech_prefix,omitempty" yaml:"tech_prefix,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"  yaml:"ip_address,omitempty"`
}

// CarrierRequest is the mutable subset of a carrier for create and update.
type CarrierRequest struct {
	Name       string `json:"name,omitempty"        yaml:"name,omitempty"`
	CompanyID  int    `json:"company_id,omitempty"  yaml:"company_id,omitempty"`
	Status     string `json:"status,omitempty"      yaml:"status,omitempty"`
	Type       string `json:"type,omitempty"        yaml:"type,omitempty"`
	TechPrefix string `json:"tech_prefix,omitempty" yaml:"tech_prefix,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"  yaml:"ip_address,omitempty"`
}

// CompanyRequest is the mutable subset of a company for create and update.
type CompanyRequest struct {
	CustomerName string `json:"customer_name,omitempty" yaml:"customer_name,omitempty"`
	Email        string `json:"email,omitempty"         yaml:"email,omitempty"`
	Status       string `json:"status,omitempty"        yaml:"status,omitempty"`
	CreditLimit  string `json:"credit_limit,omitempty"  yaml:"credit_limit,omitempty"`
}

// RateDeckUpload carries a CSV deck to the multipart upload endpoints.
type RateDeckUpload struct {
	// AccountID or CarrierID, depending on the deck kind.
	AccountID int
	CarrierID int

	// Local selects the deck type: 0 international, 1 local.
	Local int

	// Filename is the CSV name reported to the platform.
	Filename string

	// Content streams the CSV bytes.
	Content io.Reader
}
