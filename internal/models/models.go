package models

// Objective is the campaign goal. Conversion campaigns require music.
type Objective string

const (
	ObjectiveTraffic     Objective = "traffic"
	ObjectiveConversions Objective = "conversions"
)

// Objectives lists every valid campaign objective.
var Objectives = []Objective{ObjectiveTraffic, ObjectiveConversions}

// Valid reports whether o is a known objective.
func (o Objective) Valid() bool {
	for _, v := range Objectives {
		if o == v {
			return true
		}
	}
	return false
}

// CallToAction is the button label shown on the ad.
type CallToAction string

const (
	CTAShopNow   CallToAction = "shop_now"
	CTADownload  CallToAction = "download"
	CTALearnMore CallToAction = "learn_more"
	CTAContactUs CallToAction = "contact_us"
	CTASignUp    CallToAction = "sign_up"
	CTAWatchMore CallToAction = "watch_more"
)

// CallToActions lists every valid call-to-action.
var CallToActions = []CallToAction{
	CTAShopNow, CTADownload, CTALearnMore, CTAContactUs, CTASignUp, CTAWatchMore,
}

// Valid reports whether c is a known call-to-action.
func (c CallToAction) Valid() bool {
	for _, v := range CallToActions {
		if c == v {
			return true
		}
	}
	return false
}

// MusicOption selects how the ad sources its music.
type MusicOption string

const (
	MusicExisting MusicOption = "existing" // Licensed track from the remote catalog
	MusicCustom   MusicOption = "custom"   // Locally supplied audio file
	MusicNone     MusicOption = "none"
)

// MusicOptions lists every valid music option.
var MusicOptions = []MusicOption{MusicExisting, MusicCustom, MusicNone}

// Valid reports whether m is a known music option.
func (m MusicOption) Valid() bool {
	for _, v := range MusicOptions {
		if m == v {
			return true
		}
	}
	return false
}

// FileRef describes a locally supplied audio file. The file itself never
// leaves the caller; only its metadata is checked and an identifier is minted.
type FileRef struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// AdDraft is one ad creative as collected from the advertiser. Treated as
// immutable for the duration of a submission attempt.
type AdDraft struct {
	CampaignName string       `json:"campaign_name"`
	Objective    Objective    `json:"objective"`
	AdText       string       `json:"ad_text"`
	CTA          CallToAction `json:"cta"`
	MusicOption  MusicOption  `json:"music_option"`
	MusicID      string       `json:"music_id,omitempty"`
	CustomMusic  *FileRef     `json:"custom_music,omitempty"`
}

// Violation is a single field rule failure.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violation rule identifiers.
const (
	RuleRequired      = "required"
	RuleTooShort      = "too_short"
	RuleTooLong       = "too_long"
	RuleInvalidChars  = "invalid_chars"
	RuleTooManyEmojis = "too_many_emojis"
	RuleInvalidOption = "invalid_option"
	RuleMusicRequired = "music_required"
)

// ValidationOutcome is the ordered set of violations from one validation
// pass. An empty outcome means the draft is valid. Produced fresh on every
// pass and never mutated in place.
type ValidationOutcome []Violation

// Valid reports whether the outcome contains no violations.
func (o ValidationOutcome) Valid() bool { return len(o) == 0 }

// First returns the first violation, or nil for an empty outcome.
func (o ValidationOutcome) First() *Violation {
	if len(o) == 0 {
		return nil
	}
	return &o[0]
}

// VerdictState is the lifecycle state of a music validation verdict.
type VerdictState string

const (
	VerdictIdle       VerdictState = "idle"
	VerdictValidating VerdictState = "validating"
	VerdictValid      VerdictState = "valid"
	VerdictInvalid    VerdictState = "invalid"
)

// VerdictReason explains an invalid verdict.
type VerdictReason string

const (
	ReasonInvalidFormat         VerdictReason = "invalid_format"
	ReasonNotFound              VerdictReason = "not_found"
	ReasonAPIError              VerdictReason = "api_error"
	ReasonFileTooLarge          VerdictReason = "file_too_large"
	ReasonInvalidType           VerdictReason = "invalid_type"
	ReasonNotAllowedConversions VerdictReason = "not_allowed_for_conversions"
)

// MusicVerdict is the authoritative validation result for a music identifier.
// A newer verdict supersedes any earlier one for the same field.
type MusicVerdict struct {
	State   VerdictState  `json:"state"`
	MusicID string        `json:"music_id,omitempty"`
	Reason  VerdictReason `json:"reason,omitempty"`
	Message string        `json:"message,omitempty"`
}

// ErrorType classifies an AppError.
type ErrorType string

const (
	ErrAuth       ErrorType = "auth_error"
	ErrValidation ErrorType = "validation_error"
	ErrAPI        ErrorType = "api_error"
)

// ActionKind tags the remedial action attached to an actionable error. The
// presentation layer resolves the tag to an actual side effect.
type ActionKind string

const (
	ActionReconnect         ActionKind = "reconnect"
	ActionRefresh           ActionKind = "refresh"
	ActionReviewPermissions ActionKind = "review_permissions"
)

// ErrorAction is a suggested remedial action the caller may offer to the user.
type ErrorAction struct {
	Kind  ActionKind `json:"kind"`
	Label string     `json:"label"`
}

// AppError is an immutable, typed application error. Every failure path in
// the submission and token flows yields one.
type AppError struct {
	Type       ErrorType    `json:"type"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Field      string       `json:"field,omitempty"`
	Actionable bool         `json:"actionable"`
	Action     *ErrorAction `json:"action,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// RemoteError is a failure reported by the ads platform in a submit response
// envelope, as opposed to a transport failure.
type RemoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Code + ": " + e.Message
}

// TokenGrant is the response of a code exchange or token refresh.
type TokenGrant struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Lifetime in seconds
	Scope        string `json:"scope,omitempty"`
}

// TokenPhase is the lifecycle phase of the OAuth session.
type TokenPhase string

const (
	PhaseUnauthenticated TokenPhase = "unauthenticated"
	PhasePendingExchange TokenPhase = "pending_exchange"
	PhaseAuthenticated   TokenPhase = "authenticated"
	PhaseExpired         TokenPhase = "expired"
	PhaseRefreshing      TokenPhase = "refreshing"
)

// TokenState is a snapshot of the OAuth session. ExpiresAt is epoch
// milliseconds; zero means the grant carried no expiry.
type TokenState struct {
	Phase        TokenPhase `json:"phase"`
	AccessToken  string     `json:"access_token,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    int64      `json:"expires_at,omitempty"`
}

// TokenValidity is the result of a pure token validity check.
type TokenValidity string

const (
	TokenMissing TokenValidity = "no_token"
	TokenExpired TokenValidity = "expired"
	TokenValid   TokenValidity = "valid"
)

// AdReceipt is returned by the ads platform on a successful submission.
type AdReceipt struct {
	AdID                string `json:"adId"`
	Status              string `json:"status"`
	EstimatedReviewTime string `json:"estimatedReviewTime"`
}
