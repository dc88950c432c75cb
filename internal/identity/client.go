package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/brvagas/jobhub/internal/docstore"
	"github.com/brvagas/jobhub/internal/localstore"
	"github.com/brvagas/jobhub/pkg/log"
)

// DefaultTimeout bounds a single identity request.
const DefaultTimeout = 10 * time.Second

// Options configures the identity client.
type Options struct {
	// BaseURL is the REST endpoint root, e.g.
	// https://identitytoolkit.googleapis.com/v1.
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// Cache persists the session between runs. Optional.
	Cache *localstore.Store
	// Docs backs the admin-role lookup and the basic user seed document.
	Docs   docstore.Store
	Logger *log.Logger
}

// Client talks to a Firebase-style identity REST endpoint and caches the
// session locally so a run restores it without re-authenticating.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *localstore.Store
	docs       docstore.Store
	logger     *log.Logger
	validate   *validator.Validate

	mu      sync.Mutex
	user    *User
	subs    map[int]func(*User)
	nextSub int
}

var _ Provider = (*Client)(nil)

// NewClient builds the client and restores any cached session. A cached
// session whose ID token already expired is discarded. Cache problems are
// logged and leave the client anonymous.
func NewClient(ctx context.Context, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      opts.Cache,
		docs:       opts.Docs,
		logger:     opts.Logger,
		validate:   validator.New(),
		subs:       make(map[int]func(*User)),
	}
	c.restoreSession(ctx)
	return c
}

func (c *Client) restoreSession(ctx context.Context) {
	if c.cache == nil {
		return
	}
	raw, err := c.cache.Get(ctx, localstore.KeyUser)
	if errors.Is(err, localstore.ErrNotFound) {
		return
	}
	if err != nil {
		c.logger.Warn("failed to read cached session: %v", err)
		return
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		c.logger.Warn("discarding corrupt cached session: %v", err)
		c.clearCache(ctx)
		return
	}
	if !u.ExpiresAt.IsZero() && time.Now().After(u.ExpiresAt) {
		c.logger.Debug("cached session for %s expired, discarding", u.Email)
		c.clearCache(ctx)
		return
	}
	c.mu.Lock()
	c.user = &u
	c.mu.Unlock()
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// signInRequest doubles as the sign-up payload; the provider ignores
// DisplayName on sign-in.
type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DisplayName       string `json:"displayName,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (User, error) {
	if err := c.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return User{}, newAuthError(CodeInvalidCredentials, err)
	}
	u, err := c.authenticate(ctx, "accounts:signInWithPassword", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return User{}, err
	}
	c.setUser(ctx, &u)
	return u, nil
}

func (c *Client) SignUp(ctx context.Context, name, email, password string) (User, error) {
	if err := c.validate.Var(email, "required,email"); err != nil {
		return User{}, newAuthError(CodeInvalidCredentials, err)
	}
	if err := c.validate.Var(password, "required,min=6"); err != nil {
		return User{}, newAuthError(CodeWeakPassword, err)
	}
	u, err := c.authenticate(ctx, "accounts:signUp", signInRequest{
		Email:             email,
		Password:          password,
		DisplayName:       name,
		ReturnSecureToken: true,
	})
	if err != nil {
		return User{}, err
	}
	if u.DisplayName == "" {
		u.DisplayName = name
	}
	c.seedUserDocument(ctx, u)
	c.setUser(ctx, &u)
	return u, nil
}

func (c *Client) authenticate(ctx context.Context, endpoint string, payload signInRequest) (User, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return User{}, newAuthError(CodeGeneric, err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return User{}, newAuthError(CodeGeneric, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, newAuthError(CodeNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var perr providerError
		if err := json.NewDecoder(resp.Body).Decode(&perr); err != nil {
			return User{}, newAuthError(CodeGeneric, err)
		}
		// The provider may suffix the identifier with an explanation,
		// e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : Access temporarily disabled".
		raw, _, _ := strings.Cut(perr.Error.Message, " ")
		raw = strings.TrimSuffix(raw, ":")
		return User{}, newAuthError(providerCode(raw), nil)
	}

	var sr signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return User{}, newAuthError(CodeGeneric, err)
	}

	u := User{
		UID:          sr.LocalID,
		Email:        sr.Email,
		DisplayName:  sr.DisplayName,
		IDToken:      sr.IDToken,
		RefreshToken: sr.RefreshToken,
	}
	if secs, err := strconv.Atoi(sr.ExpiresIn); err == nil && secs > 0 {
		u.ExpiresAt = time.Now().Add(time.Duration(secs) * time.Second)
	} else {
		u.ExpiresAt = tokenExpiry(sr.IDToken)
	}
	return u, nil
}

// tokenExpiry peeks at the exp claim without verifying the signature.
// Verification is the provider's job; the client only needs to know when to
// drop a stale cached session.
func tokenExpiry(idToken string) time.Time {
	if idToken == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func (c *Client) SignOut(ctx context.Context) error {
	c.setUser(ctx, nil)
	return nil
}

func (c *Client) CurrentUser() (User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// OnAuthStateChange registers fn and invokes it immediately with the current
// state. The returned function removes the listener.
func (c *Client) OnAuthStateChange(fn func(*User)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	current := c.user
	c.mu.Unlock()

	fn(current)

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// IsAdmin reports whether an admins/{uid} document exists.
func (c *Client) IsAdmin(ctx context.Context, uid string) (bool, error) {
	return docstore.Exists(ctx, c.docs, docstore.CollectionAdmins, uid)
}

func (c *Client) setUser(ctx context.Context, u *User) {
	c.mu.Lock()
	c.user = u
	subs := make([]func(*User), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	if u == nil {
		c.clearCache(ctx)
	} else {
		c.cacheUser(ctx, *u)
	}
	for _, fn := range subs {
		fn(u)
	}
}

func (c *Client) cacheUser(ctx context.Context, u User) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(u)
	if err != nil {
		c.logger.Warn("failed to encode session cache: %v", err)
		return
	}
	if err := c.cache.Set(ctx, localstore.KeyUser, string(raw)); err != nil {
		c.logger.Warn("failed to cache session: %v", err)
	}
}

func (c *Client) clearCache(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, localstore.KeyUser); err != nil {
		c.logger.Warn("failed to clear cached session: %v", err)
	}
}

type userDocument struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// seedUserDocument writes the basic users/{uid} record on sign-up. Best
// effort: a failure is logged, the account itself already exists.
func (c *Client) seedUserDocument(ctx context.Context, u User) {
	if c.docs == nil {
		return
	}
	raw, err := json.Marshal(userDocument{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		c.logger.Warn("failed to encode user document: %v", err)
		return
	}
	if err := c.docs.Set(ctx, docstore.CollectionUsers, u.UID, raw); err != nil {
		c.logger.Warn("failed to seed user document for %s: %v", u.UID, err)
	}
}
