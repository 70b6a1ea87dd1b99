package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/common"
	"github.com/pt428/recipes/internal/logging"
)

// PlaceholderImageURL is shown for recipes without an image.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1546548970-71785318a17b?w=800&h=600&fit=crop"

const maxResponseSize = 10 << 20

type HTTPClient struct {
	baseURL    string
	storageURL string
	http       *http.Client
	tokens     TokenStore
	policy     UnauthorizedPolicy
	logger     logging.Logger
	requestID  func() string
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithUnauthorizedPolicy(p UnauthorizedPolicy) Option {
	return func(c *HTTPClient) { c.policy = p }
}

func WithStorageURL(u string) Option {
	return func(c *HTTPClient) { c.storageURL = strings.TrimRight(u, "/") }
}

// NewHTTPClient builds a client for the API rooted at baseURL. Without
// WithUnauthorizedPolicy a 401 only clears the stored token.
func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		tokens:    tokens,
		logger:    logging.Discard(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy == nil {
		c.policy = ClearTokenAndRedirect(tokens, nil, c.logger)
	}
	return c
}

type request struct {
	method string
	path   string
	query  string
	body   any
	auth   bool
	image  *models.ImageFile
}

func (c *HTTPClient) newRequest(ctx context.Context, r request) (*http.Request, error) {
	target := c.baseURL + r.path
	if r.query != "" {
		target += "?" + r.query
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.image != nil:
		buf, ct, err := multipartImage(*r.image)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(common.RequestIDHeaderName, c.requestID())

	if r.auth {
		token, err := c.tokens.Get(ctx)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	return req, nil
}

func multipartImage(img models.ImageFile) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	ct := img.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Name))
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", fmt.Errorf("write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}

// do sends r and returns the unwrapped payload of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, r request) (payload, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return payload{}, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed",
			"method", r.method, "path", r.path, "request_id", req.Header.Get(common.RequestIDHeaderName),
			"duration", time.Since(start), "error", err)
		return payload{}, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))

	c.logger.Debug(ctx, "request",
		"method", r.method, "path", r.path, "status", resp.StatusCode,
		"request_id", req.Header.Get(common.RequestIDHeaderName), "duration", time.Since(start))

	if err != nil {
		return payload{}, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseErrorResponse(resp.StatusCode, body)
		if apiErr.Kind == KindUnauthorized {
			c.policy.OnUnauthorized(ctx)
		}
		return payload{}, apiErr
	}

	return unwrap(body), nil
}

// into decodes the payload data of a 2xx response into out.
func (c *HTTPClient) into(ctx context.Context, r request, out any) (payload, error) {
	p, err := c.do(ctx, r)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(p.data, out); err != nil {
		return p, &Error{Kind: KindHTTP, Status: http.StatusOK, Message: msgInvalidResult, Err: err}
	}
	return p, nil
}

func (c *HTTPClient) page(ctx context.Context, r request) (*models.RecipePage, error) {
	p, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	page, err := decodePage(p.data)
	if err != nil {
		return nil, &Error{Kind: KindHTTP, Status: http.StatusOK, Message: msgInvalidResult, Err: err}
	}
	return page, nil
}

func pageQuery(page, perPage int) string {
	return "page=" + strconv.Itoa(page) + "&per_page=" + strconv.Itoa(perPage)
}

// SearchQuery builds the query string of a search request. Parameters keep
// a fixed order: q, tags, category_id, page, per_page.
func SearchQuery(params models.SearchParams, page, perPage int) string {
	var parts []string

	if strings.TrimSpace(params.Query) != "" {
		parts = append(parts, "q="+url.QueryEscape(params.Query))
	}
	if len(params.TagIDs) > 0 {
		ids := make([]string, len(params.TagIDs))
		for i, id := range params.TagIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		parts = append(parts, "tags="+url.QueryEscape(strings.Join(ids, ",")))
	}
	if params.CategoryID != 0 {
		parts = append(parts, "category_id="+strconv.FormatInt(params.CategoryID, 10))
	}
	parts = append(parts, pageQuery(page, perPage))

	return strings.Join(parts, "&")
}

func recipePath(id int64, suffix string) string {
	return "/recipes/" + strconv.FormatInt(id, 10) + suffix
}

func (c *HTTPClient) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if _, err := c.into(ctx, request{method: http.MethodPost, path: "/login", body: creds}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if _, err := c.into(ctx, request{method: http.MethodPost, path: "/register", body: data}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/logout", auth: true})
	return err
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if _, err := c.into(ctx, request{method: http.MethodGet, path: "/user", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error) {
	var out models.ProfileResult
	p, err := c.into(ctx, request{method: http.MethodPut, path: "/user", body: upd, auth: true}, &out)
	if err != nil {
		return nil, err
	}
	if out.Message == "" {
		out.Message = p.message
	}
	return &out, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, password string) (string, error) {
	body := struct {
		Password string `json:"password"`
	}{Password: password}

	var out struct {
		Message string `json:"message"`
	}
	p, err := c.do(ctx, request{method: http.MethodDelete, path: "/user", body: body, auth: true})
	if err != nil {
		return "", err
	}
	if isObject(p.data) {
		_ = json.Unmarshal(p.data, &out)
	}
	if out.Message == "" {
		out.Message = p.message
	}
	return out.Message, nil
}

func (c *HTTPClient) Recipes(ctx context.Context, page, perPage int) (*models.RecipePage, error) {
	return c.page(ctx, request{method: http.MethodGet, path: "/recipes", query: pageQuery(page, perPage), auth: true})
}

func (c *HTTPClient) SearchRecipes(ctx context.Context, params models.SearchParams, page, perPage int) (*models.RecipePage, error) {
	return c.page(ctx, request{method: http.MethodGet, path: "/recipes/search", query: SearchQuery(params, page, perPage), auth: true})
}

func (c *HTTPClient) MyRecipes(ctx context.Context, page, perPage int) (*models.RecipePage, error) {
	return c.page(ctx, request{method: http.MethodGet, path: "/user/recipes", query: pageQuery(page, perPage), auth: true})
}

func (c *HTTPClient) Recipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var out models.Recipe
	if _, err := c.into(ctx, request{method: http.MethodGet, path: recipePath(id, ""), auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	var out models.Recipe
	if _, err := c.into(ctx, request{method: http.MethodPost, path: "/recipes", body: in, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error) {
	var out models.Recipe
	if _, err := c.into(ctx, request{method: http.MethodPut, path: recipePath(id, ""), body: in, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: recipePath(id, ""), auth: true})
	return err
}

func (c *HTTPClient) UploadRecipeImage(ctx context.Context, id int64, img models.ImageFile) (*models.ImageUpload, error) {
	var out models.ImageUpload
	if _, err := c.into(ctx, request{method: http.MethodPost, path: recipePath(id, "/image"), image: &img, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) EnableShareLink(ctx context.Context, id int64) (*models.ShareLink, error) {
	var out models.ShareLink
	if _, err := c.into(ctx, request{method: http.MethodPost, path: recipePath(id, "/share"), auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DisableShareLink(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: recipePath(id, "/share"), auth: true})
	return err
}

func (c *HTTPClient) RecipeByShareToken(ctx context.Context, token string) (*models.Recipe, error) {
	var out models.Recipe
	if _, err := c.into(ctx, request{method: http.MethodGet, path: "/recipes/by-link/" + url.PathEscape(token)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Favorites(ctx context.Context, page, perPage int) (*models.RecipePage, error) {
	return c.page(ctx, request{method: http.MethodGet, path: "/favorites", query: pageQuery(page, perPage), auth: true})
}

func (c *HTTPClient) FavoriteIDs(ctx context.Context) ([]int64, error) {
	p, err := c.do(ctx, request{method: http.MethodGet, path: "/favorites/ids", auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList[int64](p.data), nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: recipePath(id, "/favorite"), auth: true})
	return err
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: recipePath(id, "/favorite"), auth: true})
	return err
}

func (c *HTTPClient) IsFavorite(ctx context.Context, id int64) (bool, error) {
	var out struct {
		IsFavorite bool `json:"is_favorite"`
	}
	if _, err := c.into(ctx, request{method: http.MethodGet, path: recipePath(id, "/favorite"), auth: true}, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}

func (c *HTTPClient) Tags(ctx context.Context) ([]models.Tag, error) {
	p, err := c.do(ctx, request{method: http.MethodGet, path: "/tags"})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Tag](p.data), nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]models.Category, error) {
	p, err := c.do(ctx, request{method: http.MethodGet, path: "/categories"})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Category](p.data), nil
}

func (c *HTTPClient) ImageURL(path string) string {
	if path == "" {
		return PlaceholderImageURL
	}
	return c.storageURL + "/" + strings.TrimLeft(path, "/")
}
