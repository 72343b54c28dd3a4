package producthunt

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/defeedco/orbit-producthunt/pkg/lib"
	"github.com/defeedco/orbit-producthunt/pkg/sources"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type Client struct {
	httpClient lib.RequestDoer
	baseURL    string
	maxPages   int
	logger     *zerolog.Logger
}

// NewClient returns a client authenticated with the client credentials grant.
// The token is fetched lazily on the first request.
func NewClient(cfg *Config, logger *zerolog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.APIURL, "/")

	credentials := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + "/oauth/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{
		Timeout: cfg.Timeout,
	})
	httpClient := credentials.Client(tokenCtx)
	httpClient.Timeout = cfg.Timeout

	return NewClientWithDoer(baseURL, httpClient, cfg.MaxPages, logger)
}

func NewClientWithDoer(baseURL string, doer lib.RequestDoer, maxPages int, logger *zerolog.Logger) *Client {
	return &Client{
		httpClient: doer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxPages:   maxPages,
		logger:     logger,
	}
}

// Products lists the products the user is a maker of.
func (c *Client) Products(ctx context.Context, userID string) ([]Product, error) {
	res, err := get[userResponse](ctx, c, fmt.Sprintf("/users/%s", url.PathEscape(userID)), nil)
	if err != nil {
		return nil, &lib.UpstreamError{Op: "get user", Err: err}
	}

	products := make([]Product, 0, len(res.User.MakerOf))
	for _, p := range res.User.MakerOf {
		products = append(products, Product{ID: p.ID, Name: p.Name})
	}

	return products, nil
}

// VotesPage returns votes of a post in descending order, older than the given vote ID.
func (c *Client) VotesPage(ctx context.Context, postID string, older string) ([]*Vote, error) {
	res, err := get[votesResponse](ctx, c, fmt.Sprintf("/posts/%s/votes", url.PathEscape(postID)), pageParams(older))
	if err != nil {
		return nil, &lib.UpstreamError{Op: "list votes", Err: err}
	}

	votes := make([]*Vote, 0, len(res.Votes))
	for _, vote := range res.Votes {
		if vote != nil {
			votes = append(votes, vote)
		}
	}

	return votes, nil
}

// CommentsPage returns top-level comments of a post in descending order, older than the given
// comment ID, together with their direct replies.
func (c *Client) CommentsPage(ctx context.Context, postID string, older string) (sources.Page[*Comment], error) {
	res, err := get[commentsResponse](ctx, c, fmt.Sprintf("/posts/%s/comments", url.PathEscape(postID)), pageParams(older))
	if err != nil {
		return sources.Page[*Comment]{}, &lib.UpstreamError{Op: "list comments", Err: err}
	}

	page := sources.Page[*Comment]{Items: make([]*Comment, 0, len(res.Comments))}
	for _, comment := range res.Comments {
		if comment == nil {
			continue
		}
		page.Items = append(page.Items, comment)
		// Replies of replies are not expanded.
		for _, child := range comment.ChildComments {
			if child != nil {
				page.Children = append(page.Children, child)
			}
		}
	}

	return page, nil
}

// Votes fetches every vote of a post.
func (c *Client) Votes(ctx context.Context, postID string) ([]*Vote, error) {
	paginator := &sources.Paginator[*Vote]{
		Fetch: func(ctx context.Context, cursor string) (sources.Page[*Vote], error) {
			votes, err := c.VotesPage(ctx, postID, cursor)
			if err != nil {
				return sources.Page[*Vote]{}, err
			}
			return sources.Page[*Vote]{Items: votes}, nil
		},
		CursorOf: func(v *Vote) string { return strconv.FormatInt(v.ID, 10) },
		MaxPages: c.maxPages,
		Logger:   c.logger,
		Op:       "list votes",
	}

	return paginator.FetchAll(ctx)
}

// Comments fetches every top-level comment of a post followed by all their direct replies.
func (c *Client) Comments(ctx context.Context, postID string) ([]*Comment, error) {
	paginator := &sources.Paginator[*Comment]{
		Fetch: func(ctx context.Context, cursor string) (sources.Page[*Comment], error) {
			return c.CommentsPage(ctx, postID, cursor)
		},
		CursorOf: func(comment *Comment) string { return strconv.FormatInt(comment.ID, 10) },
		MaxPages: c.maxPages,
		Logger:   c.logger,
		Op:       "list comments",
	}

	return paginator.FetchAll(ctx)
}

func pageParams(older string) url.Values {
	params := url.Values{}
	params.Set("order", "desc")
	if older != "" {
		params.Set("older", older)
	}
	return params
}

func get[T any](ctx context.Context, c *Client, path string, params url.Values) (T, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", lib.UserAgent)

	c.logger.Trace().
		Str("url", endpoint).
		Msg("Product Hunt request")

	return lib.DecodeJSON[T](c.httpClient, req)
}
