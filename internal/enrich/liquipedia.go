// Package enrich looks up player role, team and portrait on the
// Liquipedia MediaWiki API. Lookups run after a recruit responds and
// their failures never reach gameplay.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"kukuys-master/internal/core"
	"kukuys-master/internal/game"
)

const (
	apiURL    = "https://liquipedia.net/dota2/api.php"
	userAgent = "KukuysMaster/1.0 (Dota 2 Manager; https://github.com/hancesooome/kukuys-master)"

	// Liquipedia terms: max 1 req/2s general, 1 req/30s for action=parse.
	generalRate = 2100 * time.Millisecond
	parseRate   = 31 * time.Second
)

// knownPlayerTeams keeps teams correct for pool players when the API
// returns HTML or fails outright.
var knownPlayerTeams = map[string]string{
	"Tims":    "OG",
	"Palos":   "Execration",
	"DJ":      "PlayTime",
	"Kuku":    "Kukuys",
	"Gabbi":   "Execration",
	"Armel":   "Blacklist International",
	"Karl":    "T1",
	"Tino":    "Team Secret",
	"Natsumi": "Talon Esports",
	"Skem":    "Bleed Esports",
	"Nikko":   "BOOM Esports",
	"Kokz":    "Omega Gaming",
	"Yowe":    "Motivate.Trust",
	"JG":      "Omega Gaming",
	"Jwl":     "Team Zero",
	"Jing":    "Neon Esports",
	"Abat":    "Talon Esports",
}

type rateLimiter struct {
	mu        sync.Mutex
	lastCall  time.Time
	lastParse time.Time
}

// wait reserves the next allowed call slot and blocks until it arrives,
// or the context ends.
func (r *rateLimiter) wait(ctx context.Context, isParse bool) error {
	r.mu.Lock()
	last, rate := &r.lastCall, generalRate
	if isParse {
		last, rate = &r.lastParse, parseRate
	}
	d := time.Until(last.Add(rate))
	if d < 0 {
		d = 0
	}
	*last = time.Now().Add(d)
	r.mu.Unlock()

	if d == 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type Client struct {
	httpc   *http.Client
	limiter rateLimiter

	images Cache
	teams  Cache
	roles  Cache
}

// NewClient builds a Liquipedia client over the injected caches (one per
// lookup kind, keyed by player name).
func NewClient(images, teams, roles Cache) *Client {
	return &Client{
		httpc:  &http.Client{Timeout: 15 * time.Second},
		images: images,
		teams:  teams,
		roles:  roles,
	}
}

// Lookup fetches role, image and team for a name. Each sub-lookup fails
// independently; a nil field means "leave the current value alone".
func (c *Client) Lookup(ctx context.Context, name string) (core.Enrichment, error) {
	var e core.Enrichment
	if role, err := c.PlayerRole(ctx, name); err == nil && role != "" {
		e.Role = &role
	} else if err != nil {
		log.Printf("liquipedia role lookup failed for %s: %v", name, err)
	}
	if img, err := c.PlayerImage(ctx, name); err == nil && img != "" {
		e.ImageURL = &img
	} else if err != nil {
		log.Printf("liquipedia image lookup failed for %s: %v", name, err)
	}
	if team, err := c.PlayerTeam(ctx, name); err == nil && team != "" {
		e.Team = &team
	} else if err != nil {
		log.Printf("liquipedia team lookup failed for %s: %v", name, err)
	}
	return e, ctx.Err()
}

var errNotJSON = errors.New("non-JSON response")

// getJSON performs a rate-limited API call. HTML bodies (error or captcha
// pages) come back as errNotJSON rather than a decode panic downstream.
func (c *Client) getJSON(ctx context.Context, rawURL string, isParse bool, out any) error {
	if err := c.limiter.wait(ctx, isParse); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(string(body))
	if resp.StatusCode != http.StatusOK || trimmed == "" || strings.HasPrefix(trimmed, "<") {
		return fmt.Errorf("%w (status %d)", errNotJSON, resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}

func pageTitle(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

type imagesResp struct {
	Continue struct {
		Imcontinue string `json:"imcontinue"`
		Continue   string `json:"continue"`
	} `json:"continue"`
	Query struct {
		Pages map[string]struct {
			Images []struct {
				Title string `json:"title"`
			} `json:"images"`
		} `json:"pages"`
	} `json:"query"`
}

type imageInfoResp struct {
	Query struct {
		Pages map[string]struct {
			Imageinfo []struct {
				URL string `json:"url"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// PlayerImage finds a portrait: the first file on the player's page whose
// title starts with the player name, then its direct URL.
func (c *Client) PlayerImage(ctx context.Context, name string) (string, error) {
	if cached, ok := c.images.Get(name); ok {
		return cached, nil
	}

	prefix := "File:" + name + " "
	prefixAlt := "File:" + name + "_"
	matches := func(title string) bool {
		return strings.HasPrefix(title, prefix) ||
			strings.HasPrefix(title, prefixAlt) ||
			title == "File:"+name+".png" ||
			title == "File:"+name+".jpg"
	}

	var portrait string
	imcontinue, continueParam := "", ""
	for {
		q := url.Values{}
		q.Set("action", "query")
		q.Set("titles", pageTitle(name))
		q.Set("prop", "images")
		q.Set("format", "json")
		q.Set("origin", "*")
		q.Set("imlimit", "50")
		if imcontinue != "" {
			q.Set("imcontinue", imcontinue)
		}
		if continueParam != "" {
			q.Set("continue", continueParam)
		}
		var list imagesResp
		if err := c.getJSON(ctx, apiURL+"?"+q.Encode(), false, &list); err != nil {
			return "", err
		}
		for _, page := range list.Query.Pages {
			for _, img := range page.Images {
				if matches(img.Title) {
					portrait = img.Title
					break
				}
			}
		}
		imcontinue = list.Continue.Imcontinue
		continueParam = list.Continue.Continue
		if portrait != "" || imcontinue == "" {
			break
		}
	}
	if portrait == "" {
		return "", nil
	}

	q := url.Values{}
	q.Set("action", "query")
	q.Set("titles", portrait)
	q.Set("prop", "imageinfo")
	q.Set("iiprop", "url")
	q.Set("format", "json")
	q.Set("origin", "*")
	var info imageInfoResp
	if err := c.getJSON(ctx, apiURL+"?"+q.Encode(), false, &info); err != nil {
		return "", err
	}
	for _, page := range info.Query.Pages {
		if len(page.Imageinfo) > 0 && page.Imageinfo[0].URL != "" {
			c.images.Set(name, page.Imageinfo[0].URL)
			return page.Imageinfo[0].URL, nil
		}
	}
	return "", nil
}

type revisionsResp struct {
	Query struct {
		Redirects []struct {
			To string `json:"to"`
		} `json:"redirects"`
		Pages map[string]struct {
			Title     string `json:"title"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"*"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

func (c *Client) pageWikitext(ctx context.Context, title string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("titles", title)
	q.Set("prop", "revisions")
	q.Set("rvprop", "content")
	q.Set("rvslots", "main")
	q.Set("format", "json")
	q.Set("origin", "*")
	q.Set("redirects", "1")
	var data revisionsResp
	if err := c.getJSON(ctx, apiURL+"?"+q.Encode(), false, &data); err != nil {
		return "", err
	}
	for _, page := range data.Query.Pages {
		if len(page.Revisions) > 0 {
			return page.Revisions[0].Slots.Main.Content, nil
		}
	}
	return "", nil
}

type parseResp struct {
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Parse struct {
		Text struct {
			Content string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
}

// PlayerTeam reads |team= from the page wikitext, falls back to parsing
// the rendered page, then the known-team table, and finally "Kukuys" so
// the cache never thrashes on permanently missing pages.
func (c *Client) PlayerTeam(ctx context.Context, name string) (string, error) {
	if cached, ok := c.teams.Get(name); ok {
		return cached, nil
	}

	if wikitext, err := c.pageWikitext(ctx, pageTitle(name)); err == nil && wikitext != "" {
		if team := teamFromWikitext(wikitext); team != "" {
			c.teams.Set(name, team)
			return team, nil
		}
	}

	if team, err := c.teamFromParsedPage(ctx, pageTitle(name)); err == nil && team != "" {
		c.teams.Set(name, team)
		return team, nil
	}

	if team, ok := knownPlayerTeams[name]; ok {
		c.teams.Set(name, team)
		return team, nil
	}
	c.teams.Set(name, game.KukuysTeam)
	return game.KukuysTeam, nil
}

func (c *Client) teamFromParsedPage(ctx context.Context, title string) (string, error) {
	q := url.Values{}
	q.Set("action", "parse")
	q.Set("page", title)
	q.Set("prop", "text")
	q.Set("format", "json")
	q.Set("origin", "*")
	var data parseResp
	if err := c.getJSON(ctx, apiURL+"?"+q.Encode(), true, &data); err != nil {
		return "", err
	}
	if data.Error != nil {
		return "", nil
	}
	html := strings.NewReplacer("&#160;", " ", "&nbsp;", " ").Replace(data.Parse.Text.Content)
	return teamFromHTML(html), nil
}

// PlayerRole reads |role= / |roles= from the wikitext and maps it to one
// of the five game roles. Unknown or unmappable roles (e.g. Coach) yield
// an empty string.
func (c *Client) PlayerRole(ctx context.Context, name string) (string, error) {
	if cached, ok := c.roles.Get(name); ok {
		return cached, nil
	}
	wikitext, err := c.pageWikitext(ctx, pageTitle(name))
	if err != nil || wikitext == "" {
		return "", err
	}
	role := roleFromWikitext(wikitext)
	if role != "" {
		c.roles.Set(name, role)
	}
	return role, nil
}
