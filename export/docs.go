package export

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"wallestreet/research"
)

// TokenStore persists the Google OAuth token between runs. A Load with no
// stored token returns (nil, nil).
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
}

// DocResult is the outcome of a Google Docs export: either a created
// document or a request to (re-)authenticate. The caller surfaces AuthURL
// and abandons the attempt; there is no automatic post-auth retry.
type DocResult struct {
	NeedsAuth  bool
	AuthURL    string
	DocumentID string
	URL        string
}

// DocsExporter creates a Google Doc from a result bundle.
type DocsExporter struct {
	oauth  *oauth2.Config
	tokens TokenStore
}

// NewDocsExporter builds an exporter from OAuth client credentials. The
// redirect URL is where Google sends the auth code after consent.
func NewDocsExporter(clientID, clientSecret, redirectURL string, tokens TokenStore) *DocsExporter {
	return &DocsExporter{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{docs.DocumentsScope, docs.DriveFileScope},
		},
		tokens: tokens,
	}
}

// Configured reports whether OAuth client credentials are present.
func (e *DocsExporter) Configured() bool {
	return e.oauth.ClientID != ""
}

// AuthURL returns the consent URL the user must open to authorize the
// exporter. Offline access with forced consent, so a refresh token comes
// back with the first exchange.
func (e *DocsExporter) AuthURL() string {
	return e.oauth.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode trades the pasted auth code for a token and persists it.
func (e *DocsExporter) ExchangeCode(ctx context.Context, code string) error {
	token, err := e.oauth.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("exchange auth code: %w", err)
	}
	if err := e.tokens.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Export creates a new Google Doc holding the bundle. With no stored token,
// or a token Google rejects, the result asks for authentication instead of
// failing.
func (e *DocsExporter) Export(ctx context.Context, bundle *research.ResultBundle) (*DocResult, error) {
	token, err := e.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token == nil {
		return &DocResult{NeedsAuth: true, AuthURL: e.AuthURL()}, nil
	}

	svc, err := docs.NewService(ctx, option.WithHTTPClient(e.oauth.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}

	doc, err := svc.Documents.Create(&docs.Document{
		Title: "Research Results - " + bundle.GeneratedAt.Format("1/2/2006"),
	}).Context(ctx).Do()
	if err != nil {
		if isAuthError(err) {
			return &DocResult{NeedsAuth: true, AuthURL: e.AuthURL()}, nil
		}
		return nil, fmt.Errorf("create document: %w", err)
	}

	_, err = svc.Documents.BatchUpdate(doc.DocumentId, &docs.BatchUpdateDocumentRequest{
		Requests: buildDocRequests(bundle),
	}).Context(ctx).Do()
	if err != nil {
		if isAuthError(err) {
			return &DocResult{NeedsAuth: true, AuthURL: e.AuthURL()}, nil
		}
		return nil, fmt.Errorf("populate document: %w", err)
	}

	return &DocResult{
		DocumentID: doc.DocumentId,
		URL:        "https://docs.google.com/document/d/" + doc.DocumentId + "/edit",
	}, nil
}

// buildDocRequests lays the bundle out as a batchUpdate: a title block,
// then per response a HEADING_2 agent name, the content paragraph and a
// bulleted key-points list. Docs API indexes count UTF-16 code units, so
// cursor arithmetic goes through utf16Len rather than len.
func buildDocRequests(bundle *research.ResultBundle) []*docs.Request {
	var requests []*docs.Request
	index := int64(1)

	insert := func(text string) {
		requests = append(requests, &docs.Request{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: index},
				Text:     text,
			},
		})
		index += utf16Len(text)
	}

	header := fmt.Sprintf("Research Query: %s\n\nGenerated on: %s\n\n",
		bundle.Query, bundle.GeneratedAt.Format("Jan 2, 2006 3:04 PM"))
	insert(header)

	for _, resp := range bundle.Responses {
		name := "\n" + resp.Agent + "\n"
		start := index
		insert(name)
		requests = append(requests, &docs.Request{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range: &docs.Range{
					StartIndex: start,
					EndIndex:   start + utf16Len(name),
				},
				ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: "HEADING_2"},
				Fields:         "namedStyleType",
			},
		})

		insert(resp.Content + "\n\n")

		if len(resp.Points) > 0 {
			var sb strings.Builder
			sb.WriteString("Key Points:\n")
			for _, point := range resp.Points {
				sb.WriteString("• ")
				sb.WriteString(point)
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
			insert(sb.String())
		}
	}

	return requests
}

func utf16Len(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}

// isAuthError reports whether a Docs API failure means the stored token is
// no longer usable, as opposed to a genuine export failure.
func isAuthError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{"invalid_grant", "401", "unauthorized", "invalid Credentials", "token expired"} {
		if strings.Contains(strings.ToLower(msg), strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
