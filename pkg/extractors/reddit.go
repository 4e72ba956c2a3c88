package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxRedditComments bounds how much of a thread is taken after the post.
const maxRedditComments = 40

// shadowRootSelector matches serialized open shadow roots.
const shadowRootSelector = `template[shadowrootmode]`

var (
	redditTitleSelectors = []string{
		`h1[slot="title"]`,
		`[data-test-id="post-content"] h1`,
		`[data-adclicklocation="title"] h1`,
		`.thing.link a.title`,
		`p.title a.title`,
	}

	// Current markup renders the body as slotted light DOM.
	redditBodySelectors = []string{
		`shreddit-post [slot="text-body"]`,
		`div[id$="-post-rtjson-content"]`,
	}

	// Inside the post's shadow tree.
	redditShadowBodySelectors = []string{
		`[slot="text-body"]`,
		`div[id$="-post-rtjson-content"]`,
		`.md`,
	}

	// Redesign and old.reddit markups.
	redditLegacyBodySelectors = []string{
		`[data-test-id="post-content"] [data-click-id="text"]`,
		`[data-test-id="post-content"] .RichTextJSON-root`,
		`.thing.link .expando .usertext-body .md`,
		`.thing.link .usertext-body .md`,
	}

	redditCommentSelectors = []string{
		`shreddit-comment [slot="comment"]`,
		`[data-testid="comment"]`,
		`.commentarea .comment .usertext-body .md`,
	}
)

// ExtractReddit reads a Reddit post and the top of its comment thread.
func ExtractReddit(doc *goquery.Document) Result {
	if doc == nil {
		return Result{}
	}
	root := doc.Selection

	res := Result{Title: redditTitle(root)}

	body := firstText(root, redditBodySelectors)
	if body == "" {
		root.Find("shreddit-post").Find(shadowRootSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			body = firstText(s, redditShadowBodySelectors)
			return body == ""
		})
	}
	if body == "" {
		body = firstText(root, redditLegacyBodySelectors)
	}

	parts := make([]string, 0, maxRedditComments+1)
	if body != "" {
		parts = append(parts, body)
	}
	parts = append(parts, redditComments(root)...)
	res.Text = strings.Join(parts, "\n\n")
	return res
}

func redditTitle(root *goquery.Selection) string {
	if t, ok := root.Find("shreddit-post[post-title]").First().Attr("post-title"); ok && strings.TrimSpace(t) != "" {
		return squash(t)
	}
	for _, sel := range redditTitleSelectors {
		if t := squash(root.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func redditComments(root *goquery.Selection) []string {
	for _, sel := range redditCommentSelectors {
		var comments []string
		root.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if text := textOf(s); text != "" {
				comments = append(comments, text)
			}
			return len(comments) < maxRedditComments
		})
		if len(comments) > 0 {
			return comments
		}
	}
	return nil
}
