package gwgp

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Pattern describes elements by tag name and one class token
type Pattern struct {
	Tag   string
	Class string
}

// XPath renders the pattern as a query relative to the scope node.
// The class is matched as a whole token, "city" does not match "cityname".
func (p Pattern) XPath() string {
	return fmt.Sprintf("descendant::%s[contains(concat(' ', normalize-space(@class), ' '), ' %s ')]", p.Tag, p.Class)
}

func (p Pattern) CSS() string {
	return fmt.Sprintf("%s.%s", p.Tag, p.Class)
}

// Patterns holds everything the extractor needs to find in the page
type Patterns struct {
	Row      Pattern // one row per city
	CityName Pattern // city cell inside the row
	Price    Pattern // regular, premium and diesel cells inside the row
	Date     Pattern // "as of" label of the whole table
}

var DefaultPatterns = Patterns{
	Row:      Pattern{Tag: "tr", Class: "city"},
	CityName: Pattern{Tag: "td", Class: "gwgp-cityname"},
	Price:    Pattern{Tag: "td", Class: "gwgp-price"},
	Date:     Pattern{Tag: "div", Class: "price-date"},
}

// Selector runs structural queries over a parsed document
type Selector interface {
	// SelectAll returns descendants of scope matching the pattern in document order
	SelectAll(scope *html.Node, p Pattern) ([]*html.Node, error)
	// InnerText returns concatenated text of the node
	InnerText(n *html.Node) string
	// TextSegments returns all descendant text nodes in document order
	TextSegments(n *html.Node) []string
}

const (
	SelectorXPath = "xpath"
	SelectorCSS   = "css"
)

func NewSelector(name string) (Selector, error) {
	switch name {
	case SelectorXPath, "":
		return &XPathSelector{}, nil
	case SelectorCSS:
		return &CSSSelector{}, nil
	default:
		return nil, fmt.Errorf("unknown selector backend %q", name)
	}
}

// XPathSelector is backed by htmlquery
type XPathSelector struct{}

func (x *XPathSelector) SelectAll(scope *html.Node, p Pattern) ([]*html.Node, error) {
	els, err := htmlquery.QueryAll(scope, p.XPath())
	if err != nil {
		return nil, fmt.Errorf("could not query %s: %w", p.CSS(), err)
	}

	return els, nil
}

func (x *XPathSelector) InnerText(n *html.Node) string {
	return htmlquery.InnerText(n)
}

func (x *XPathSelector) TextSegments(n *html.Node) []string {
	nodes := htmlquery.Find(n, "descendant::text()")
	segments := make([]string, 0, len(nodes))
	for _, node := range nodes {
		segments = append(segments, node.Data)
	}

	return segments
}

// CSSSelector is backed by goquery and cascadia
type CSSSelector struct{}

func (c *CSSSelector) SelectAll(scope *html.Node, p Pattern) ([]*html.Node, error) {
	matcher, err := cascadia.Compile(p.CSS())
	if err != nil {
		return nil, fmt.Errorf("could not compile %s: %w", p.CSS(), err)
	}

	return goquery.NewDocumentFromNode(scope).FindMatcher(matcher).Nodes, nil
}

func (c *CSSSelector) InnerText(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}

func (c *CSSSelector) TextSegments(n *html.Node) []string {
	segments := []string{}

	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, child *goquery.Selection) {
			switch child.Nodes[0].Type {
			case html.TextNode:
				segments = append(segments, child.Nodes[0].Data)
			case html.ElementNode:
				walk(child)
			}
		})
	}
	walk(goquery.NewDocumentFromNode(n).Selection)

	return segments
}
