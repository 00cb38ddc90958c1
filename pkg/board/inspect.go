package board

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/entrhq/tilted/pkg/uci"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	squareSampleLimit = 5
	pieceSampleLimit  = 3
)

// Inspection describes the board markup as the page currently renders it.
type Inspection struct {
	URL           string            `json:"url"`
	Selector      string            `json:"selector"`
	BoardClass    string            `json:"board_class"`
	Orientation   string            `json:"orientation"`
	OrientationBy string            `json:"orientation_method,omitempty"`
	Geometry      *Geometry         `json:"geometry,omitempty"`
	BoardCount    int               `json:"board_elements"`
	SquareCount   int               `json:"square_elements"`
	PieceCount    int               `json:"piece_elements"`
	SquareSamples []string          `json:"square_samples"`
	PieceSamples  []string          `json:"piece_samples"`
	Pieces        map[string]string `json:"pieces,omitempty"`
	Highlighted   []string          `json:"highlighted,omitempty"`
}

type inspectResult struct {
	Boards   int    `json:"boards"`
	Squares  int    `json:"squares"`
	Pieces   int    `json:"pieces"`
	Selector string `json:"selector"`
	HTML     string `json:"html"`
}

// Inspect dumps the board structure for troubleshooting selectors.
func (c *ChessCom) Inspect(ctx context.Context) (*Inspection, error) {
	result, err := c.surface.Evaluate(ctx, inspectScript, c.opts.Selectors)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect page: %w", err)
	}

	var r inspectResult
	if err := decode(result, &r); err != nil {
		return nil, err
	}

	insp := &Inspection{
		URL:         c.surface.URL(),
		Selector:    r.Selector,
		BoardCount:  r.Boards,
		SquareCount: r.Squares,
		PieceCount:  r.Pieces,
	}

	if r.HTML != "" {
		if err := insp.parseMarkup(r.HTML); err != nil {
			return nil, err
		}
	}

	if g, err := c.Geometry(ctx); err == nil {
		insp.Geometry = &g
		insp.Orientation = g.Orientation.String()
		insp.OrientationBy = g.OrientationMethod
	} else {
		c.logger.Debugf("inspect: %v", err)
		insp.Orientation = "unknown"
	}

	return insp, nil
}

// parseMarkup walks the board's outer HTML collecting class samples, piece
// placement and highlighted squares.
func (insp *Inspection) parseMarkup(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return fmt.Errorf("failed to parse board markup: %w", err)
	}

	highlighted := map[string]bool{}
	for i, n := range nodes {
		if i == 0 && n.Type == html.ElementNode {
			insp.BoardClass = attr(n, "class")
		}
		walk(n, func(el *html.Node) {
			insp.collect(el, highlighted)
		})
	}

	for sq := range highlighted {
		insp.Highlighted = append(insp.Highlighted, sq)
	}
	sort.Strings(insp.Highlighted)
	return nil
}

func (insp *Inspection) collect(el *html.Node, highlighted map[string]bool) {
	class := attr(el, "class")
	if class == "" {
		return
	}
	fields := strings.Fields(class)

	if strings.Contains(class, "square") && len(insp.SquareSamples) < squareSampleLimit {
		insp.SquareSamples = append(insp.SquareSamples, class)
	}

	isPiece := contains(fields, "piece")
	if isPiece && len(insp.PieceSamples) < pieceSampleLimit {
		insp.PieceSamples = append(insp.PieceSamples, class)
	}

	sq, ok := squareOf(fields)
	if !ok {
		return
	}
	name := uci.SquareName(sq)

	if isPiece {
		if code, ok := pieceCode(fields); ok {
			if insp.Pieces == nil {
				insp.Pieces = map[string]string{}
			}
			insp.Pieces[name] = code
		}
	}
	if contains(fields, "highlight") {
		highlighted[name] = true
	}
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func contains(fields []string, want string) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}

func squareOf(fields []string) (chess.Square, bool) {
	for _, f := range fields {
		if sq, ok := parseSquareClass(f); ok {
			return sq, true
		}
	}
	return chess.NoSquare, false
}

// pieceCode finds a two-letter piece class such as "wp" or "bq".
func pieceCode(fields []string) (string, bool) {
	for _, f := range fields {
		if len(f) != 2 {
			continue
		}
		if (f[0] == 'w' || f[0] == 'b') && strings.IndexByte("pnbrqk", f[1]) >= 0 {
			return f, true
		}
	}
	return "", false
}
