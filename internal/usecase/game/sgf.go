package game

import (
	"fmt"
	"strconv"
	"strings"

	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
)

// PrepareSgfFile builds the minimal root node for a fresh game record.
func (g *GameUseCase) PrepareSgfFile(gameData game.Game) sgf.SGF {
	minSGF := sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{
				{
					Properties: map[string][]string{
						"FF": {"4"},
						"GM": {"1"},
						"SZ": {strconv.Itoa(gameData.BoardSize)},
						"PB": {gameData.PlayerBlack},
						"PW": {gameData.PlayerWhite},
						"DT": {gameData.CreatedAt.Format("2006-01-02")},
						"RE": {""},
						"KM": {strconv.FormatFloat(gameData.Komi, 'f', 1, 64)},
						"RU": {"Chinese"},
					},
				},
			},
		},
	}
	return minSGF
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		// fixed order for the root properties, the rest follow as-is
		orderedKeys := []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}
		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				for _, v := range values {
					builder.WriteString(fmt.Sprintf("%s[%s]", key, v))
				}
			}
		}

		for key, values := range node.Properties {
			if !used[key] {
				for _, v := range values {
					builder.WriteString(fmt.Sprintf("%s[%s]", key, v))
				}
			}
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

// AppendMoveToSgf appends a move node to the main line of an SGF text
// without reparsing the whole record.
func AppendMoveToSgf(sgfText string, move game.Move) string {
	if strings.HasSuffix(sgfText, ")") {
		sgfText = sgfText[:len(sgfText)-1]
	}
	return sgfText + fmt.Sprintf(";%s[%s])", move.Color, move.Coordinates)
}

// ParseSGF parses an SGF text into the tree model, variations
// included. It accepts the subset this service writes plus ordinary
// records from elsewhere; unknown properties are carried verbatim.
func ParseSGF(text string) (*sgf.SGF, error) {
	p := &sgfParser{src: text}
	p.skipSpace()
	root, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected trailing content at offset %d", p.pos)
	}
	return &sgf.SGF{Root: root}, nil
}

type sgfParser struct {
	src string
	pos int
}

func (p *sgfParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *sgfParser) expect(b byte) error {
	if p.pos >= len(p.src) || p.src[p.pos] != b {
		return fmt.Errorf("expected %q at offset %d", b, p.pos)
	}
	p.pos++
	return nil
}

func (p *sgfParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *sgfParser) parseTree() (*sgf.GameTree, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	tree := &sgf.GameTree{}

	p.skipSpace()
	for p.peek() == ';' {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		tree.Nodes = append(tree.Nodes, node)
		p.skipSpace()
	}
	if len(tree.Nodes) == 0 {
		return nil, fmt.Errorf("empty game tree at offset %d", p.pos)
	}

	for p.peek() == '(' {
		child, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		tree.Children = append(tree.Children, child)
		p.skipSpace()
	}

	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return tree, nil
}

func (p *sgfParser) parseNode() (sgf.Node, error) {
	node := sgf.Node{Properties: make(map[string][]string)}
	if err := p.expect(';'); err != nil {
		return node, err
	}
	p.skipSpace()
	for isUpper(p.peek()) {
		start := p.pos
		for isUpper(p.peek()) {
			p.pos++
		}
		ident := p.src[start:p.pos]
		p.skipSpace()
		if p.peek() != '[' {
			return node, fmt.Errorf("property %s without value at offset %d", ident, p.pos)
		}
		for p.peek() == '[' {
			value, err := p.parseValue()
			if err != nil {
				return node, err
			}
			node.Properties[ident] = append(node.Properties[ident], value)
			p.skipSpace()
		}
	}
	return node, nil
}

func (p *sgfParser) parseValue() (string, error) {
	if err := p.expect('['); err != nil {
		return "", err
	}
	var sb strings.Builder
	for p.pos < len(p.src) {
		b := p.src[p.pos]
		switch b {
		case '\\':
			// SGF escape: next byte is literal
			if p.pos+1 < len(p.src) {
				sb.WriteByte(p.src[p.pos+1])
				p.pos += 2
				continue
			}
			return "", fmt.Errorf("dangling escape at offset %d", p.pos)
		case ']':
			p.pos++
			return sb.String(), nil
		default:
			sb.WriteByte(b)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated property value at offset %d", p.pos)
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// MainLineMoves extracts the B/W moves of the main line: the node
// sequence of each tree followed by its first child, variations
// ignored.
func MainLineMoves(s *sgf.SGF) []game.Move {
	var moves []game.Move
	for tree := s.Root; tree != nil; {
		for _, node := range tree.Nodes {
			for _, color := range []string{"B", "W"} {
				if values, ok := node.Properties[color]; ok && len(values) > 0 {
					moves = append(moves, game.Move{Color: color, Coordinates: values[0]})
				}
			}
		}
		if len(tree.Children) == 0 {
			break
		}
		tree = tree.Children[0]
	}
	return moves
}

// BoardSizeFromSGF reads the SZ property of the root node, defaulting
// to 19 as the SGF spec does.
func BoardSizeFromSGF(s *sgf.SGF) int {
	if s.Root != nil && len(s.Root.Nodes) > 0 {
		if values, ok := s.Root.Nodes[0].Properties["SZ"]; ok && len(values) > 0 {
			if size, err := strconv.Atoi(values[0]); err == nil && size > 0 {
				return size
			}
		}
	}
	return 19
}
