package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"cci/internal/ast"
	"cci/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// treeBlock is a rendered subtree: lines padded to width display cells,
// root is the column of the node's connector.
type treeBlock struct {
	lines []string
	width int
	root  int
}

const treeSpacing = 3

func buildExprTreeNode(e *ast.Exprs, tn TypeNamer, id ast.ExprID, fs *source.FileSet) *treeNode {
	node := &treeNode{label: exprLabel(e, tn, id, fs)}
	for _, kid := range e.Children(nil, id) {
		node.children = append(node.children, buildExprTreeNode(e, tn, kid, fs))
	}
	return node
}

// FormatExprTree draws the expression rooted at root top-down, children
// centred under their parent and joined with / | \ connectors.
func FormatExprTree(w io.Writer, e *ast.Exprs, tn TypeNamer, root ast.ExprID, fs *source.FileSet) error {
	if _, ok := e.Get(root); !ok {
		return fmt.Errorf("expression %d not found", root)
	}
	block := renderTree(buildExprTreeNode(e, tn, root, fs))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func padRight(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func renderTree(node *treeNode) treeBlock {
	labelWidth := runewidth.StringWidth(node.label)
	if len(node.children) == 0 {
		return treeBlock{lines: []string{node.label}, width: labelWidth, root: labelWidth / 2}
	}

	kids := make([]treeBlock, len(node.children))
	height := 0
	for i, child := range node.children {
		kids[i] = renderTree(child)
		height = max(height, len(kids[i].lines))
	}

	// раскладываем детей слева направо
	positions := make([]int, len(kids))
	childrenWidth := 0
	for i, kb := range kids {
		if i > 0 {
			childrenWidth += treeSpacing
		}
		positions[i] = childrenWidth + kb.root
		childrenWidth += kb.width
	}

	// корень по центру над детьми; если метка шире, сдвигаем детей вправо
	center := (positions[0] + positions[len(positions)-1]) / 2
	labelStart := center - labelWidth/2
	childShift := 0
	if labelStart < 0 {
		childShift = -labelStart
		labelStart = 0
	}
	rootPos := labelStart + labelWidth/2
	width := max(labelStart+labelWidth, childShift+childrenWidth)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		pos += childShift
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		}
	}

	lines := make([]string, 0, 2+height)
	lines = append(lines, padRight(strings.Repeat(" ", labelStart)+node.label, width), string(connector))
	for row := range height {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childShift))
		for i, kb := range kids {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", treeSpacing))
			}
			line := ""
			if row < len(kb.lines) {
				line = kb.lines[row]
			}
			sb.WriteString(padRight(line, kb.width))
		}
		lines = append(lines, padRight(sb.String(), width))
	}
	return treeBlock{lines: lines, width: width, root: rootPos}
}
