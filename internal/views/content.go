package views

import "strings"

// BlockKind tells a paragraph from a photo in laid-out diary content.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockPhoto     BlockKind = "photo"
)

// Block is one element of laid-out diary content. Value is the paragraph text
// or the photo URI; PhotoIndex is the photo's position in the diary's list.
type Block struct {
	Kind       BlockKind
	Value      string
	PhotoIndex int
}

// Paragraphs splits content on blank lines and drops empty paragraphs.
func Paragraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// InterleavePhotos lays photos out between the paragraphs of content.
// With p paragraphs and n photos the stride is max(1, p/(n+1)); a photo follows
// every stride-th paragraph while photos remain, and leftovers go at the end.
func InterleavePhotos(content string, photos []string) []Block {
	paras := Paragraphs(content)
	interval := max(1, len(paras)/(len(photos)+1))

	blocks := make([]Block, 0, len(paras)+len(photos))
	next := 0
	for i, p := range paras {
		blocks = append(blocks, Block{Kind: BlockParagraph, Value: p})
		if (i+1)%interval == 0 && next < len(photos) {
			blocks = append(blocks, Block{Kind: BlockPhoto, Value: photos[next], PhotoIndex: next})
			next++
		}
	}
	for ; next < len(photos); next++ {
		blocks = append(blocks, Block{Kind: BlockPhoto, Value: photos[next], PhotoIndex: next})
	}
	return blocks
}
