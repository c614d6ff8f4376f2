// Package notion loads the knowledge base from a Notion page.
package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/cfpwatch"
	"github.com/jomei/notionapi"
)

// PageSize is the number of block children requested per call, the API maximum.
const PageSize = 100

// maxDepth stops runaway recursion through nested blocks.
const maxDepth = 16

// Ensure KnowledgeBase implements cfpwatch.KnowledgeBase at compile time.
var _ cfpwatch.KnowledgeBase = (*KnowledgeBase)(nil)

// BlockChildren is the part of the Notion block API the KnowledgeBase uses.
// notionapi.Client.Block satisfies it.
type BlockChildren interface {
	GetChildren(ctx context.Context, id notionapi.BlockID, pagination *notionapi.Pagination) (*notionapi.GetChildrenResponse, error)
}

// KnowledgeBase renders a Notion page and its nested blocks as Markdown text.
type KnowledgeBase struct {
	blocks BlockChildren
	pageID notionapi.BlockID
}

// NewKnowledgeBase creates a KnowledgeBase for the page with the given ID.
func NewKnowledgeBase(blocks BlockChildren, pageID string) *KnowledgeBase {
	return &KnowledgeBase{blocks: blocks, pageID: notionapi.BlockID(pageID)}
}

// NewClient creates a Notion API client authenticated with token.
func NewClient(token string) *notionapi.Client {
	return notionapi.NewClient(notionapi.Token(token))
}

// Load walks the page depth-first, emitting each block's line before its
// children.
func (k *KnowledgeBase) Load(ctx context.Context) (string, error) {
	if k.pageID == "" {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "notion page ID required")
	}

	var lines []string
	if err := k.walk(ctx, k.pageID, 0, &lines); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func (k *KnowledgeBase) walk(ctx context.Context, id notionapi.BlockID, depth int, lines *[]string) error {
	if depth > maxDepth {
		return nil
	}

	children, err := k.children(ctx, id)
	if err != nil {
		return err
	}

	for _, block := range children {
		if line, ok := renderBlock(block); ok {
			*lines = append(*lines, line)
		}
		if block.GetHasChildren() {
			if err := k.walk(ctx, block.GetID(), depth+1, lines); err != nil {
				return err
			}
		}
	}
	return nil
}

// children pages through every child of the block.
func (k *KnowledgeBase) children(ctx context.Context, id notionapi.BlockID) ([]notionapi.Block, error) {
	var blocks []notionapi.Block
	var cursor notionapi.Cursor
	for {
		resp, err := k.blocks.GetChildren(ctx, id, &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    PageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("notion block %s children: %w", id, err)
		}
		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return blocks, nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}

// renderBlock returns the Markdown line for a block. Unsupported block
// types produce no line, though their children are still visited.
func renderBlock(block notionapi.Block) (string, bool) {
	switch b := block.(type) {
	case *notionapi.ParagraphBlock:
		return plainText(b.Paragraph.RichText), true
	case *notionapi.Heading1Block:
		return "# " + plainText(b.Heading1.RichText), true
	case *notionapi.Heading2Block:
		return "## " + plainText(b.Heading2.RichText), true
	case *notionapi.Heading3Block:
		return "### " + plainText(b.Heading3.RichText), true
	case *notionapi.BulletedListItemBlock:
		return "- " + plainText(b.BulletedListItem.RichText), true
	case *notionapi.NumberedListItemBlock:
		return "1. " + plainText(b.NumberedListItem.RichText), true
	case *notionapi.QuoteBlock:
		return "> " + plainText(b.Quote.RichText), true
	case *notionapi.ToDoBlock:
		if b.ToDo.Checked {
			return "- [x] " + plainText(b.ToDo.RichText), true
		}
		return "- [ ] " + plainText(b.ToDo.RichText), true
	}
	return "", false
}

func plainText(rt []notionapi.RichText) string {
	var sb strings.Builder
	for _, t := range rt {
		sb.WriteString(t.PlainText)
	}
	return sb.String()
}
