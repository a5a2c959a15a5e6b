package feishu

import "encoding/json"

// Block type identifiers as used by the docx block API. Only the kinds the
// normalizer consumes are named; everything else is skipped.
const (
	BlockTypePage     = 1
	BlockTypeText     = 2
	BlockTypeHeading1 = 3
	BlockTypeHeading2 = 4
	BlockTypeHeading3 = 5
	BlockTypeBullet   = 12
	BlockTypeOrdered  = 13
)

// Block is one content block of a document.
type Block struct {
	BlockType int       `json:"block_type"`
	Text      *TextBody `json:"text,omitempty"`
	Heading1  *TextBody `json:"heading1,omitempty"`
	Heading2  *TextBody `json:"heading2,omitempty"`
	Heading3  *TextBody `json:"heading3,omitempty"`
	Bullet    *TextBody `json:"bullet,omitempty"`
	Ordered   *TextBody `json:"ordered,omitempty"`
}

// TextBody holds the rich-text elements of a block.
type TextBody struct {
	Elements []Element `json:"elements"`
}

// Element is one rich-text element; only text runs are consumed.
type Element struct {
	TextRun *TextRun `json:"text_run,omitempty"`
}

// TextRun is a literal text fragment.
type TextRun struct {
	Content string `json:"content"`
}

// PlainText concatenates the text runs of the block's body for its kind.
// The second return is false for unrecognized kinds (including the page
// root block), which the normalizer skips entirely.
func (b *Block) PlainText() (string, bool) {
	var body *TextBody
	prefix := ""

	switch b.BlockType {
	case BlockTypeText:
		body = b.Text
	case BlockTypeHeading1:
		body = b.Heading1
	case BlockTypeHeading2:
		body = b.Heading2
	case BlockTypeHeading3:
		body = b.Heading3
	case BlockTypeBullet:
		body = b.Bullet
		prefix = "• "
	case BlockTypeOrdered:
		body = b.Ordered
	default:
		return "", false
	}

	return prefix + joinTextRuns(body), true
}

func joinTextRuns(body *TextBody) string {
	if body == nil {
		return ""
	}
	var out string
	for _, el := range body.Elements {
		if el.TextRun != nil {
			out += el.TextRun.Content
		}
	}
	return out
}

// Node is one child node of the wiki parent collection.
type Node struct {
	// Title is the raw document title.
	Title string `json:"title"`
	// ObjToken identifies the document content object for block fetches.
	ObjToken string `json:"obj_token"`
	// NodeToken is the stable wiki node identifier; it becomes the article ID.
	NodeToken string `json:"node_token"`
}

// envelope is the common API response wrapper. Code zero means success.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type nodeListData struct {
	Items []Node `json:"items"`
}

type blockPageData struct {
	Items     []Block `json:"items"`
	HasMore   bool    `json:"has_more"`
	PageToken string  `json:"page_token"`
}

type tokenResponse struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
}
