package feishu

import (
	"context"
	"encoding/json"
	"fmt"
)

// BlockPager walks a document's blocks page by page, following the
// continuation token until the API reports no further pages. The zero
// token fetches the first page.
type BlockPager struct {
	client    *Client
	token     string
	objToken  string
	pageToken string
	done      bool
}

// Blocks returns a pager over the blocks of the document identified by
// objToken, authenticated with the given bearer token.
func (c *Client) Blocks(token, objToken string) *BlockPager {
	return &BlockPager{client: c, token: token, objToken: objToken}
}

// HasMore reports whether another page may be available. It is true before
// the first fetch.
func (p *BlockPager) HasMore() bool {
	return !p.done
}

// Next fetches the next page of blocks. It returns nil once the sequence is
// exhausted.
func (p *BlockPager) Next(ctx context.Context) ([]Block, error) {
	if p.done {
		return nil, nil
	}

	url := fmt.Sprintf("%s/docx/v1/documents/%s/blocks?page_size=%d",
		p.client.baseURL, p.objToken, p.client.blockPageSize)
	if p.pageToken != "" {
		url += "&page_token=" + p.pageToken
	}

	resp, err := p.client.http.Get(ctx, url, bearer(p.token))
	if err != nil {
		p.done = true
		return nil, fmt.Errorf("fetch blocks: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		p.done = true
		return nil, fmt.Errorf("fetch blocks: parse response: %w", err)
	}
	if env.Code != 0 {
		p.done = true
		return nil, fmt.Errorf("fetch blocks: api code %d: %s", env.Code, env.Msg)
	}

	var data blockPageData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		p.done = true
		return nil, fmt.Errorf("fetch blocks: parse items: %w", err)
	}

	if !data.HasMore {
		p.done = true
	} else {
		p.pageToken = data.PageToken
	}

	return data.Items, nil
}

// Reset restarts the pager from the first page.
func (p *BlockPager) Reset() {
	p.pageToken = ""
	p.done = false
}

// DocumentBlocks fetches the full ordered block sequence for one document.
// A failure partway through returns whatever was accumulated so far along
// with the error; callers treat partial content as usable.
func (c *Client) DocumentBlocks(ctx context.Context, token, objToken string) ([]Block, error) {
	pager := c.Blocks(token, objToken)

	var all []Block
	for pager.HasMore() {
		page, err := pager.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
	}
	return all, nil
}
