package feishu

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListChildNodes returns the child documents of the configured parent node,
// in listing order. A single page is fetched; collections beyond one page
// are truncated. This mirrors the source system's behavior and is a known
// scaling ceiling, not an oversight.
func (c *Client) ListChildNodes(ctx context.Context, token string) ([]Node, error) {
	url := fmt.Sprintf("%s/wiki/v2/spaces/%s/nodes?parent_node_token=%s&page_size=%d",
		c.baseURL, c.spaceID, c.parentNode, c.listPageSize)

	resp, err := c.http.Get(ctx, url, bearer(token))
	if err != nil {
		return nil, fmt.Errorf("list child nodes: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, fmt.Errorf("list child nodes: parse response: %w", err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("list child nodes: api code %d: %s", env.Code, env.Msg)
	}

	var data nodeListData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("list child nodes: parse items: %w", err)
	}

	return data.Items, nil
}
