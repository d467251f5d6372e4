package appwrite

import "net/url"

// InitialsURL returns the avatar image URL rendering name's initials. An
// unconfigured client yields "".
func (c *Client) InitialsURL(name string) string {
	q := url.Values{}
	q.Set("project", c.project)
	if name != "" {
		q.Set("name", name)
	}
	u, err := c.url("/avatars/initials", q)
	if err != nil {
		return ""
	}
	return u
}
