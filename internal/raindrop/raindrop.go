// Package raindrop implements a read-only client for the Raindrop.io REST API
// and the folder aggregation backing the new tab page.
//
// Raindrop.io API response types based on https://developer.raindrop.io/
package raindrop

// User represents the authenticated Raindrop user profile, reduced to the
// fields the dashboard consumes.
type User struct {
	ID       int64   `json:"_id"`
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Groups   []Group `json:"groups"`
}

// userEnvelope wraps the /user response body.
type userEnvelope struct {
	User User `json:"user"`
}

// Group is a named, ordered set of collection IDs configured by the user in
// Raindrop. The ID order is the declared display order.
type Group struct {
	Title       string  `json:"title"`
	Hidden      bool    `json:"hidden"`
	Sort        int     `json:"sort"`
	Collections []int64 `json:"collections"`
}

// Collection is a Raindrop folder-like container of bookmarks.
type Collection struct {
	ID    int64  `json:"_id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// collectionList wraps the /collections response body.
type collectionList struct {
	Items []Collection `json:"items"`
}

// Bookmark is a single saved raindrop.
type Bookmark struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
}

// bookmarkList wraps the /raindrops/{id} response body.
type bookmarkList struct {
	Items []Bookmark `json:"items"`
}

// Folder is the request-scoped projection of a collection plus its fetched
// bookmarks. Folders with no bookmarks are never emitted.
type Folder struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Bookmarks []Bookmark `json:"bookmarks"`
}
