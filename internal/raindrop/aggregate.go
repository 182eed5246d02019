package raindrop

import (
	"context"
)

// FindGroup returns the user's group with the given title.
func FindGroup(user *User, title string) (*Group, bool) {
	for i := range user.Groups {
		if user.Groups[i].Title == title {
			return &user.Groups[i], true
		}
	}
	return nil, false
}

// AssembleFolders materializes a group into its non-empty folders.
//
// Collection IDs are visited in the group's declared order. IDs absent from
// the collections map are skipped: the group listing and the collection
// listing come from two non-atomic fetches, so a collection deleted or moved
// between them is dropped rather than treated as an error. Collections whose
// bookmark fetch comes back empty (or non-success, see [Client.Bookmarks])
// are skipped as well.
func AssembleFolders(ctx context.Context, client *Client, group *Group, collections map[int64]Collection) ([]Folder, error) {
	folders := []Folder{}

	for _, id := range group.Collections {
		collection, ok := collections[id]
		if !ok {
			continue
		}

		bookmarks, err := client.Bookmarks(ctx, id)
		if err != nil {
			return nil, err
		}

		if len(bookmarks) == 0 {
			continue
		}

		folders = append(folders, Folder{
			ID:        id,
			Title:     collection.Title,
			Bookmarks: bookmarks,
		})
	}

	return folders, nil
}
