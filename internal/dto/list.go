package dto

// CreateListRequest is the body for creating a packing list.
type CreateListRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameListRequest is the body for renaming a list. An empty name is
// accepted; the domain allows it on rename.
type RenameListRequest struct {
	Name string `json:"name"`
}

// AddItemRequest is the body for adding an item to a list.
type AddItemRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameItemRequest is the body for renaming an item.
type RenameItemRequest struct {
	Name string `json:"name" binding:"required"`
}

// ItemResponse is one item of a list.
type ItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsPacked bool   `json:"is_packed"`
}

// ListResponse is one packing list with its items.
type ListResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	OwnerID string         `json:"owner_id"`
	Items   []ItemResponse `json:"items"`
}

// ListsResponse wraps a collection of lists.
type ListsResponse struct {
	Lists []ListResponse `json:"lists"`
}
