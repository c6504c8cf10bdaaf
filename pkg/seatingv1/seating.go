// Package seatingv1 holds the wire messages of the seating.v1 API.
package seatingv1

// Sync modes reported in responses.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

type Guest struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	IsPlusOne   bool   `json:"isPlusOne"`
	IsCheckedIn bool   `json:"isCheckedIn"`
	ParentId    string `json:"parentId,omitempty"`
	Seat        int32  `json:"seat"` // 1-based position at the table
}

type Table struct {
	Id       string   `json:"id"`
	Category string   `json:"category"`
	Guests   []*Guest `json:"guests"`
	Note     string   `json:"note,omitempty"`
	Capacity int32    `json:"capacity"`
}

type Snapshot struct {
	Tables []*Table `json:"tables"`
}

type CapacityWarning struct {
	TableId  string `json:"tableId"`
	Seated   int32  `json:"seated"`
	Capacity int32  `json:"capacity"`
	Message  string `json:"message"`
}

type SearchResult struct {
	TableId     string `json:"tableId"`
	GuestId     string `json:"guestId"`
	GuestName   string `json:"guestName"`
	Category    string `json:"category"`
	IsCheckedIn bool   `json:"isCheckedIn"`
	IsPlusOne   bool   `json:"isPlusOne"`
	PlusOnes    int32  `json:"plusOnes"`
}

type GetSnapshotRequest struct{}

type GetSnapshotResponse struct {
	Snapshot *Snapshot          `json:"snapshot"`
	Warnings []*CapacityWarning `json:"warnings"`
	Mode     string             `json:"mode"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	// Started is false when the query was blank and no search ran.
	Started bool            `json:"started"`
	Results []*SearchResult `json:"results"`
}

type AddGuestRequest struct {
	TableId string `json:"tableId"`
	Name    string `json:"name"`
}

type AddPlusOneRequest struct {
	TableId  string `json:"tableId"`
	ParentId string `json:"parentId"`
}

type RemovePlusOneRequest struct {
	TableId  string `json:"tableId"`
	ParentId string `json:"parentId"`
}

type RemoveGuestRequest struct {
	TableId string `json:"tableId"`
	GuestId string `json:"guestId"`
}

type RenameGuestRequest struct {
	TableId string `json:"tableId"`
	GuestId string `json:"guestId"`
	Name    string `json:"name"`
}

type ToggleCheckInRequest struct {
	TableId string `json:"tableId"`
	GuestId string `json:"guestId"`
}

type UpdateCategoryRequest struct {
	TableId  string `json:"tableId"`
	Category string `json:"category"`
}

type UpdateNoteRequest struct {
	TableId string `json:"tableId"`
	Note    string `json:"note"`
}

type MoveGuestRequest struct {
	GuestId       string `json:"guestId"`
	TargetTableId string `json:"targetTableId"`
}

// MutationResponse is returned by every state-changing RPC. Snapshot is the
// optimistic result, live before the write to the backend has finished.
type MutationResponse struct {
	Snapshot *Snapshot          `json:"snapshot"`
	Warnings []*CapacityWarning `json:"warnings"`
	Mode     string             `json:"mode"`
}

type WatchRequest struct{}

// WatchEvent carries either a new snapshot or a user alert.
type WatchEvent struct {
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Alert    string    `json:"alert,omitempty"`
	Mode     string    `json:"mode"`
}
