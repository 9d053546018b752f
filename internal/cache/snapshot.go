package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"oompa/backend/internal/model"
)

// Persisted snapshot keys. Only these keys are written to storage.
const (
	ListKey   = "oompas"
	DetailKey = "oompaDetail"
)

const snapshotVersion = 1

type oompaRecord struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Profession string `json:"profession"`
	Image      string `json:"image"`
}

type detailRecord struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Profession  string `json:"profession"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Email       string `json:"email,omitempty"`
	Country     string `json:"country,omitempty"`
	Age         int    `json:"age,omitempty"`
	Height      int    `json:"height,omitempty"`
}

type listSnapshot struct {
	Version     int           `json:"version"`
	Items       []oompaRecord `json:"list"`
	Page        int           `json:"page"`
	HasMore     bool          `json:"hasMore"`
	LastRefresh *time.Time    `json:"lastFetchedAt,omitempty"`
	Status      Status        `json:"status"`
}

type detailEntryRecord struct {
	Item      detailRecord `json:"item"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

type detailSnapshot struct {
	Version int                          `json:"version"`
	Data    map[string]detailEntryRecord `json:"data"`
}

// EncodeList serializes the list state for the blob store.
func EncodeList(state ListState) ([]byte, error) {
	snap := listSnapshot{
		Version:     snapshotVersion,
		Items:       make([]oompaRecord, 0, len(state.Items)),
		Page:        state.Page,
		HasMore:     state.HasMore,
		LastRefresh: state.LastRefresh,
		Status:      state.Status,
	}
	for _, item := range state.Items {
		snap.Items = append(snap.Items, oompaRecord(item))
	}
	return json.Marshal(snap)
}

// DecodeList restores a list state. A persisted loading status cannot be
// resumed and comes back as idle.
func DecodeList(data []byte) (ListState, error) {
	var snap listSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ListState{}, fmt.Errorf("decode list snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return ListState{}, fmt.Errorf("decode list snapshot: unsupported version %d", snap.Version)
	}

	state := ListState{
		Items:       make([]model.Oompa, 0, len(snap.Items)),
		Page:        snap.Page,
		HasMore:     snap.HasMore,
		LastRefresh: snap.LastRefresh,
		Status:      snap.Status,
	}
	for _, rec := range snap.Items {
		state.Items = append(state.Items, model.Oompa(rec))
	}
	switch state.Status {
	case StatusSucceeded, StatusFailed:
	default:
		state.Status = StatusIdle
	}
	return state, nil
}

// EncodeDetails serializes every detail entry keyed by identity.
func EncodeDetails(entries map[int64]Entry[model.OompaDetail]) ([]byte, error) {
	snap := detailSnapshot{
		Version: snapshotVersion,
		Data:    make(map[string]detailEntryRecord, len(entries)),
	}
	for id, entry := range entries {
		snap.Data[strconv.FormatInt(id, 10)] = detailEntryRecord{
			Item:      detailRecord(entry.Value),
			FetchedAt: entry.FetchedAt,
		}
	}
	return json.Marshal(snap)
}

func DecodeDetails(data []byte) (map[int64]Entry[model.OompaDetail], error) {
	var snap detailSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode detail snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("decode detail snapshot: unsupported version %d", snap.Version)
	}

	out := make(map[int64]Entry[model.OompaDetail], len(snap.Data))
	for key, rec := range snap.Data {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode detail snapshot: invalid id %q", key)
		}
		out[id] = Entry[model.OompaDetail]{
			Value:     model.OompaDetail(rec.Item),
			FetchedAt: rec.FetchedAt,
		}
	}
	return out, nil
}
