package models

import "time"

// ChangeInputRequest is the wire shape of one entry in a batch change
// submission's changes array.
type ChangeInputRequest struct {
	ChangeType string         `json:"changeType" binding:"required"`
	InputName  string         `json:"inputName" binding:"required"`
	Type       string         `json:"type" binding:"required"`
	TTL        *int           `json:"ttl,omitempty"`
	Record     RecordDataWire `json:"record"`
}

// RecordDataWire mirrors model.RecordData for JSON (de)serialization at
// the HTTP boundary.
type RecordDataWire struct {
	Address  string `json:"address,omitempty"`
	CName    string `json:"cname,omitempty"`
	Text     string `json:"text,omitempty"`
	PTRDName string `json:"ptrdname,omitempty"`
	MXPref   *int   `json:"preference,omitempty"`
	MXExch   string `json:"exchange,omitempty"`
	NSDName  string `json:"nsdname,omitempty"`
}

// BatchChangeInputRequest is the POST /zones/batchrecordchanges request body.
type BatchChangeInputRequest struct {
	Comments string               `json:"comments,omitempty"`
	Changes  []ChangeInputRequest `json:"changes" binding:"required,min=1"`
}

// SingleChangeResponse is one accepted change in a BatchChangeResponse.
type SingleChangeResponse struct {
	InputName    string         `json:"inputName"`
	ChangeType   string         `json:"changeType"`
	Type         string         `json:"type"`
	TTL          *int           `json:"ttl,omitempty"`
	Record       RecordDataWire `json:"record"`
	ZoneID       string         `json:"zoneId"`
	ZoneName     string         `json:"zoneName"`
	RecordName   string         `json:"recordName"`
	Status       string         `json:"status"`
}

// BatchChangeResponse is the 202 response body for an accepted batch.
type BatchChangeResponse struct {
	ID               string                  `json:"id"`
	UserID           string                  `json:"userId"`
	UserName         string                  `json:"userName"`
	Comments         string                  `json:"comments,omitempty"`
	CreatedTimestamp time.Time               `json:"createdTimestamp"`
	Status           string                  `json:"status"`
	Changes          []SingleChangeResponse  `json:"changes"`
}

// InvalidChangeResponseItem pairs one rejected position's original input
// with the errors accumulated against it.
type InvalidChangeResponseItem struct {
	ChangeType string         `json:"changeType"`
	InputName  string         `json:"inputName"`
	Type       string         `json:"type"`
	TTL        *int           `json:"ttl,omitempty"`
	Record     RecordDataWire `json:"record"`
	Errors     []string       `json:"errors"`
}

// InvalidBatchChangeResponsesBody is the 400 response body when any
// position in a batch fails validation.
type InvalidBatchChangeResponsesBody struct {
	Comments string                      `json:"comments,omitempty"`
	Changes  []InvalidChangeResponseItem `json:"changes"`
}

// BatchChangeSummaryResponse is one entry in a summary list page.
type BatchChangeSummaryResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	UserName         string    `json:"userName"`
	Comments         string    `json:"comments,omitempty"`
	CreatedTimestamp time.Time `json:"createdTimestamp"`
	Status           string    `json:"status"`
	TotalChanges     int       `json:"totalChanges"`
}

// BatchChangeSummaryListResponse is the GET /zones/batchrecordchanges
// response body.
type BatchChangeSummaryListResponse struct {
	Summaries []BatchChangeSummaryResponse `json:"batchChanges"`
	StartFrom int                          `json:"startFrom"`
	NextID    *int                         `json:"nextId,omitempty"`
	MaxItems  int                          `json:"maxItems"`
}
