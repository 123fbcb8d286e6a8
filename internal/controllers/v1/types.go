package v1

import (
	ts_uuid "github.com/nisequence/two-sense/internal/uuid"
)

type URIID struct {
	ID ts_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIMemberID struct {
	URIID
	UserID ts_uuid.UUID `uri:"userId" binding:"required" format:"UUID"` // ID of the member
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

type httpError struct {
	Error string `json:"error" example:"there is no budget matching your query"`
}
