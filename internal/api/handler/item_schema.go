package handler

type saveItemRequest struct {
	Name        string  `json:"itemname" validate:"required"`
	Type        string  `json:"itemtype" validate:"required"`
	Description string  `json:"itemdescr"`
	Location    string  `json:"itemlocat" validate:"required"`
	Available   bool    `json:"isavailable"`
	Rate        float64 `json:"itemrate" validate:"gte=0"`
	Image       string  `json:"itemimg"`
	LenderName  string  `json:"lendername"`
}

// patchItemRequest carries a partial item update. Pointer fields keep false
// and 0 settable.
type patchItemRequest struct {
	Name        *string  `json:"itemname"`
	Type        *string  `json:"itemtype"`
	Description *string  `json:"itemdescr"`
	Location    *string  `json:"itemlocat"`
	Available   *bool    `json:"isavailable"`
	Rate        *float64 `json:"itemrate"`
	Image       *string  `json:"itemimg"`
}

type itemResponse struct {
	ID          int64   `json:"itemid"`
	Name        string  `json:"itemname"`
	Type        string  `json:"itemtype"`
	Description string  `json:"itemdescr"`
	Location    string  `json:"itemlocat"`
	Available   bool    `json:"isavailable"`
	Rate        float64 `json:"itemrate"`
	Image       string  `json:"itemimg,omitempty"`
	LenderID    int64   `json:"lenderid"`
}
