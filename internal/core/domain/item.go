package domain

// Item is a listing offered for rent by a lender.
type Item struct {
	ID          int64   `json:"itemid" bson:"_id"`
	Name        string  `json:"itemname" bson:"itemname"` // stored lowercased
	Type        string  `json:"itemtype" bson:"itemtype"` // stored lowercased
	Description string  `json:"itemdescr" bson:"itemdescr"`
	Location    string  `json:"itemlocat" bson:"itemlocat"`
	Available   bool    `json:"isavailable" bson:"isavailable"`
	Rate        float64 `json:"itemrate" bson:"itemrate"` // per day, >= 0
	Image       string  `json:"itemimg,omitempty" bson:"itemimg,omitempty"`
	LenderID    int64   `json:"lenderid" bson:"lenderid"`
}
