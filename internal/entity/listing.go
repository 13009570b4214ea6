package entity

// Sentinel values emitted when a listing has no phone or website on its
// detail view. The presentation layer matches these exact strings, so they
// are part of the wire contract and must never be replaced by empty strings.
const (
	NoPhone   = "No Phone"
	NoWebsite = "No Website"
)

// Listing is one scraped business record. It is fully populated at
// construction time and immutable afterwards; fields that could not be
// extracted carry their documented defaults instead of the record being
// dropped.
//
// ReviewsAverage is 0.0 both for a true zero rating and for "no rating
// found" — the source page does not distinguish the two.
type Listing struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	ReviewsAverage float64 `json:"reviews_average"`
	ReviewsCount   int     `json:"reviews_count"`
	PhoneNumber    string  `json:"phone_number"`
	Website        string  `json:"website"`
}

// Key identifies a listing for record-level deduplication. Two entries that
// resolve to the same name, address and phone are the same business even
// when the result feed listed them twice.
func (l Listing) Key() string {
	return l.Name + "|" + l.Address + "|" + l.PhoneNumber
}
