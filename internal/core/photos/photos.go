// Package photos decides which connections still owe photographic evidence
// before their session may close. The decision is recomputed on every call;
// photo attachment can race with the review step, so nothing here is cached.
package photos

// Item classes as reported by the items service. Only decoration-class
// destinations require photo evidence; accessories and light strings are
// exempt.
const (
	ClassDecoration = "Decoration"
	ClassAccessory  = "Accessory"
	ClassLight      = "Light"
)

// MaxPhotosPerConnection is the attachment policy cap enforced by the
// service layer, not by the graph.
const MaxPhotosPerConnection = 5

// RequiresEvidence reports whether an item class needs photo documentation.
func RequiresEvidence(itemClass string) bool {
	return itemClass == ClassDecoration
}

// ConnectionEvidence is the per-connection input to the review: the class of
// the destination item and how many photos are attached right now.
type ConnectionEvidence struct {
	ConnectionID string
	ToItemClass  string
	PhotoCount   int
}

// MissingPhotoConnections returns the ids of active connections whose
// destination requires evidence and which have zero photos, in input order.
// The result is advisory; the session guard only enforces it when the
// caller has not chosen to skip photo review.
func MissingPhotoConnections(conns []ConnectionEvidence) []string {
	var missing []string
	for _, c := range conns {
		if RequiresEvidence(c.ToItemClass) && c.PhotoCount == 0 {
			missing = append(missing, c.ConnectionID)
		}
	}
	return missing
}
