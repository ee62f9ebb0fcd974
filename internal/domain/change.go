package domain

// Collection names published on the change feed.
const (
	CollectionStudents   = "students"
	CollectionLessons    = "lessons"
	CollectionActivities = "activities"
	CollectionScores     = "scores"
)

// ChangeOp is the kind of mutation behind a Change.
type ChangeOp string

const (
	ChangeCreated ChangeOp = "created"
	ChangeUpdated ChangeOp = "updated"
	ChangeDeleted ChangeOp = "deleted"
)

// Change describes one mutation of a collection.
type Change struct {
	Collection string   `json:"collection"`
	Op         ChangeOp `json:"op"`
	ID         string   `json:"id"`
}

// ChangeFeed delivers collection changes to subscribers.
// Subscribe returns a cancel function that stops further deliveries.
type ChangeFeed interface {
	Publish(c Change)
	Subscribe(collection string, fn func(Change)) (cancel func())
}
