package models

import "time"

// Experience levels a cyclist can declare on their profile.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelExpert       = "expert"
)

// Swipe actions.
const (
	SwipeLike    = "like"
	SwipeDislike = "dislike"
)

// Notification types.
const (
	NotificationMatch   = "match"
	NotificationMessage = "message"
)

// User represents a registered cyclist.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Name             string    `json:"name"`
	Bio              *string   `json:"bio"`
	ProfilePicture   *string   `json:"profile_picture"`
	ExperienceLevel  *string   `json:"experience_level"`
	AvgDistance      *int      `json:"avg_distance"`
	PreferredZone    *string   `json:"preferred_zone"`
	Location         *string   `json:"location"`
	Age              *int      `json:"age"`
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
}

// Completed reports whether the profile fields required for discovery are
// all set: experience_level, avg_distance and preferred_zone must be
// present and non-zero.
func (u *User) Completed() bool {
	return u.ExperienceLevel != nil && *u.ExperienceLevel != "" &&
		u.AvgDistance != nil && *u.AvgDistance != 0 &&
		u.PreferredZone != nil && *u.PreferredZone != ""
}

// Swipe is one user's recorded decision about another. The ledger is
// append-only: repeated identical swipes produce new rows and nothing is
// ever deleted or deduplicated.
type Swipe struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	TargetID  string    `json:"target_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// Match is a mutual-like relationship between exactly two users. The pair
// is normalized so that UserAID < UserBID; the matches table carries a
// unique index on the normalized pair.
type Match struct {
	ID        string    `json:"id"`
	UserAID   string    `json:"user_a_id"`
	UserBID   string    `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether userID is one of the two members.
func (m *Match) HasMember(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// OtherMember returns the member that is not userID.
func (m *Match) OtherMember(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

// Message is a chat message scoped to a match.
type Message struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is an append-only per-recipient record. Only the Read flag
// is ever mutated, and only by the recipient.
type Notification struct {
	ID          string            `json:"id"`
	RecipientID string            `json:"-"`
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data"`
	Read        bool              `json:"read"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Point is a geographic point on a route.
type Point struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// Route is a gravel route posted by a user.
type Route struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Distance    float64   `json:"distance"`
	Elevation   *int      `json:"elevation"`
	Difficulty  string    `json:"difficulty"`
	StartPoint  Point     `json:"start_point"`
	EndPoint    *Point    `json:"end_point"`
	Waypoints   []Point   `json:"waypoints"`
	ImageURL    *string   `json:"image_url"`
	Tags        []string  `json:"tags"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
}
