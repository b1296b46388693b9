package domain

// Comment is one reply under an announcement.
type Comment struct {
	SenderName  string `bson:"sender_name" json:"sender_name"`
	SenderEmail string `bson:"sender_email" json:"sender_email"`
	Text        string `bson:"text" json:"text"`
}

// Announcement is a post in an organization's announcement feed.
type Announcement struct {
	ID          string    `bson:"id" json:"id"`
	AuthorName  string    `bson:"author_name" json:"author_name"`
	AuthorEmail string    `bson:"author_email" json:"author_email"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	PhotoURLs   []string  `bson:"photoURLS" json:"photoURLS"`
	Comments    []Comment `bson:"comments" json:"comments"`
}
