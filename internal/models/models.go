package models

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

type Thread struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorID     int64     `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorRole   Role      `json:"authorRole"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
	MessageCount int       `json:"messageCount"`
}

// Edited reports whether the thread was changed after it was posted.
func (t Thread) Edited() bool {
	return !t.UpdatedAt.IsZero() && !t.UpdatedAt.Equal(t.CreatedAt.Time)
}

type Message struct {
	ID         int64     `json:"id"`
	ThreadID   int64     `json:"threadId"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	AuthorRole Role      `json:"authorRole"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	UserVote   VoteType  `json:"userVote,omitempty"`
}

// Score is always derived from the current counters.
func (m Message) Score() int {
	return m.Upvotes - m.Downvotes
}

type VoteCounts struct {
	Upvotes   int      `json:"upvotes"`
	Downvotes int      `json:"downvotes"`
	UserVote  VoteType `json:"userVote,omitempty"`
}

// VoteResult is the answer to POST /votes; a 2xx status means the vote was
// recorded.
type VoteResult struct {
	Message    string     `json:"message"`
	VoteCounts VoteCounts `json:"voteCounts"`
}

// AuthResponse is returned by both /auth/login and /auth/register.
type AuthResponse struct {
	Message  string `json:"message,omitempty"`
	Token    string `json:"token"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=USER DEV"`
}

type ThreadRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type MessageRequest struct {
	ThreadID int64  `json:"threadId,omitempty"`
	Content  string `json:"content" validate:"required"`
}

type VoteRequest struct {
	MessageID int64    `json:"messageId" validate:"required"`
	VoteType  VoteType `json:"voteType" validate:"required,oneof=UPVOTE DOWNVOTE"`
}
