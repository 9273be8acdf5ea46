// Package model holds the records shared by the storage layer and the
// ranking/summarization engine.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by lookups when no record matches the given id.
var ErrNotFound = errors.New("record not found")

// Article is a single aggregated story. Tags are stored lowercase.
type Article struct {
	ID        int64
	Title     string
	Body      string
	Author    string
	Tags      []string
	Summary   string
	CreatedAt time.Time
}

// User is a reader with a free-form interest set (lowercase, unweighted).
type User struct {
	ID        int64
	Username  string
	Interests []string
}

// InteractionType is the closed set of interaction kinds.
type InteractionType string

const (
	InteractionView    InteractionType = "view"
	InteractionLike    InteractionType = "like"
	InteractionShare   InteractionType = "share"
	InteractionComment InteractionType = "comment"
)

// ShareMetadata is carried only by share interactions.
type ShareMetadata struct {
	Platform string
	Message  string
}

// Interaction records a single user action on an article. The payload
// fields are variant-specific: Comment is set iff Type is comment, Share
// is set iff Type is share. Use the constructors to keep that invariant.
type Interaction struct {
	ID        int64
	UserID    int64
	ArticleID int64
	Type      InteractionType
	Comment   string
	Share     *ShareMetadata
	CreatedAt time.Time
}

// NewView records that a user viewed an article.
func NewView(userID, articleID int64) Interaction {
	return Interaction{UserID: userID, ArticleID: articleID, Type: InteractionView, CreatedAt: time.Now()}
}

// NewLike records that a user liked an article.
func NewLike(userID, articleID int64) Interaction {
	return Interaction{UserID: userID, ArticleID: articleID, Type: InteractionLike, CreatedAt: time.Now()}
}

// NewShare records a share with its platform metadata.
func NewShare(userID, articleID int64, meta ShareMetadata) Interaction {
	return Interaction{UserID: userID, ArticleID: articleID, Type: InteractionShare, Share: &meta, CreatedAt: time.Now()}
}

// NewComment records a comment. Comment text may later be edited; all
// other interaction payloads are immutable.
func NewComment(userID, articleID int64, text string) Interaction {
	return Interaction{UserID: userID, ArticleID: articleID, Type: InteractionComment, Comment: text, CreatedAt: time.Now()}
}

// Validate checks the variant invariants before the record is persisted.
func (i Interaction) Validate() error {
	switch i.Type {
	case InteractionView, InteractionLike:
		if i.Comment != "" || i.Share != nil {
			return fmt.Errorf("%s interaction must not carry a payload", i.Type)
		}
	case InteractionShare:
		if i.Share == nil {
			return errors.New("share interaction requires share metadata")
		}
		if i.Comment != "" {
			return errors.New("share interaction must not carry comment text")
		}
	case InteractionComment:
		if i.Comment == "" {
			return errors.New("comment interaction requires comment text")
		}
		if i.Share != nil {
			return errors.New("comment interaction must not carry share metadata")
		}
	default:
		return fmt.Errorf("unknown interaction type %q", i.Type)
	}
	return nil
}

// TypeCount is one row of a grouped interaction aggregation: how many
// interactions of one type an article has received.
type TypeCount struct {
	ArticleID int64
	Type      InteractionType
	Count     int
}

// EngagementWeight returns the weight used for popularity and trending
// scores: view 1, like 3, share 5, comment 4.
func (t InteractionType) EngagementWeight() int {
	switch t {
	case InteractionView:
		return 1
	case InteractionLike:
		return 3
	case InteractionShare:
		return 5
	case InteractionComment:
		return 4
	}
	return 0
}
