package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a message and determines how its content string is interpreted.
type Kind string

const (
	KindText     Kind = "text"
	KindPhoto    Kind = "photo"
	KindVideo    Kind = "video"
	KindLocation Kind = "location"
)

// Content is a message payload variant. Encode renders the payload into the
// single content string stored with the message.
type Content interface {
	Kind() Kind
	Encode() string
}

type Text string

func (t Text) Kind() Kind     { return KindText }
func (t Text) Encode() string { return string(t) }

// Photo references an already uploaded image by its download URL.
type Photo struct {
	URL string
}

func (p Photo) Kind() Kind     { return KindPhoto }
func (p Photo) Encode() string { return p.URL }

// Video references an already uploaded video by its download URL.
type Video struct {
	URL string
}

func (v Video) Kind() Kind     { return KindVideo }
func (v Video) Encode() string { return v.URL }

// Location carries a coordinate pair, stored as "longitude,latitude".
type Location struct {
	Longitude float64
	Latitude  float64
}

func (l Location) Kind() Kind { return KindLocation }

func (l Location) Encode() string {
	return strconv.FormatFloat(l.Longitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(l.Latitude, 'f', -1, 64)
}

// DecodeContent is the inverse of Content.Encode for a given kind.
func DecodeContent(kind Kind, content string) (Content, error) {
	switch kind {
	case KindText:
		return Text(content), nil
	case KindPhoto:
		return Photo{URL: content}, nil
	case KindVideo:
		return Video{URL: content}, nil
	case KindLocation:
		parts := strings.SplitN(content, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid location content %q", content)
		}
		lng, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q: %w", parts[0], err)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q: %w", parts[1], err)
		}
		return Location{Longitude: lng, Latitude: lat}, nil
	default:
		return nil, fmt.Errorf("unknown message kind %q", kind)
	}
}

// Message is one entry in a conversation's append-only message list.
type Message struct {
	ID          string `bson:"id" json:"id"`
	Kind        Kind   `bson:"type" json:"type"`
	Content     string `bson:"content" json:"content"`
	Date        string `bson:"date" json:"date"`
	SenderEmail string `bson:"sender_email" json:"sender_email"`
	SenderName  string `bson:"name" json:"name"`
	IsRead      bool   `bson:"is_read" json:"is_read"`
}

// Summary derives the denormalized latest-message summary stored in every
// participant's index entry.
func (m Message) Summary() LatestMessage {
	return LatestMessage{
		Date:    m.Date,
		Message: m.Content,
		IsRead:  m.IsRead,
		Kind:    m.Kind,
	}
}
