package publisher

import (
	"encoding/xml"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/atareao/podmixer/internal/models"
)

const itunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"

type rssDocument struct {
	XMLName  xml.Name   `xml:"rss"`
	Version  string     `xml:"version,attr"`
	ItunesNS string     `xml:"xmlns:itunes,attr"`
	Channel  rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Rating      string `xml:"rating,omitempty"`

	Image    *rssImage    `xml:"image,omitempty"`
	Category *rssCategory `xml:"category,omitempty"`

	IAuthor   string       `xml:"itunes:author,omitempty"`
	ISubtitle string       `xml:"itunes:subtitle,omitempty"`
	ISummary  string       `xml:"itunes:summary,omitempty"`
	IExplicit string       `xml:"itunes:explicit,omitempty"`
	IKeywords string       `xml:"itunes:keywords,omitempty"`
	ICategory *rssCategory `xml:"itunes:category,omitempty"`
	IImage    *itunesImage `xml:"itunes:image,omitempty"`
	IOwner    *itunesOwner `xml:"itunes:owner,omitempty"`

	Items []rssItem `xml:"item"`
}

type rssImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type rssCategory struct {
	Text string `xml:"text,attr,omitempty"`
	Name string `xml:",chardata"`
}

type itunesImage struct {
	Href string `xml:"href,attr"`
}

type itunesOwner struct {
	Name  string `xml:"itunes:name,omitempty"`
	Email string `xml:"itunes:email,omitempty"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link,omitempty"`
	Description string        `xml:"description,omitempty"`
	GUID        string        `xml:"guid,omitempty"`
	PubDate     string        `xml:"pubDate,omitempty"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// renderRSS builds one RSS 2.0 document with the itunes extension block
// from the channel metadata plus the already-sorted episode list.
func renderRSS(cfg models.FeedConfig, episodes []models.Episode) ([]byte, error) {
	channel := rssChannel{
		Title:       cfg.Title,
		Link:        cfg.Link,
		Description: cfg.Description,
		Rating:      cfg.Rating,
		IAuthor:     cfg.Author,
		ISubtitle:   cfg.Subtitle,
		ISummary:    cfg.Summary,
		IExplicit:   explicitValue(cfg.Explicit),
		IKeywords:   cfg.Keywords,
	}
	if cfg.ImageURL != "" {
		channel.Image = &rssImage{URL: cfg.ImageURL, Title: cfg.Title, Link: cfg.Link}
		channel.IImage = &itunesImage{Href: cfg.ImageURL}
	}
	if cfg.Category != "" {
		channel.Category = &rssCategory{Name: cfg.Category}
		channel.ICategory = &rssCategory{Text: cfg.Category}
	}
	if cfg.OwnerName != "" || cfg.OwnerEmail != "" {
		channel.IOwner = &itunesOwner{Name: cfg.OwnerName, Email: cfg.OwnerEmail}
	}

	channel.Items = make([]rssItem, 0, len(episodes))
	for _, episode := range episodes {
		item := rssItem{
			Title:       episode.Title,
			Link:        episode.Link,
			Description: episode.Description,
			GUID:        episode.Link,
			PubDate:     pubDateValue(episode),
		}
		if episode.EnclosureURL != "" {
			item.Enclosure = &rssEnclosure{
				URL:  episode.EnclosureURL,
				Type: enclosureMIMEType(episode.EnclosureURL),
			}
		}
		channel.Items = append(channel.Items, item)
	}

	doc := rssDocument{
		Version:  "2.0",
		ItunesNS: itunesNamespace,
		Channel:  channel,
	}

	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func explicitValue(explicit bool) string {
	if explicit {
		return "yes"
	}
	return "no"
}

func pubDateValue(episode models.Episode) string {
	if episode.PubDate.IsZero() {
		return episode.RawPubDate
	}
	return episode.PubDate.Format(time.RFC1123Z)
}

func enclosureMIMEType(enclosureURL string) string {
	ext := strings.ToLower(path.Ext(enclosureURL))
	if ext != "" {
		if mt := mime.TypeByExtension(ext); strings.HasPrefix(mt, "audio/") {
			return mt
		}
	}
	return "audio/mpeg"
}
