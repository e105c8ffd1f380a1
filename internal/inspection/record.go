package inspection

import (
	"encoding/json"
	"strings"
	"time"
)

// FallbackInspectionDate is substituted whenever the schedule carries no
// usable timestamp. A bad timestamp must never block report generation.
const FallbackInspectionDate = "08/13/2025"

// Record is the root of a parsed inspection document. It is immutable
// once loaded; the flat getters below expose defaulted views of it.
type Record struct {
	Inspection Inspection `json:"inspection"`
}

// Inspection mirrors the nested shape of the source document. Every
// leaf field is optional; a missing key yields the zero value.
type Inspection struct {
	Address    Address   `json:"address"`
	ClientInfo Client    `json:"clientInfo"`
	Inspector  Inspector `json:"inspector"`
	Schedule   Schedule  `json:"schedule"`
	Sections   []Section `json:"sections"`
}

// Address holds the property location as stored in the record.
type Address struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zipcode      string `json:"zipcode"`
	FullAddress  string `json:"fullAddress"`
	PropertyInfo struct {
		SquareFootage json.Number `json:"squareFootage"`
	} `json:"propertyInfo"`
}

// Property is the flat view of the inspected property.
type Property struct {
	Street        string
	City          string
	State         string
	Zipcode       string
	FullAddress   string
	SquareFootage string
}

// Client identifies the party the report is prepared for.
type Client struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	UserType string `json:"userType"`
}

// Inspector identifies the licensed inspector performing the inspection.
type Inspector struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Schedule holds the inspection date as a millisecond epoch timestamp
// plus the start/end time strings.
type Schedule struct {
	Date      json.Number `json:"date"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
}

// InspectionDate renders the schedule timestamp as MM/DD/YYYY. A
// missing or unconvertible timestamp yields FallbackInspectionDate,
// never an error.
func (s Schedule) InspectionDate() string {
	ms, err := s.Date.Int64()
	if err != nil || ms == 0 {
		return FallbackInspectionDate
	}
	return time.UnixMilli(ms).Format("01/02/2006")
}

// Section is one report section with its ordered line items. Order is
// preserved from the source document, never re-sorted.
type Section struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Order         int         `json:"order"`
	SectionNumber json.Number `json:"sectionNumber"`
	LineItems     []LineItem  `json:"lineItems"`
}

// Status returns the section's effective status code: the first line
// item's status, trimmed. Later line items are never consulted.
func (s Section) Status() string {
	if len(s.LineItems) == 0 {
		return ""
	}
	return strings.TrimSpace(s.LineItems[0].InspectionStatus)
}

// LineItem is a single inspected item within a section.
type LineItem struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Title            string    `json:"title"`
	Order            int       `json:"order"`
	InspectionStatus string    `json:"inspectionStatus"`
	IsDeficient      bool      `json:"isDeficient"`
	Comments         []Comment `json:"comments"`
}

// Comment is a free-text observation on a line item. Photo and video
// references are carried through untouched; nothing downstream uses
// them yet.
type Comment struct {
	ID            string            `json:"id"`
	Text          string            `json:"text"`
	Type          string            `json:"type"`
	Location      string            `json:"location"`
	Label         string            `json:"label"`
	IsSelected    bool              `json:"isSelected"`
	IsFlagged     bool              `json:"isFlagged"`
	CommentNumber json.Number       `json:"commentNumber"`
	Photos        []json.RawMessage `json:"photos"`
	Videos        []json.RawMessage `json:"videos"`
}

// PropertyInfo returns the flat property view.
func (r *Record) PropertyInfo() Property {
	addr := r.Inspection.Address
	return Property{
		Street:        addr.Street,
		City:          addr.City,
		State:         addr.State,
		Zipcode:       addr.Zipcode,
		FullAddress:   addr.FullAddress,
		SquareFootage: addr.PropertyInfo.SquareFootage.String(),
	}
}

// ClientInfo returns the client view.
func (r *Record) ClientInfo() Client {
	return r.Inspection.ClientInfo
}

// InspectorInfo returns the inspector view.
func (r *Record) InspectorInfo() Inspector {
	return r.Inspection.Inspector
}

// InspectionSchedule returns the schedule view.
func (r *Record) InspectionSchedule() Schedule {
	return r.Inspection.Schedule
}

// Sections returns the ordered sections with their line items and
// comments.
func (r *Record) Sections() []Section {
	return r.Inspection.Sections
}

// Stats summarizes a record for the end-of-run report.
type Stats struct {
	Sections     int
	LineItems    int
	Comments     int
	Deficiencies int
}

// Stats walks the record once and counts sections, line items,
// comments and deficient line items.
func (r *Record) Stats() Stats {
	st := Stats{Sections: len(r.Inspection.Sections)}
	for _, sec := range r.Inspection.Sections {
		st.LineItems += len(sec.LineItems)
		for _, item := range sec.LineItems {
			st.Comments += len(item.Comments)
			if item.IsDeficient {
				st.Deficiencies++
			}
		}
	}
	return st
}
