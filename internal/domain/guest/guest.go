package guest

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// DocumentType represents the kind of identity document presented at the desk
type DocumentType string

const (
	DocumentTypeNIC            DocumentType = "nic"
	DocumentTypePassport       DocumentType = "passport"
	DocumentTypeDrivingLicense DocumentType = "driving_license"
)

// Document is one identity document presented by a guest. A guest carries at
// least one and at most one per type; values are unique within a property.
type Document struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	GuestID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	PropertyID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_guest_document_property_value,priority:1" json:"-"`
	Type       DocumentType `gorm:"type:varchar(20);not null" json:"type"`
	Value      string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_guest_document_property_value,priority:2" json:"value"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "guest_documents"
}

// Guest represents a registered hotel guest
// It is the aggregate root for guest-related operations
type Guest struct {
	shared.PropertyAggregateRoot
	FullName    string     `gorm:"type:varchar(200);not null"`
	Phone       string     `gorm:"type:varchar(50);index"`
	Email       string     `gorm:"type:varchar(200);index"`
	Address     string     `gorm:"type:text"`
	Nationality string     `gorm:"type:varchar(100)"`
	Documents   []Document `gorm:"foreignKey:GuestID"`
	Notes       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Guest) TableName() string {
	return "guests"
}

// NewGuest creates a new guest. At least one identity document is required.
func NewGuest(propertyID uuid.UUID, fullName string, docs []Document) (*Guest, error) {
	if err := validateGuestName(fullName); err != nil {
		return nil, err
	}
	if err := validateDocuments(docs); err != nil {
		return nil, err
	}

	guest := &Guest{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		FullName:              fullName,
	}
	guest.Documents = attachDocuments(guest, docs)

	guest.AddDomainEvent(NewGuestRegisteredEvent(guest))

	return guest, nil
}

// Update updates the guest's basic information
func (g *Guest) Update(fullName, nationality string) error {
	if err := validateGuestName(fullName); err != nil {
		return err
	}
	if nationality != "" && len(nationality) > 100 {
		return shared.NewDomainError("INVALID_NATIONALITY", "Nationality cannot exceed 100 characters")
	}

	g.FullName = fullName
	g.Nationality = nationality
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	g.AddDomainEvent(NewGuestUpdatedEvent(g))

	return nil
}

// SetContact sets the guest's contact information
func (g *Guest) SetContact(phone, email, address string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	g.Phone = phone
	g.Email = email
	g.Address = address
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}

// SetDocuments replaces the guest's identity documents. The at-least-one
// invariant holds through the replacement.
func (g *Guest) SetDocuments(docs []Document) error {
	if err := validateDocuments(docs); err != nil {
		return err
	}

	g.Documents = attachDocuments(g, docs)
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	g.AddDomainEvent(NewGuestUpdatedEvent(g))

	return nil
}

// PrimaryDocument returns the guest's leading identity document
func (g *Guest) PrimaryDocument() Document {
	if len(g.Documents) == 0 {
		return Document{}
	}
	return g.Documents[0]
}

// HasDocument reports whether any of the guest's documents carries the value
func (g *Guest) HasDocument(value string) bool {
	trimmed := strings.TrimSpace(value)
	for _, d := range g.Documents {
		if d.Value == trimmed {
			return true
		}
	}
	return false
}

// SetNotes sets the guest's notes
func (g *Guest) SetNotes(notes string) {
	g.Notes = notes
	g.UpdatedAt = time.Now()
	g.IncrementVersion()
}

// attachDocuments stamps ownership onto validated document rows. Existing row
// ids are kept so replacements update in place.
func attachDocuments(g *Guest, docs []Document) []Document {
	attached := make([]Document, len(docs))
	for i, d := range docs {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		d.GuestID = g.ID
		d.PropertyID = g.PropertyID
		d.Value = strings.TrimSpace(d.Value)
		attached[i] = d
	}
	return attached
}

// Validation functions

func validateGuestName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Guest name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Guest name cannot exceed 200 characters")
	}
	return nil
}

func validateDocuments(docs []Document) error {
	if len(docs) == 0 {
		return shared.NewDomainError("INVALID_DOCUMENT", "At least one identity document is required")
	}

	seenValues := make(map[string]bool, len(docs))
	seenTypes := make(map[DocumentType]bool, len(docs))
	for _, d := range docs {
		if err := validateDocumentType(d.Type); err != nil {
			return err
		}
		if err := validateDocumentValue(d.Value); err != nil {
			return err
		}
		value := strings.TrimSpace(d.Value)
		if seenValues[value] {
			return shared.NewDomainError("DUPLICATE_DOCUMENT", "Document values must be distinct")
		}
		if seenTypes[d.Type] {
			return shared.NewDomainError("DUPLICATE_DOCUMENT", "A guest can carry only one document per type")
		}
		seenValues[value] = true
		seenTypes[d.Type] = true
	}
	return nil
}

func validateDocumentType(t DocumentType) error {
	switch t {
	case DocumentTypeNIC, DocumentTypePassport, DocumentTypeDrivingLicense:
		return nil
	default:
		return shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Document type must be 'nic', 'passport', or 'driving_license'")
	}
}

func validateDocumentValue(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_DOCUMENT", "Document value cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_DOCUMENT", "Document value cannot exceed 100 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
