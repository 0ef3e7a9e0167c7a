package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sport categories an event can belong to. At most one event exists per category;
// the check lives in the event service, not in a DB constraint, because archived
// events still block the category.
const (
	CategoryCricket      = "cricket"
	CategoryFootball     = "football"
	CategoryBasketball   = "basketball"
	CategoryVolleyball   = "volleyball"
	CategoryBadminton    = "badminton"
	CategoryTableTennis  = "table-tennis"
	CategoryLawnTennis   = "lawn-tennis"
	CategoryChess        = "chess"
	CategoryCarrom       = "carrom"
	CategoryAthletics    = "athletics"
	CategorySwimming     = "swimming"
	CategoryKabaddi      = "kabaddi"
	CategoryHockey       = "hockey"
	CategoryEsports      = "esports"
	CategoryPowerlifting = "powerlifting"
)

func SportCategories() []string {
	return []string{
		CategoryCricket, CategoryFootball, CategoryBasketball, CategoryVolleyball,
		CategoryBadminton, CategoryTableTennis, CategoryLawnTennis, CategoryChess,
		CategoryCarrom, CategoryAthletics, CategorySwimming, CategoryKabaddi,
		CategoryHockey, CategoryEsports, CategoryPowerlifting,
	}
}

type Admin struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Role      string     `gorm:"type:varchar(20);not null;default:'admin'" json:"role"` // super_admin|admin|moderator
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Event struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                 string         `gorm:"not null" json:"name"`
	Description          string         `gorm:"type:text" json:"description"`
	Category             string         `gorm:"type:varchar(30);index;not null" json:"category"`
	RegistrationDeadline time.Time      `gorm:"not null" json:"registration_deadline"`
	EventDate            time.Time      `gorm:"not null" json:"event_date"`
	MaxParticipants      *int           `json:"max_participants"` // nil = unlimited
	RegistrationFee      float64        `gorm:"default:0" json:"registration_fee"`
	IsActive             bool           `gorm:"default:true" json:"is_active"`
	IsPublished          bool           `gorm:"default:false" json:"is_published"`
	CustomFields         datatypes.JSON `json:"custom_fields"` // dynamic form schema shown to registrants
	Coordinators         datatypes.JSON `json:"coordinators"`
	CreatedBy            uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	UpdatedBy            *uuid.UUID     `gorm:"type:uuid" json:"updated_by"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`

	// Relations
	Registrations []Registration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}

// CustomField is one entry of Event.CustomFields.
type CustomField struct {
	Label      string   `json:"label"`
	Type       string   `json:"type"` // text|number|email|select|textarea
	Name       string   `json:"name"`
	Options    []string `json:"options,omitempty"`
	Validation string   `json:"validation,omitempty"`
	Required   bool     `json:"required"`
}

type Registration struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_email" json:"event_id"`
	EventName string    `gorm:"not null" json:"event_name"` // denormalized for exports and listings

	// Promoted scalars extracted from FormData for query efficiency. Email takes
	// part in the compound unique index: one registration per (event, email).
	Email       string `gorm:"not null;uniqueIndex:idx_registrations_event_email" json:"email"`
	Name        string `gorm:"not null" json:"name"`
	Phone       string `json:"phone"`
	Institution string `gorm:"index" json:"institution"`
	City        string `gorm:"index" json:"city"`

	FormData datatypes.JSONMap `json:"form_data"`

	Status        string  `gorm:"type:varchar(20);default:'pending';index" json:"status"`         // pending|confirmed|cancelled|waitlist
	PaymentStatus string  `gorm:"type:varchar(20);default:'pending';index" json:"payment_status"` // pending|completed|failed|not_required
	Amount        float64 `gorm:"default:0" json:"amount"`

	PermissionLetter   string `gorm:"not null" json:"permission_letter"`
	TransactionReceipt string `gorm:"not null" json:"transaction_receipt"`
	CaptainIDCard      string `gorm:"not null" json:"captain_id_card"`

	RegistrationNumber string `gorm:"uniqueIndex;not null" json:"registration_number"`
	QRPath             string `json:"qr_path"`

	// Audit trail captured at submission time.
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// Marathon is a flat participant record; the marathon is its own implicit event.
type Marathon struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone       string    `gorm:"not null" json:"phone"`
	Age         int       `json:"age"`
	Gender      string    `gorm:"type:varchar(10)" json:"gender"`   // male|female|other
	Category    string    `gorm:"type:varchar(10)" json:"category"` // 5k|10k|half|full
	Institution string    `json:"institution"`
	City        string    `json:"city"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	BloodGroup            string `gorm:"type:varchar(5)" json:"blood_group"`
	TShirtSize            string `gorm:"type:varchar(5)" json:"t_shirt_size"`

	Status             string `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaymentStatus      string `gorm:"type:varchar(20);default:'pending';index" json:"payment_status"`
	RegistrationNumber string `gorm:"uniqueIndex;not null" json:"registration_number"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Media catalog categories.
const (
	MediaCategoryEvents   = "events"
	MediaCategorySports   = "sports"
	MediaCategoryCultural = "cultural"
	MediaCategoryCampus   = "campus"
	MediaCategoryWinners  = "winners"
	MediaCategoryGeneral  = "general"
)

type Media struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"type:varchar(10);not null;index" json:"type"` // image|video

	CloudinaryID string `gorm:"not null" json:"cloudinary_id"`
	URL          string `gorm:"not null" json:"url"`
	SecureURL    string `gorm:"not null" json:"secure_url"`
	PublicID     string `gorm:"not null" json:"public_id"`
	ThumbnailURL string `json:"thumbnail_url"`

	Format       string  `json:"format"`
	ResourceType string  `json:"resource_type"`
	Size         int64   `json:"size"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Duration     float64 `json:"duration"`

	Tags     datatypes.JSON `json:"tags"`
	Category string         `gorm:"type:varchar(20);default:'general';index" json:"category"`
	IsActive bool           `gorm:"default:true" json:"is_active"`

	UploadedBy uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`

	// Manual gallery position; new uploads append at max+1.
	DisplayOrder int `gorm:"column:display_order;default:0;index" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SequenceCounter backs registration-number ordinals. One row per event plus a
// single "marathon" row; incremented atomically inside the insert transaction so
// concurrent submissions never read the same ordinal.
type SequenceCounter struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
