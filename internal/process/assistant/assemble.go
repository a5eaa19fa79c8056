package assistant

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/process/nlu"
)

// Defaults for optional request fields.
const (
	defaultUnits        = 1
	defaultRelationship = "Self"
	defaultFrequency    = "one-time"
	defaultTimeSlot     = "flexible"
	defaultSeverity     = "medium"
	defaultUrgency      = domain.UrgencyHigh

	anonymousRequester = "anonymous"
)

var referencePrefixes = map[domain.RequestType]string{
	domain.RequestTypeBlood:        "BR-",
	domain.RequestTypeElderSupport: "ES-",
	domain.RequestTypeComplaint:    "CP-",
}

var bloodTypeFormat = regexp.MustCompile(`^(?:A|B|AB|O)[+-]$`)

// AssembleInput is everything the assembler needs to build a request.
type AssembleInput struct {
	Category    domain.Category
	Priority    domain.Priority
	Slots       domain.SlotMap
	Text        string
	Language    domain.Language
	InputMethod domain.InputMethod
	User        *domain.User
	TurnID      string
}

// Assembler builds service requests from accumulated slots.
type Assembler struct {
	defaultLocation domain.Location
	now             func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewAssembler creates an assembler that falls back to loc when neither the
// message nor the requester profile names a place.
func NewAssembler(loc domain.Location, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}

	return &Assembler{
		defaultLocation: loc,
		now:             now,
		entropy:         ulid.Monotonic(rand.Reader, 0),
	}
}

// Assemble builds the request entity. A blood request without a valid blood
// type is rejected with ErrValidation.
func (a *Assembler) Assemble(in AssembleInput) (*domain.ServiceRequest, error) {
	reqType, ok := domain.RequestTypeFor(in.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a service category", coreerrors.ErrValidation, in.Category)
	}

	if err := validateSlots(in.Category, in.Slots); err != nil {
		return nil, err
	}

	now := a.now()
	title, description := BuildTitleAndDescription(in.Category, in.Slots, in.Text)

	req := &domain.ServiceRequest{
		ReferenceCode: a.referenceCode(reqType, now),
		Type:          reqType,
		RequesterID:   anonymousRequester,
		Title:         title,
		Description:   description,
		Location:      a.location(in.Category, in.Slots, in.User),
		Priority:      domain.RequestPriority(in.Priority),
		Status:        domain.RequestStatusPending,
		Language:      in.Language,
		InputMethod:   in.InputMethod,
		TurnID:        in.TurnID,
		CreatedAt:     now,
	}

	if in.User != nil {
		req.RequesterID = in.User.ID
		req.RequesterName = in.User.Name
		req.Phone = in.User.Phone
	}

	switch reqType {
	case domain.RequestTypeBlood:
		req.Blood = bloodDetails(in.Slots, in.Text, now)
	case domain.RequestTypeElderSupport:
		req.Elder = elderDetails(in.Slots)
	case domain.RequestTypeComplaint:
		req.Complaint = complaintDetails(in.Slots)
	}

	return req, nil
}

func validateSlots(category domain.Category, slots domain.SlotMap) error {
	if category != domain.CategoryBloodRequest {
		return nil
	}

	bt := slots.Get(domain.SlotBloodType)
	if bt == "" {
		return fmt.Errorf("%w: blood request without blood type", coreerrors.ErrValidation)
	}

	if !bloodTypeFormat.MatchString(bt) {
		return fmt.Errorf("%w: unsupported blood type %q", coreerrors.ErrValidation, bt)
	}

	return nil
}

func (a *Assembler) referenceCode(t domain.RequestType, now time.Time) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return referencePrefixes[t] + ulid.MustNew(ulid.Timestamp(now), a.entropy).String()
}

// location prefers the place named in the conversation, then the requester
// profile, then the configured default.
func (a *Assembler) location(category domain.Category, slots domain.SlotMap, user *domain.User) domain.Location {
	loc := a.defaultLocation

	if user != nil && user.Address != "" {
		loc = domain.Location{Address: user.Address, Lat: user.Lat, Lng: user.Lng}
	}

	extracted := slots.Get(domain.SlotLocation)
	if category == domain.CategoryComplaint {
		extracted = slots.Get(domain.SlotComplaintLocation)
	}

	if extracted != "" {
		loc.Address = extracted
	}

	return loc
}

func bloodDetails(slots domain.SlotMap, text string, now time.Time) *domain.BloodDetails {
	return &domain.BloodDetails{
		BloodType:        slots.Get(domain.SlotBloodType),
		UnitsNeeded:      positiveInt(slots.Get(domain.SlotUnitsNeeded), defaultUnits),
		HospitalName:     slots.Get(domain.SlotHospitalName),
		PatientName:      titleName(slots.Get(domain.SlotPatientName)),
		Relationship:     orDefault(slots.Get(domain.SlotRelationship), defaultRelationship),
		UrgencyLevel:     orDefault(slots.Get(domain.SlotUrgencyLevel), defaultUrgency),
		RequiredDate:     resolveRequiredDate(slots.Get(domain.SlotRequiredDate), now),
		MedicalCondition: truncate(text, maxDescription),
	}
}

func elderDetails(slots domain.SlotMap) *domain.ElderSupportDetails {
	serviceType := slots.Get(domain.SlotServiceType)
	supportType := slots.Get(domain.SlotSupportType)

	if svc, ok := nlu.ElderServiceBySupportType(supportType); ok && serviceType == "" {
		serviceType = svc.Name
	}

	if supportType == "" {
		if svc, ok := nlu.MatchElderService(serviceType); ok {
			supportType = svc.SupportType
		}
	}

	return &domain.ElderSupportDetails{
		ServiceType: serviceType,
		SupportType: supportType,
		ElderName:   titleName(slots.Get(domain.SlotElderName)),
		Age:         positiveInt(slots.Get(domain.SlotAge), 0),
		Frequency:   orDefault(slots.Get(domain.SlotFrequency), defaultFrequency),
		TimeSlot:    orDefault(slots.Get(domain.SlotTimeSlot), defaultTimeSlot),
	}
}

func complaintDetails(slots domain.SlotMap) *domain.ComplaintDetails {
	category := slots.Get(domain.SlotComplaintCategory)
	if !nlu.IsComplaintCategory(category) {
		category = domain.ComplaintOther
	}

	return &domain.ComplaintDetails{
		Category: category,
		Location: slots.Get(domain.SlotComplaintLocation),
		Severity: orDefault(slots.Get(domain.SlotSeverity), defaultSeverity),
	}
}

// resolveRequiredDate turns the requiredDate slot into a time. Unknown
// values mean as soon as possible.
func resolveRequiredDate(value string, now time.Time) time.Time {
	switch value {
	case domain.RequiredTomorrow:
		return now.AddDate(0, 0, 1)
	case "", domain.RequiredNow, domain.RequiredToday:
		return now
	}

	if d, err := time.ParseInLocation(time.DateOnly, value, now.Location()); err == nil {
		return d
	}

	return now
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}

	return n
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}

	return s
}

func titleName(s string) string {
	if s == "" {
		return ""
	}

	return cases.Title(language.English).String(s)
}
