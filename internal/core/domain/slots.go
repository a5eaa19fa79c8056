package domain

import (
	"sort"
	"strings"
)

// Slot names.
const (
	SlotBloodType    = "bloodType"
	SlotUnitsNeeded  = "unitsNeeded"
	SlotHospitalName = "hospitalName"
	SlotPatientName  = "patientName"
	SlotRelationship = "relationship"
	SlotUrgencyLevel = "urgencyLevel"
	SlotRequiredDate = "requiredDate"
	SlotLocation     = "location"

	SlotServiceType = "serviceType"
	SlotSupportType = "supportType"
	SlotElderName   = "elderName"
	SlotAge         = "age"
	SlotFrequency   = "frequency"
	SlotTimeSlot    = "timeSlot"

	SlotComplaintCategory = "complaintCategory"
	SlotComplaintLocation = "complaintLocation"
	SlotSeverity          = "severity"
)

// Values written into slots by the extractors.
const (
	UrgencyUrgent = "urgent"
	UrgencyHigh   = "high"

	RequiredNow      = "now"
	RequiredToday    = "today"
	RequiredTomorrow = "tomorrow"

	ComplaintOther = "Other"
)

var categorySlots = map[Category][]string{
	CategoryBloodRequest: {
		SlotBloodType, SlotUnitsNeeded, SlotHospitalName, SlotPatientName,
		SlotRelationship, SlotUrgencyLevel, SlotRequiredDate, SlotLocation,
	},
	CategoryElderSupport: {
		SlotServiceType, SlotSupportType, SlotElderName, SlotAge,
		SlotFrequency, SlotTimeSlot, SlotLocation,
	},
	CategoryComplaint: {
		SlotComplaintCategory, SlotComplaintLocation, SlotSeverity,
	},
}

// CategorySlots returns the slot names that belong to a category.
func CategorySlots(c Category) []string {
	return append([]string(nil), categorySlots[c]...)
}

// RequiredSlots returns the minimal slots whose absence blocks finalization.
func RequiredSlots(c Category) []string {
	switch c {
	case CategoryBloodRequest:
		return []string{SlotBloodType}
	case CategoryElderSupport:
		return []string{SlotServiceType}
	case CategoryComplaint:
		return []string{SlotComplaintCategory}
	default:
		return nil
	}
}

// SlotMap maps slot names to extracted values.
type SlotMap map[string]string

// Get returns the trimmed value of a slot.
func (s SlotMap) Get(name string) string {
	if s == nil {
		return ""
	}

	return strings.TrimSpace(s[name])
}

// Has reports whether the slot holds a non-blank value.
func (s SlotMap) Has(name string) bool {
	return s.Get(name) != ""
}

// Clone returns an independent copy.
func (s SlotMap) Clone() SlotMap {
	out := make(SlotMap, len(s))
	for k, v := range s {
		out[k] = v
	}

	return out
}

// Merge returns a new map holding s overlaid with newer. Blank values in newer
// never erase existing ones.
func (s SlotMap) Merge(newer SlotMap) SlotMap {
	out := s.Clone()

	for k, v := range newer {
		if strings.TrimSpace(v) == "" {
			continue
		}

		out[k] = strings.TrimSpace(v)
	}

	return out
}

// Scoped drops slots that do not belong to the category.
func (s SlotMap) Scoped(c Category) SlotMap {
	allowed := categorySlots[c]
	out := make(SlotMap, len(allowed))

	for _, name := range allowed {
		if v := s.Get(name); v != "" {
			out[name] = v
		}
	}

	return out
}

// Keys returns the slot names in sorted order.
func (s SlotMap) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ConversationContext is the cross-turn state owned by the caller. The
// assistant never mutates a context it receives; it returns a fresh one.
type ConversationContext struct {
	Category     Category `json:"category"`
	Slots        SlotMap  `json:"slots"`
	AwaitingSlot string   `json:"awaitingSlot,omitempty"`
	// ExplicitUrgency records urgency wording seen in an earlier turn.
	ExplicitUrgency string `json:"explicitUrgency,omitempty"`
	FollowUps       int    `json:"followUps"`
}

// Clone returns a deep copy; a nil context clones to nil.
func (c *ConversationContext) Clone() *ConversationContext {
	if c == nil {
		return nil
	}

	out := *c
	out.Slots = c.Slots.Clone()

	return &out
}
