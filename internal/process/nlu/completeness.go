package nlu

import "github.com/lueurxax/seva-desk/internal/core/domain"

// followUpOrder is the order in which missing slots are asked for.
var followUpOrder = map[domain.Category][]string{
	domain.CategoryBloodRequest: {
		domain.SlotBloodType, domain.SlotUnitsNeeded, domain.SlotHospitalName,
		domain.SlotRelationship, domain.SlotUrgencyLevel,
	},
	domain.CategoryElderSupport: {
		domain.SlotServiceType, domain.SlotFrequency, domain.SlotTimeSlot, domain.SlotLocation,
	},
	domain.CategoryComplaint: {
		domain.SlotComplaintCategory, domain.SlotComplaintLocation,
	},
}

// GetMissingRequiredInfo returns the required slots absent from slots, in
// follow-up order. Elder support is satisfied by either serviceType or supportType.
func GetMissingRequiredInfo(category domain.Category, slots domain.SlotMap) []string {
	missing := []string{}

	for _, name := range orderedRequired(category) {
		if isSatisfied(category, name, slots) {
			continue
		}

		missing = append(missing, name)
	}

	return missing
}

// NextFollowUpSlot returns the highest-priority missing slot, or "" when none is missing.
func NextFollowUpSlot(category domain.Category, missing []string) string {
	if len(missing) == 0 {
		return ""
	}

	for _, name := range followUpOrder[category] {
		for _, m := range missing {
			if m == name {
				return name
			}
		}
	}

	return missing[0]
}

func orderedRequired(category domain.Category) []string {
	required := domain.RequiredSlots(category)
	if len(required) == 0 {
		return nil
	}

	isRequired := make(map[string]bool, len(required))
	for _, r := range required {
		isRequired[r] = true
	}

	out := make([]string, 0, len(required))

	for _, name := range followUpOrder[category] {
		if isRequired[name] {
			out = append(out, name)
			delete(isRequired, name)
		}
	}

	for _, r := range required {
		if isRequired[r] {
			out = append(out, r)
		}
	}

	return out
}

func isSatisfied(category domain.Category, name string, slots domain.SlotMap) bool {
	if slots.Has(name) {
		return true
	}

	return category == domain.CategoryElderSupport &&
		name == domain.SlotServiceType &&
		slots.Has(domain.SlotSupportType)
}
