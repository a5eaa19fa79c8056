package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	"github.com/lueurxax/seva-desk/internal/process/nlu"
)

const (
	titleLocationSep = " - "
	maxDescription   = 500
)

type titleRule struct {
	pattern *regexp.Regexp
	title   string
}

// Finer-grained complaint titles, checked before the per-category phrase.
var complaintTitleOverrides = []titleRule{
	{regexp.MustCompile(`(?i)\bstreet\s*-?\s*lights?\b|\blamp\s*posts?\b`), "Street lights not working"},
	{regexp.MustCompile(`(?i)\bpot\s*-?\s*holes?\b`), "Pothole on road"},
	{regexp.MustCompile(`(?i)\bwater\s+leak(?:age|ing|s)?\b|\bpipe\s+(?:leak|burst)`), "Water leakage"},
	{regexp.MustCompile(`(?i)\bpower\s+cuts?\b|\bno\s+power\b|\bpower\s+outage\b`), "Power cut in the area"},
	{regexp.MustCompile(`(?i)\bgarbage\b|\btrash\b`), "Garbage not collected"},
	{regexp.MustCompile(`(?i)\bdrain(?:age)?\b|\bsewage\b`), "Drainage problem"},
	{regexp.MustCompile(`(?i)\bno\s+water\b|\bwater\s+not\s+coming\b`), "No water supply"},
}

var complaintTitles = map[string]string{
	nlu.ComplaintRoadMaintenance: "Road maintenance issue",
	nlu.ComplaintWaterSupply:     "Water supply issue",
	nlu.ComplaintWasteManagement: "Waste collection issue",
	nlu.ComplaintElectricity:     "Electricity issue",
	nlu.ComplaintPublicSafety:    "Public safety concern",
	domain.ComplaintOther:        "Civic complaint",
}

// Elder request titles by keyword bucket.
var elderTitleRules = []titleRule{
	{regexp.MustCompile(`(?i)\bmedicines?\b|\bmedications?\b|\btablets\b|\bpharmacy\b`), "Medicine delivery for elderly"},
	{regexp.MustCompile(`(?i)\bgrocer(?:y|ies)\b|\bvegetables\b|\bshopping\b`), "Grocery shopping for elderly"},
	{regexp.MustCompile(`(?i)\bappointments?\b|\bdoctor\b|\bcheck\s*-?\s*up\b`), "Medical appointment assistance"},
	{regexp.MustCompile(`(?i)\bhousehold\b|\bcleaning\b|\bcooking\b|\bchores\b`), "Household help for elderly"},
}

const elderGenericTitle = "Elder support request"

// BuildTitleAndDescription composes the short title and the stored
// description of a request. text is the English-normalized message.
func BuildTitleAndDescription(category domain.Category, slots domain.SlotMap, text string) (string, string) {
	location := nlu.ExtractLocation(text)

	var title, description string

	switch category {
	case domain.CategoryBloodRequest:
		title = fmt.Sprintf("Need %s blood", slots.Get(domain.SlotBloodType))
		description = bloodDescription(slots)
	case domain.CategoryElderSupport:
		title = elderTitle(slots, text)
		description = elderDescription(slots)
	case domain.CategoryComplaint:
		if location == "" {
			location = slots.Get(domain.SlotComplaintLocation)
		}

		title = complaintTitle(slots, text)
		description = complaintDescription(slots)
	default:
		return "", truncate(text, maxDescription)
	}

	if location != "" {
		title += titleLocationSep + location
	}

	if text != "" {
		description += " Message: " + text
	}

	return title, truncate(description, maxDescription)
}

func complaintTitle(slots domain.SlotMap, text string) string {
	if t, ok := firstTitle(complaintTitleOverrides, text); ok {
		return t
	}

	if t, ok := complaintTitles[slots.Get(domain.SlotComplaintCategory)]; ok {
		return t
	}

	return complaintTitles[domain.ComplaintOther]
}

func elderTitle(slots domain.SlotMap, text string) string {
	if t, ok := firstTitle(elderTitleRules, text); ok {
		return t
	}

	if svc := slots.Get(domain.SlotServiceType); svc != "" {
		return svc + " for elderly"
	}

	return elderGenericTitle
}

func firstTitle(rules []titleRule, text string) (string, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.title, true
		}
	}

	return "", false
}

func bloodDescription(slots domain.SlotMap) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s blood needed", slots.Get(domain.SlotBloodType))

	if units := slots.Get(domain.SlotUnitsNeeded); units != "" {
		fmt.Fprintf(&sb, ", %s unit(s)", units)
	}

	if h := slots.Get(domain.SlotHospitalName); h != "" {
		fmt.Fprintf(&sb, " at %s", h)
	}

	if p := slots.Get(domain.SlotPatientName); p != "" {
		fmt.Fprintf(&sb, " for patient %s", p)
	}

	sb.WriteString(".")

	return sb.String()
}

func elderDescription(slots domain.SlotMap) string {
	var sb strings.Builder

	svc := slots.Get(domain.SlotServiceType)
	if svc == "" {
		svc = "Support"
	}

	sb.WriteString(svc + " requested")

	if name := slots.Get(domain.SlotElderName); name != "" {
		sb.WriteString(" for " + name)

		if age := slots.Get(domain.SlotAge); age != "" {
			sb.WriteString(" (" + age + ")")
		}
	}

	if f := slots.Get(domain.SlotFrequency); f != "" {
		sb.WriteString(", " + f)
	}

	sb.WriteString(".")

	return sb.String()
}

func complaintDescription(slots domain.SlotMap) string {
	category := slots.Get(domain.SlotComplaintCategory)
	if category == "" {
		category = domain.ComplaintOther
	}

	if loc := slots.Get(domain.SlotComplaintLocation); loc != "" {
		return fmt.Sprintf("%s complaint at %s.", category, loc)
	}

	return category + " complaint."
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}

	return string(r[:limit])
}
