package nlu

import (
	"regexp"
	"strings"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// Complaint categories.
const (
	ComplaintRoadMaintenance = "Road Maintenance"
	ComplaintWaterSupply     = "Water Supply"
	ComplaintWasteManagement = "Waste Management"
	ComplaintElectricity     = "Electricity"
	ComplaintPublicSafety    = "Public Safety"
)

// complaintRules is ordered; "street" is deliberately absent from the road
// words so that street lights fall through to Electricity.
var complaintRules = []rule{
	newRule(anyOf(
		latin(
			"pothole", "potholes", "road", "roads", "speed breaker", "footpath", "pavement",
			"asphalt", "tarmac", "sadak", "sadak kharab", "rasta", "roddu",
		),
		native("सड़क", "गड्ढा", "गड्ढे", "रास्ता", "రోడ్డు", "గుంత", "రహదారి"),
	), ComplaintRoadMaintenance),
	newRule(anyOf(
		latin(
			"water", "water supply", "pipeline", "pipe", "tap", "leak", "leaking", "leakage",
			"borewell", "tanker", "paani", "pani", "neellu", "neeru",
		),
		native("पानी", "नल", "पाइप", "నీళ్లు", "నీరు", "నీటి", "పైప్"),
	), ComplaintWaterSupply),
	newRule(anyOf(
		latin(
			"garbage", "trash", "waste", "rubbish", "dustbin", "litter", "sewage", "drain",
			"drainage", "dump", "kachra", "kooda", "chetta",
		),
		native("कचरा", "कूड़ा", "नाली", "గార్బేజ్", "చెత్త", "మురుగు"),
	), ComplaintWasteManagement),
	newRule(anyOf(
		latin(
			"electricity", "power", "power cut", "outage", "street light", "street lights",
			"streetlight", "streetlights", "light", "lights", "transformer", "current", "wire",
			"wires", "electric", "bijli", "karent",
		),
		native("बिजली", "लाइट", "करंट", "కరెంట్", "విద్యుత్", "వీధి దీపాలు", "లైట్"),
	), ComplaintElectricity),
	newRule(anyOf(
		latin(
			"safety", "unsafe", "crime", "theft", "robbery", "harassment", "stray dog", "stray dogs",
			"fight", "police", "security", "dangerous", "illegal", "chori",
		),
		native("चोरी", "सुरक्षा", "असुरक्षित", "దొంగతనం", "భద్రత"),
	), ComplaintPublicSafety),
}

var complaintLocationPattern = regexp.MustCompile(
	`\b(?i:in|at|near|on|opposite|behind|beside)\s+([A-Z][\w.'&-]*(?:\s+[A-Z0-9][\w.'&-]*){0,4})`,
)

// MatchComplaintCategory returns the first complaint category whose words
// appear in text. The location phrase is removed first so that place names
// such as "MG Road" do not decide the category.
func MatchComplaintCategory(text string) (string, bool) {
	text = prepare(text)

	if loc := complaintLocationPattern.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + " " + text[loc[1]:]
	}

	return firstMatch(complaintRules, text)
}

// ExtractComplaintLocation returns the place named after in/at/near/on.
func ExtractComplaintLocation(text string) string {
	return firstLocation(complaintLocationPattern, prepare(text))
}

func extractComplaintInfo(text string) domain.SlotMap {
	slots := domain.SlotMap{}

	if c, ok := MatchComplaintCategory(text); ok {
		slots[domain.SlotComplaintCategory] = c
	}

	if loc := ExtractComplaintLocation(text); loc != "" {
		slots[domain.SlotComplaintLocation] = loc
	}

	if sev := severityFor(DeterminePriority(text)); sev != "" {
		slots[domain.SlotSeverity] = sev
	}

	return slots
}

// severityFor maps explicit priority wording onto a complaint severity.
// Medium is the assembler default and is not reported.
func severityFor(p domain.Priority) string {
	switch p {
	case domain.PriorityUrgent:
		return "critical"
	case domain.PriorityHigh:
		return "high"
	case domain.PriorityLow:
		return "low"
	default:
		return ""
	}
}

// IsComplaintCategory reports whether s names a known complaint category or Other.
func IsComplaintCategory(s string) bool {
	switch strings.TrimSpace(s) {
	case ComplaintRoadMaintenance, ComplaintWaterSupply, ComplaintWasteManagement,
		ComplaintElectricity, ComplaintPublicSafety, domain.ComplaintOther:
		return true
	default:
		return false
	}
}
