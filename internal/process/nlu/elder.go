package nlu

import (
	"regexp"
	"strconv"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// ElderService is one entry of the fixed elder-support service enumeration.
type ElderService struct {
	Name        string
	SupportType string
}

// Elder-support services.
var (
	ServiceMedicineDelivery    = ElderService{Name: "Medicine Delivery", SupportType: "medicine_delivery"}
	ServiceMedicalAppointment  = ElderService{Name: "Medical Appointment", SupportType: "medical_appointment"}
	ServiceGroceryShopping     = ElderService{Name: "Grocery Shopping", SupportType: "grocery_shopping"}
	ServiceHouseholdHelp       = ElderService{Name: "Household Help", SupportType: "household_help"}
	ServiceCompanionship       = ElderService{Name: "Companionship", SupportType: "companionship"}
	ServiceEmergencyAssistance = ElderService{Name: "Emergency Assistance", SupportType: "emergency_assistance"}
)

type serviceRule struct {
	pattern *regexp.Regexp
	service ElderService
}

var serviceRules = []serviceRule{
	{regexp.MustCompile(anyOf(
		latin(
			"medicine", "medicines", "medication", "medications", "tablets", "pharmacy", "prescription",
			"dawa", "dawai", "davai", "mandulu",
		),
		native("दवा", "मेडिसिन", "మందు", "మెడిసిన్"),
	)), ServiceMedicineDelivery},
	{regexp.MustCompile(anyOf(
		latin(
			"appointment", "doctor", "checkup", "check-up", "check up", "hospital visit", "clinic",
			"physiotherapy", "dialysis", "daktar",
		),
		native("डॉक्टर", "अस्पताल", "डॉक्टरी", "డాక్టర్", "ఆసుపత్రి", "హాస్పిటల్"),
	)), ServiceMedicalAppointment},
	{regexp.MustCompile(anyOf(
		latin("grocery", "groceries", "vegetables", "shopping", "ration", "kirana", "sabzi", "sabji", "saman"),
		native("किराना", "सब्जी", "राशन", "సరుకులు", "కిరాణా", "కూరగాయలు"),
	)), ServiceGroceryShopping},
	{regexp.MustCompile(anyOf(
		latin(
			"cleaning", "cooking", "household", "housework", "house work", "chores", "laundry",
			"washing clothes", "maid", "repairs", "safai", "khana",
		),
		native("सफाई", "खाना बनाना", "घर का काम", "వంట", "ఇంటి పని", "శుభ్రం"),
	)), ServiceHouseholdHelp},
	{regexp.MustCompile(anyOf(
		latin(
			"companion", "companionship", "company", "lonely", "alone", "someone to talk", "talk to",
			"visit", "visits", "akela", "akeli", "ontari",
		),
		native("अकेले", "अकेली", "अकेलापन", "ఒంటరి"),
	)), ServiceCompanionship},
	{regexp.MustCompile(anyOf(
		latin("emergency", "fell", "fallen", "fall", "fainted", "ambulance", "urgent help"),
		native("आपातकाल", "इमरजेंसी", "गिर गए", "गिर गई", "అత్యవసర", "పడిపోయారు"),
	)), ServiceEmergencyAssistance},
}

var (
	frequencyRules = []rule{
		newRule(anyOf(
			latin("daily", "every day", "everyday", "each day", "roz", "rozana", "pratidin", "roju", "prathi roju"),
			native("रोज़", "रोज", "रोजाना", "प्रतिदिन", "రోజూ", "ప్రతిరోజు", "ప్రతి రోజు"),
		), "daily"),
		newRule(anyOf(
			latin("weekly", "every week", "once a week", "twice a week", "har hafte"),
			native("हर हफ्ते", "हर हफ़्ते", "साप्ताहिक", "వారానికి", "ప్రతి వారం"),
		), "weekly"),
		newRule(anyOf(
			latin("monthly", "every month", "once a month", "har mahine"),
			native("हर महीने", "मासिक", "నెలకు", "ప్రతి నెల"),
		), "monthly"),
		newRule(anyOf(
			latin("once", "one time", "one-time", "just once", "only once", "ek baar"),
			native("एक बार", "ఒక్కసారి"),
		), "one-time"),
	}

	timeSlotRules = []rule{
		newRule(anyOf(latin("morning", "subah", "udayam"), native("सुबह", "ఉదయం")), "morning"),
		newRule(anyOf(latin("afternoon", "dopahar", "madhyahnam"), native("दोपहर", "మధ్యాహ్నం")), "afternoon"),
		newRule(anyOf(latin("evening", "shaam", "sham", "sayantram"), native("शाम", "సాయంత్రం")), "evening"),
		newRule(anyOf(latin("night", "raat", "ratri"), native("रात", "రాత్రి")), "night"),
	}

	agePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{2,3})\s*-?\s*(?:years?|yrs?|age)\b`),
		regexp.MustCompile(`(?i)\b(?:aged?|umar|vayasu)\s*:?\s*(\d{2,3})\b`),
		regexp.MustCompile(canonical(`(\d{2,3})\s*(?:साल|वर्ष|సంవత్సరాల|ఏళ్ల)`)),
	}

	elderNamePattern = regexp.MustCompile(
		`(?i:\bmy\s+(?:grand)?(?:mother|father|mom|dad|ma|pa|uncle|aunt|aunty)(?:'s\s+name\s+is)?,?\s+)` +
			`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`,
	)
)

const (
	minElderAge = 10
	maxElderAge = 130
)

// MatchElderService returns the first service whose keywords appear in text.
func MatchElderService(text string) (ElderService, bool) {
	text = prepare(text)

	for _, r := range serviceRules {
		if r.pattern.MatchString(text) {
			return r.service, true
		}
	}

	return ElderService{}, false
}

// ElderServiceBySupportType returns the service carrying a support type tag.
func ElderServiceBySupportType(tag string) (ElderService, bool) {
	for _, r := range serviceRules {
		if r.service.SupportType == tag {
			return r.service, true
		}
	}

	return ElderService{}, false
}

func extractElderInfo(text string) domain.SlotMap {
	slots := domain.SlotMap{}

	if svc, ok := MatchElderService(text); ok {
		slots[domain.SlotServiceType] = svc.Name
		slots[domain.SlotSupportType] = svc.SupportType
	}

	if age, ok := extractAge(text); ok {
		slots[domain.SlotAge] = strconv.Itoa(age)
	}

	if m := elderNamePattern.FindStringSubmatch(text); m != nil && !isStopWord(m[1]) {
		slots[domain.SlotElderName] = m[1]
	}

	if freq, ok := firstMatch(frequencyRules, text); ok {
		slots[domain.SlotFrequency] = freq
	}

	if slot, ok := firstMatch(timeSlotRules, text); ok {
		slots[domain.SlotTimeSlot] = slot
	}

	if loc := extractLocation(text); loc != "" {
		slots[domain.SlotLocation] = loc
	}

	return slots
}

func extractAge(text string) (int, bool) {
	for _, p := range agePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		age, err := strconv.Atoi(m[1])
		if err != nil || age < minElderAge || age > maxElderAge {
			continue
		}

		return age, true
	}

	return 0, false
}
