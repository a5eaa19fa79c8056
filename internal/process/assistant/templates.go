package assistant

import (
	"fmt"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

type phrases map[domain.Language]string

func (p phrases) in(lang domain.Language) string {
	if s, ok := p[lang]; ok {
		return s
	}

	return p[domain.LanguageEnglish]
}

var followUpTemplates = map[string]phrases{
	domain.SlotBloodType: {
		domain.LanguageEnglish: "Which blood group is needed? For example O+, A- or AB+.",
		domain.LanguageHindi:   "किस ब्लड ग्रुप की ज़रूरत है? जैसे O+, A- या AB+.",
		domain.LanguageTelugu:  "ఏ బ్లడ్ గ్రూప్ కావాలి? ఉదాహరణకు O+, A- లేదా AB+.",
	},
	domain.SlotUnitsNeeded: {
		domain.LanguageEnglish: "How many units of blood are needed?",
		domain.LanguageHindi:   "कितने यूनिट खून चाहिए?",
		domain.LanguageTelugu:  "ఎన్ని యూనిట్ల రక్తం కావాలి?",
	},
	domain.SlotHospitalName: {
		domain.LanguageEnglish: "Which hospital is the patient admitted to?",
		domain.LanguageHindi:   "मरीज़ किस अस्पताल में भर्ती है?",
		domain.LanguageTelugu:  "రోగి ఏ ఆసుపత్రిలో ఉన్నారు?",
	},
	domain.SlotRelationship: {
		domain.LanguageEnglish: "Who is the blood for? Yourself or a family member?",
		domain.LanguageHindi:   "खून किसके लिए चाहिए? आपके लिए या परिवार के किसी सदस्य के लिए?",
		domain.LanguageTelugu:  "రక్తం ఎవరి కోసం? మీ కోసమా లేదా కుటుంబ సభ్యుల కోసమా?",
	},
	domain.SlotUrgencyLevel: {
		domain.LanguageEnglish: "How soon is the blood needed?",
		domain.LanguageHindi:   "खून कितनी जल्दी चाहिए?",
		domain.LanguageTelugu:  "రక్తం ఎంత త్వరగా కావాలి?",
	},
	domain.SlotServiceType: {
		domain.LanguageEnglish: "What kind of help is needed: medicine delivery, a doctor's appointment, groceries, household help or company?",
		domain.LanguageHindi:   "किस तरह की मदद चाहिए: दवा, डॉक्टर की अपॉइंटमेंट, किराना, घर का काम या साथ?",
		domain.LanguageTelugu:  "ఏ రకమైన సహాయం కావాలి: మందులు, డాక్టర్ అపాయింట్‌మెంట్, సరుకులు, ఇంటి పని లేదా తోడు?",
	},
	domain.SlotFrequency: {
		domain.LanguageEnglish: "How often is this help needed: daily, weekly or just once?",
		domain.LanguageHindi:   "यह मदद कितनी बार चाहिए: रोज़, हर हफ्ते या एक बार?",
		domain.LanguageTelugu:  "ఈ సహాయం ఎంత తరచుగా కావాలి: రోజూ, వారానికి లేదా ఒక్కసారి?",
	},
	domain.SlotTimeSlot: {
		domain.LanguageEnglish: "What time of day suits you best?",
		domain.LanguageHindi:   "आपके लिए दिन का कौन सा समय ठीक है?",
		domain.LanguageTelugu:  "మీకు రోజులో ఏ సమయం అనుకూలం?",
	},
	domain.SlotLocation: {
		domain.LanguageEnglish: "Where should we send help? Please share the area or address.",
		domain.LanguageHindi:   "मदद कहाँ भेजें? कृपया इलाका या पता बताएं।",
		domain.LanguageTelugu:  "సహాయం ఎక్కడికి పంపాలి? దయచేసి ప్రాంతం లేదా చిరునామా చెప్పండి.",
	},
	domain.SlotComplaintCategory: {
		domain.LanguageEnglish: "What is the problem about: roads, water supply, garbage, electricity or safety?",
		domain.LanguageHindi:   "समस्या किस बारे में है: सड़क, पानी, कचरा, बिजली या सुरक्षा?",
		domain.LanguageTelugu:  "సమస్య దేని గురించి: రోడ్లు, నీటి సరఫరా, చెత్త, విద్యుత్ లేదా భద్రత?",
	},
	domain.SlotComplaintLocation: {
		domain.LanguageEnglish: "Where is the problem? Please share the street or landmark.",
		domain.LanguageHindi:   "समस्या कहाँ है? कृपया गली या पास की जगह बताएं।",
		domain.LanguageTelugu:  "సమస్య ఎక్కడ ఉంది? దయచేసి వీధి లేదా గుర్తు చెప్పండి.",
	},
}

var genericFollowUp = phrases{
	domain.LanguageEnglish: "Could you share a few more details?",
	domain.LanguageHindi:   "क्या आप थोड़ी और जानकारी दे सकते हैं?",
	domain.LanguageTelugu:  "దయచేసి మరికొన్ని వివరాలు చెప్పగలరా?",
}

// Confirmation templates take the reference code as their only argument.
var confirmationTemplates = map[domain.Category]phrases{
	domain.CategoryBloodRequest: {
		domain.LanguageEnglish: "Your blood request has been registered. Reference: %s. We are reaching out to donors and will update you soon.",
		domain.LanguageHindi:   "आपका ब्लड अनुरोध दर्ज हो गया है। संदर्भ: %s. हम डोनर्स से संपर्क कर रहे हैं और जल्द ही आपको बताएंगे।",
		domain.LanguageTelugu:  "మీ రక్త అభ్యర్థన నమోదైంది. రిఫరెన్స్: %s. మేము దాతలను సంప్రదిస్తున్నాము, త్వరలో తెలియజేస్తాము.",
	},
	domain.CategoryElderSupport: {
		domain.LanguageEnglish: "Your elder support request has been registered. Reference: %s. A volunteer will contact you shortly.",
		domain.LanguageHindi:   "आपका बुज़ुर्ग सहायता अनुरोध दर्ज हो गया है। संदर्भ: %s. एक स्वयंसेवक जल्द ही संपर्क करेगा।",
		domain.LanguageTelugu:  "మీ వృద్ధుల సహాయ అభ్యర్థన నమోదైంది. రిఫరెన్స్: %s. ఒక వాలంటీర్ త్వరలో సంప్రదిస్తారు.",
	},
	domain.CategoryComplaint: {
		domain.LanguageEnglish: "Your complaint has been registered. Reference: %s. It has been forwarded to the concerned department.",
		domain.LanguageHindi:   "आपकी शिकायत दर्ज हो गई है। संदर्भ: %s. इसे संबंधित विभाग को भेज दिया गया है।",
		domain.LanguageTelugu:  "మీ ఫిర్యాదు నమోదైంది. రిఫరెన్స్: %s. సంబంధిత విభాగానికి పంపబడింది.",
	},
}

var (
	validationApology = phrases{
		domain.LanguageEnglish: "Sorry, we could not register the request because some details are missing or unclear. Please share them again.",
		domain.LanguageHindi:   "क्षमा करें, कुछ जानकारी अधूरी या अस्पष्ट होने के कारण अनुरोध दर्ज नहीं हो सका। कृपया दोबारा बताएं।",
		domain.LanguageTelugu:  "క్షమించండి, కొన్ని వివరాలు లేకపోవడం వల్ల అభ్యర్థన నమోదు కాలేదు. దయచేసి మళ్ళీ చెప్పండి.",
	}

	persistenceFailure = phrases{
		domain.LanguageEnglish: "Sorry, we could not save your request right now. Please try again in a moment.",
		domain.LanguageHindi:   "क्षमा करें, अभी आपका अनुरोध सेव नहीं हो सका। कृपया थोड़ी देर में फिर से कोशिश करें।",
		domain.LanguageTelugu:  "క్షమించండి, ప్రస్తుతం మీ అభ్యర్థనను సేవ్ చేయలేకపోయాము. దయచేసి కొద్దిసేపటి తర్వాత మళ్ళీ ప్రయత్నించండి.",
	}
)

func followUpQuestion(slot string, lang domain.Language) string {
	if p, ok := followUpTemplates[slot]; ok {
		return p.in(lang)
	}

	return genericFollowUp.in(lang)
}

func confirmationMessage(category domain.Category, reference string, lang domain.Language) string {
	p, ok := confirmationTemplates[category]
	if !ok {
		p = confirmationTemplates[domain.CategoryComplaint]
	}

	return fmt.Sprintf(p.in(lang), reference)
}
