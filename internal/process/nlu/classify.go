package nlu

import (
	"regexp"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

var (
	bloodKeywords = regexp.MustCompile(anyOf(
		latin(
			"blood", "donor", "donors", "plasma", "platelet", "platelets", "transfusion",
			"hemoglobin", "haemoglobin", "thalassemia", "blood group",
			"khoon", "khun", "rakt", "rakth", "raktham", "rakthamu", "raktam",
		),
		native("खून", "रक्त", "ब्लड", "प्लेटलेट्स", "రక్తం", "రక్త", "బ్లడ్", "ప్లేట్లెట్స్"),
	))

	emergencyKeywords = regexp.MustCompile(anyOf(
		latin(
			"emergency", "ambulance", "accident", "heart attack", "unconscious", "not breathing",
			"bleeding", "stroke", "collapsed", "fire", "sos", "dying",
		),
		native("आपातकाल", "इमरजेंसी", "एम्बुलेंस", "दुर्घटना", "आग लगी", "అత్యవసర", "అంబులెన్స్", "ప్రమాదం", "మంటలు"),
	))

	elderKeywords = regexp.MustCompile(anyOf(
		latin(
			"elderly", "elder", "senior citizen", "senior citizens", "senior", "old age", "old man",
			"old woman", "old mother", "old father", "aged", "grandmother", "grandfather", "grandma",
			"grandpa", "caretaker", "caregiver", "companionship", "medicine delivery",
			"deliver medicine", "deliver medicines", "medicines", "groceries",
			"bujurg", "buzurg", "vruddh", "vruddhulu", "dadi", "nani", "ammamma", "thatha", "tatayya",
		),
		native(
			"बुजुर्ग", "बुज़ुर्ग", "वृद्ध", "दादी", "दादा", "नानी", "दवाइयाँ", "दवाई",
			"వృద్ధ", "అమ్మమ్మ", "నానమ్మ", "తాతయ్య", "పెద్దవారు", "మందులు",
		),
	))

	complaintKeywords = regexp.MustCompile(anyOf(
		latin(
			"complaint", "complain", "pothole", "potholes", "road damage", "road repair", "broken road",
			"damaged road", "bad road", "garbage", "trash", "waste", "sewage", "drain", "drainage",
			"water supply", "no water", "water leak", "leakage", "street light", "street lights",
			"streetlight", "streetlights", "power cut", "power outage", "no power", "electricity",
			"not working", "broken", "overflowing", "stray dogs", "shikayat", "firyadu",
		),
		native(
			"शिकायत", "गड्ढा", "गड्ढे", "कचरा", "नाली", "सड़क", "बिजली",
			"ఫిర్యాదు", "గుంత", "చెత్త", "రోడ్డు", "కరెంట్", "వీధి దీపాలు",
		),
	))
)

// CategorizeRequest maps a message to a category. Tests run in a fixed order
// (blood, emergency, elder support, complaint) and the first hit wins, so a
// message mentioning both blood and an emergency is a blood request.
func CategorizeRequest(text string) domain.Category {
	text = prepare(text)

	switch {
	case bloodKeywords.MatchString(text) || ExtractBloodType(text) != "":
		return domain.CategoryBloodRequest
	case emergencyKeywords.MatchString(text):
		return domain.CategoryEmergency
	case elderKeywords.MatchString(text):
		return domain.CategoryElderSupport
	case complaintKeywords.MatchString(text):
		return domain.CategoryComplaint
	default:
		return domain.CategoryGeneralInquiry
	}
}
