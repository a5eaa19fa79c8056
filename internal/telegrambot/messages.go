package telegrambot

import "github.com/lueurxax/seva-desk/internal/core/domain"

type phrases map[domain.Language]string

func (p phrases) in(lang domain.Language) string {
	if s, ok := p[lang]; ok {
		return s
	}

	return p[domain.LanguageEnglish]
}

var welcomeMessage = phrases{
	domain.LanguageEnglish: "Namaste! Tell me what you need: blood, help for an elderly person, or a civic complaint. You can type or send a voice message.",
	domain.LanguageHindi:   "नमस्ते! बताइए आपको क्या चाहिए: खून, बुज़ुर्गों के लिए मदद, या कोई शिकायत। आप लिख सकते हैं या वॉइस मैसेज भेज सकते हैं।",
	domain.LanguageTelugu:  "నమస్తే! మీకు ఏమి కావాలో చెప్పండి: రక్తం, వృద్ధులకు సహాయం, లేదా ఫిర్యాదు. మీరు టైప్ చేయవచ్చు లేదా వాయిస్ మెసేజ్ పంపవచ్చు.",
}

var cancelledMessage = phrases{
	domain.LanguageEnglish: "Okay, I have cleared this conversation. You can start again any time.",
	domain.LanguageHindi:   "ठीक है, यह बातचीत हटा दी गई है। आप कभी भी फिर से शुरू कर सकते हैं।",
	domain.LanguageTelugu:  "సరే, ఈ సంభాషణను తొలగించాను. మీరు ఎప్పుడైనా మళ్లీ ప్రారంభించవచ్చు.",
}

var unknownCommandMessage = phrases{
	domain.LanguageEnglish: "I know /start and /cancel. For anything else, just write to me.",
	domain.LanguageHindi:   "मैं /start और /cancel समझता हूँ। बाकी के लिए बस लिखिए।",
	domain.LanguageTelugu:  "నాకు /start మరియు /cancel తెలుసు. మిగతా వాటికి నాకు రాయండి.",
}

var unsupportedMessage = phrases{
	domain.LanguageEnglish: "Please send your request as text or a voice message.",
	domain.LanguageHindi:   "कृपया अपना अनुरोध टेक्स्ट या वॉइस मैसेज में भेजें।",
	domain.LanguageTelugu:  "దయచేసి మీ అభ్యర్థనను టెక్స్ట్ లేదా వాయిస్ మెసేజ్‌గా పంపండి.",
}

var voiceUnavailableMessage = phrases{
	domain.LanguageEnglish: "Sorry, I could not understand the voice message. Please type your request.",
	domain.LanguageHindi:   "माफ़ कीजिए, वॉइस मैसेज समझ नहीं आया। कृपया अपना अनुरोध लिखें।",
	domain.LanguageTelugu:  "క్షమించండి, వాయిస్ మెసేజ్ అర్థం కాలేదు. దయచేసి మీ అభ్యర్థనను టైప్ చేయండి.",
}

var voiceLimitMessage = phrases{
	domain.LanguageEnglish: "You have sent many voice messages recently. Please type your request for now.",
	domain.LanguageHindi:   "आपने हाल ही में कई वॉइस मैसेज भेजे हैं। अभी कृपया अपना अनुरोध लिखें।",
	domain.LanguageTelugu:  "మీరు ఇటీవల చాలా వాయిస్ మెసేజ్‌లు పంపారు. ప్రస్తుతానికి దయచేసి టైప్ చేయండి.",
}

var failureMessage = phrases{
	domain.LanguageEnglish: "Something went wrong on our side. Please try again in a moment.",
	domain.LanguageHindi:   "हमारी तरफ़ से कुछ गड़बड़ हुई। कृपया थोड़ी देर में फिर कोशिश करें।",
	domain.LanguageTelugu:  "మా వైపు ఏదో తప్పు జరిగింది. దయచేసి కాసేపట్లో మళ్లీ ప్రయత్నించండి.",
}
